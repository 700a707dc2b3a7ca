// Convert a wiktionary dump into one gzipped JSON lines file per language.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
)

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] enwiktionary.xml[.bz2]\n  %s [opts] enwiktionary.index.bz2 enwiktionary.xml.bz2\n",
		os.Args[0], os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type stats struct {
	mu          sync.Mutex
	pages       int64
	entryPages  int64
	withEntries int64
}

// A langFile is the open output for one language.
type langFile struct {
	path string
	f    *os.File
	w    *wiktionary.EntryWriter
}

// writer owns the output files; only its goroutine touches them.
type writer struct {
	dir   string
	files map[string]*langFile
}

func (w *writer) fileFor(language string) (*langFile, error) {
	if lf, ok := w.files[language]; ok {
		return lf, nil
	}
	code, ok := wiktionary.LanguageCode(language)
	if !ok {
		code = strings.ToLower(strings.ReplaceAll(language, " ", "_"))
	}
	lf := &langFile{path: filepath.Join(w.dir, code+".jsonl.gz")}
	f, err := os.Create(lf.path)
	if err != nil {
		return nil, err
	}
	meta := wiktionary.NewFileMetadata(language)
	meta.LanguageCode = code
	lf.f = f
	lf.w, err = wiktionary.NewEntryWriter(f, meta)
	if err != nil {
		f.Close()
		return nil, err
	}
	log.Printf("Created output file: %v", lf.path)
	w.files[language] = lf
	return lf, nil
}

func (w *writer) run(ch <-chan []wiktionary.Entry, done chan<- struct{}) {
	defer close(done)
	for entries := range ch {
		for i := range entries {
			lf, err := w.fileFor(entries[i].Language)
			if err != nil {
				log.Fatalf("Error opening output for %v: %v", entries[i].Language, err)
			}
			if err := lf.w.Write(&entries[i]); err != nil {
				log.Fatalf("Error writing %v: %v", lf.path, err)
			}
		}
	}
}

func (w *writer) close() {
	languages := make([]string, 0, len(w.files))
	for l := range w.files {
		languages = append(languages, l)
	}
	sort.Strings(languages)

	for _, l := range languages {
		lf := w.files[l]
		if err := lf.w.Close(); err != nil {
			log.Fatalf("Error finishing %v: %v", lf.path, err)
		}
		if err := lf.f.Close(); err != nil {
			log.Fatalf("Error closing %v: %v", lf.path, err)
		}
		size := uint64(0)
		if st, err := os.Stat(lf.path); err == nil {
			size = uint64(st.Size())
		}
		log.Printf("  %-12s %10s entries  %8s  %v",
			l, humanize.Comma(int64(lf.w.Count())), humanize.Bytes(size), lf.path)
	}
}

func pageHandler(keep func(string) bool, st *stats, wg *sync.WaitGroup,
	ch <-chan *wiktionary.Page, out chan<- []wiktionary.Entry) {
	defer wg.Done()
	ep := wiktionary.NewEntryParser()
	var entryPages, withEntries int64
	for p := range ch {
		if !p.IsEntry() {
			continue
		}
		entryPages++
		entries := ep.ParsePage(p.Title, p.Text(), keep)
		if len(entries) > 0 {
			withEntries++
			out <- entries
		}
	}
	st.add(entryPages, withEntries)
}

func (s *stats) add(entryPages, withEntries int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entryPages += entryPages
	s.withEntries += withEntries
}

func process(p wiktionary.Parser, cfg *config) {
	log.Printf("Reading %v dump", p.SiteInfo().SiteName)

	wanted := map[string]bool{}
	for _, l := range cfg.Languages {
		wanted[strings.TrimSpace(l)] = true
	}
	keep := func(language string) bool { return wanted[language] }

	w := &writer{dir: cfg.OutDir, files: map[string]*langFile{}}
	entries := make(chan []wiktionary.Entry, 1000)
	written := make(chan struct{})
	go w.run(entries, written)

	ch := make(chan *wiktionary.Page, 1000)
	st := &stats{}
	wg := sync.WaitGroup{}
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go pageHandler(keep, st, &wg, ch, entries)
	}

	start := time.Now()
	prev := start
	var err error
	for err == nil {
		var page *wiktionary.Page
		page, err = p.Next()
		if err == nil {
			ch <- page
			st.pages++
		}

		if st.pages%cfg.ReportFreq == 0 && err == nil {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)",
				humanize.Comma(st.pages), float64(cfg.ReportFreq)/d.Seconds())
			prev = now
		}
	}
	close(ch)
	wg.Wait()
	close(entries)
	<-written

	d := time.Since(start)
	if err != io.EOF {
		log.Printf("Dump ended early: %v", err)
	}
	log.Printf("Processed %s pages in %v (%.2f p/s); %s entry pages, %s with entries",
		humanize.Comma(st.pages), d, float64(st.pages)/d.Seconds(),
		humanize.Comma(st.entryPages), humanize.Comma(st.withEntries))
	w.close()

	if err != io.EOF {
		os.Exit(1)
	}
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	outDir := flag.String("out", "", "output directory")
	languages := flag.String("languages", "",
		"comma-separated languages to extract (default: all supported)")
	workers := flag.Int("workers", 0, "number of parsing workers")
	cpus := flag.Int("cpus", runtime.GOMAXPROCS(0), "Number of CPUS to utilize")
	overwrite := flag.Bool("overwrite", false, "replace existing output files")
	flag.Parse()

	runtime.GOMAXPROCS(*cpus)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.OutDir = *outDir
		case "languages":
			cfg.Languages = strings.Split(*languages, ",")
		case "workers":
			cfg.Workers = *workers
		case "overwrite":
			cfg.Overwrite = *overwrite
		}
	})
	if len(cfg.Languages) == 0 {
		cfg.Languages = wiktionary.SupportedLanguages()
	}
	if err := cfg.validate(); err != nil {
		log.Fatalf("Error in settings: %v", err)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}
	if !cfg.Overwrite {
		existing, _ := filepath.Glob(filepath.Join(cfg.OutDir, "*.jsonl.gz"))
		if len(existing) > 0 {
			log.Fatalf("%v already holds entry files; use -overwrite to replace them",
				cfg.OutDir)
		}
	}

	switch flag.NArg() {
	case 1:
		p, closer, err := wiktionary.OpenDump(flag.Arg(0))
		if err != nil {
			log.Fatalf("Error setting up new page parser:  %v", err)
		}
		defer closer.Close()
		process(p, cfg)
	case 2:
		p, err := wiktionary.NewIndexedParser(flag.Arg(0), flag.Arg(1),
			runtime.GOMAXPROCS(0))
		if err != nil {
			log.Fatalf("Error initializing multistream parser: %v", err)
		}
		process(p, cfg)
	default:
		usage()
	}
}
