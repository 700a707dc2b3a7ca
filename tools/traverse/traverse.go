// Sample program that parses every entry in a wiktionary dump and
// reports how many pages produce entries.
package main

import (
	"encoding/gob"
	"flag"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
)

var numWorkers int
var errorFile string

var wg, errwg sync.WaitGroup

var entryPages, emptyPages, inflectedForms int64

var languageCounts = struct {
	sync.Mutex
	m map[string]int64
}{m: map[string]int64{}}

// parsePageEntries parses the supported sections of a page, sending
// it to cherr when some supported section yields nothing.
func parsePageEntries(ep *wiktionary.EntryParser, p *wiktionary.Page, cherr chan<- *wiktionary.Page) {
	supported := 0
	for _, s := range wiktionary.SplitLanguages(p.Text()) {
		if !wiktionary.IsSupportedLanguage(s.Language) {
			continue
		}
		supported++
		entries := ep.Parse(s.Language, p.Title, s.Text)
		if len(entries) == 0 {
			atomic.AddInt64(&emptyPages, 1)
			if cherr != nil {
				cherr <- p
			}
			return
		}
		languageCounts.Lock()
		languageCounts.m[s.Language] += int64(len(entries))
		languageCounts.Unlock()
		for _, e := range entries {
			if e.IsInflectedForm {
				atomic.AddInt64(&inflectedForms, 1)
			}
		}
	}
	if supported > 0 {
		atomic.AddInt64(&entryPages, 1)
	}
}

func pageHandler(ch <-chan *wiktionary.Page, cherr chan<- *wiktionary.Page) {
	ep := wiktionary.NewEntryParser()
	for p := range ch {
		if p.IsEntry() {
			parsePageEntries(ep, p, cherr)
		}
		wg.Done()
	}
}

func errorHandler(ch <-chan *wiktionary.Page) {
	defer errwg.Done()
	f, err := os.Create(errorFile)
	if err != nil {
		log.Fatalf("Error creating error file: %v", err)
	}
	defer f.Close()
	g := gob.NewEncoder(f)

	for p := range ch {
		err = g.Encode(p)
		if err != nil {
			log.Fatalf("Error gobbing page: %v\n%#v", err, p)
		}
	}
}

func process(p wiktionary.Parser) {
	log.Printf("Got site info:  %+v", p.SiteInfo())

	ch := make(chan *wiktionary.Page, 1000)
	var cherr chan *wiktionary.Page
	if errorFile != "" {
		cherr = make(chan *wiktionary.Page, 10)
		errwg.Add(1)
		go errorHandler(cherr)
	}

	for i := 0; i < numWorkers; i++ {
		go pageHandler(ch, cherr)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	var err error
	for err == nil {
		var page *wiktionary.Page
		page, err = p.Next()
		if err == nil {
			wg.Add(1)
			ch <- page
		}

		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	wg.Wait()
	close(ch)
	if cherr != nil {
		close(cherr)
		errwg.Wait()
	}
	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s pages (%.2f p/s)",
		d, err, humanize.Comma(pages), float64(pages)/d.Seconds())
	log.Printf("%s pages with supported languages, %s of them with an empty section, %s inflected forms",
		humanize.Comma(entryPages), humanize.Comma(emptyPages), humanize.Comma(inflectedForms))

	languages := make([]string, 0, len(languageCounts.m))
	for l := range languageCounts.m {
		languages = append(languages, l)
	}
	sort.Strings(languages)
	for _, l := range languages {
		log.Printf("  %-12s %s entries", l, humanize.Comma(languageCounts.m[l]))
	}
}

func processSingleStream(filename string) {
	p, closer, err := wiktionary.OpenDump(filename)
	if err != nil {
		log.Fatalf("Error setting up new page parser:  %v", err)
	}
	defer closer.Close()

	process(p)
}

func processMultiStream(idx, data string) {
	p, err := wiktionary.NewIndexedParser(idx, data, runtime.GOMAXPROCS(0))
	if err != nil {
		log.Fatalf("Error initializing multistream parser: %v", err)
	}
	process(p)
}

func main() {
	var cpus int
	flag.IntVar(&numWorkers, "workers", 8, "Number of parsing workers")
	flag.IntVar(&cpus, "cpus", runtime.GOMAXPROCS(0), "Number of CPUS to utilize")
	flag.StringVar(&errorFile, "errors", "",
		"Write pages whose supported sections yield no entries to this gob file")
	flag.Parse()

	runtime.GOMAXPROCS(cpus)

	switch flag.NArg() {
	case 1:
		processSingleStream(flag.Arg(0))
	case 2:
		processMultiStream(flag.Arg(0), flag.Arg(1))
	default:
		log.Fatalf("Need either a single stream dump, or index and multi-stream")
	}
}
