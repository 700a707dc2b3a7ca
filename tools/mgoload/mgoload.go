package main

import (
	"flag"
	"io"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
	"gopkg.in/mgo.v2"
)

var proc = flag.Int("proc", 8, "How many processes to run.")
var cpus = flag.Int("cpus", runtime.NumCPU(), "Number of CPUs to use.")
var dburl = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
var verbose = flag.Bool("v", false, "Verbose logging?")
var collection = flag.String("collection", "entries", "The collection to store entries in.")
var dbname = flag.String("dbname", "wiktionary", "The database name to use.")

var wg sync.WaitGroup

// Lookups go by language and lemma; the key itself is the _id.
var lemmaIndex = mgo.Index{
	Key:        []string{"language", "lemma"},
	Background: true,
}

type pronunciation struct {
	IPA      string ",omitempty"
	Dialect  string ",omitempty"
	AudioURL string ",omitempty"
}

type definition struct {
	Number   int
	Text     string
	Examples []string ",omitempty"
}

type entry struct {
	ID              string            "_id"
	Language        string            "language"
	Lemma           string            "lemma"
	PartOfSpeech    string            "pos,omitempty"
	IsInflectedForm bool              "inflected"
	FormOf          string            "formof,omitempty"
	Features        map[string]string ",omitempty"
	Etymology       string            ",omitempty"
	Pronunciations  []pronunciation   ",omitempty"
	Definitions     []definition      ",omitempty"
	Templates       []string          ",omitempty"
	ParsedAt        time.Time
	ParserVersion   string
}

func entryHandler(db *mgo.Database, ch <-chan *wiktionary.Entry) {
	for e := range ch {
		storeEntry(db, e)
	}
}

func makeEntry(e *wiktionary.Entry) entry {
	a := entry{
		ID:              e.Key(),
		Language:        e.Language,
		Lemma:           e.Lemma,
		PartOfSpeech:    e.PartOfSpeech,
		IsInflectedForm: e.IsInflectedForm,
		Features:        e.GrammaticalFeatures,
		Etymology:       e.Etymology,
		ParsedAt:        e.Metadata.ParsedAt,
		ParserVersion:   e.Metadata.ParserVersion,
	}
	if e.InflectedFormOf != nil {
		a.FormOf = e.InflectedFormOf.Lemma
	}
	for _, p := range e.Pronunciations {
		a.Pronunciations = append(a.Pronunciations, pronunciation(p))
	}
	for _, d := range e.Definitions {
		def := definition{Number: d.Number, Text: d.Text}
		for _, ex := range d.Examples {
			def.Examples = append(def.Examples, ex.Text)
		}
		a.Definitions = append(a.Definitions, def)
	}
	for _, wf := range e.WordForms {
		a.Templates = append(a.Templates, wf.Template)
	}
	return a
}

func storeEntry(db *mgo.Database, e *wiktionary.Entry) {
	defer wg.Done()
	a := makeEntry(e)
	err := db.C(*collection).Insert(&a)
	if err != nil {
		if mgo.IsDup(err) {
			if *verbose {
				log.Printf("Duplicate Key Error inserting %s", a.ID)
			}
		} else {
			log.Printf("Error inserting %s: %s", a.ID, err)
		}
	}
}

func loadFile(fn string, ch chan<- *wiktionary.Entry, count func()) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := wiktionary.NewEntryReader(f)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		e, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		wg.Add(1)
		ch <- e
		count()
	}
}

func processFiles(files []string, db *mgo.Database) {
	ch := make(chan *wiktionary.Entry, 1000)
	for i := 0; i < *proc; i++ {
		go entryHandler(db, ch)
	}

	entries := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	count := func() {
		entries++
		if entries%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s entries total (%.2f/s)\n",
				humanize.Comma(entries), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	var err error
	for _, fn := range files {
		if *verbose {
			log.Printf("Loading %v", fn)
		}
		if err = loadFile(fn, ch, count); err != nil {
			log.Printf("Error reading %v: %v", fn, err)
			break
		}
	}
	wg.Wait()
	close(ch)

	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s entries (%.2f e/s)",
		d, err, humanize.Comma(entries), float64(entries)/d.Seconds())
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("You must supply at least one entry file.")
	}
	runtime.GOMAXPROCS(*cpus)

	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to %v: %v", *dburl, err)
	}
	defer session.Close()

	err = session.DB(*dbname).C(*collection).EnsureIndex(lemmaIndex)
	if err != nil {
		log.Fatal("Error creating lemma index", err)
	}
	processFiles(flag.Args(), session.DB(*dbname))
}
