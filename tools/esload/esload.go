// Load wiktionary entry files into ElasticSearch
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-elasticsearch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
)

var wg = sync.WaitGroup{}

var esIndex = flag.String("index", "wiktionary", "ElasticSearch index")
var workers = flag.Int("workers", 4, "Number of bulk loaders")

// body is the searchable projection of an entry.
func body(e *wiktionary.Entry) map[string]interface{} {
	definitions := make([]string, 0, len(e.Definitions))
	var examples []string
	for _, d := range e.Definitions {
		definitions = append(definitions, d.Text)
		for _, ex := range d.Examples {
			examples = append(examples, ex.Text)
		}
	}
	ipa := []string{}
	for _, p := range e.Pronunciations {
		if p.IPA != "" {
			ipa = append(ipa, p.IPA)
		}
	}

	rv := map[string]interface{}{
		"language":          e.Language,
		"lemma":             e.Lemma,
		"part_of_speech":    e.PartOfSpeech,
		"is_inflected_form": e.IsInflectedForm,
		"etymology":         e.Etymology,
		"definitions":       definitions,
		"examples":          examples,
		"ipa":               ipa,
		"parsed_at":         e.Metadata.ParsedAt,
	}
	if e.InflectedFormOf != nil {
		rv["inflected_form_of"] = e.InflectedFormOf.Lemma
		rv["grammatical_features"] = e.GrammaticalFeatures
	}
	return rv
}

func entryHandler(u string, ch chan *wiktionary.Entry) {
	defer wg.Done()
	counter := 0
	es := elasticsearch.ElasticSearch{URL: u}
	bulkLoader := es.Bulk()

	for e := range ch {
		counter++
		if counter > 1000 {
			bulkLoader.SendBatch()
			counter = 0
		}
		ui := elasticsearch.UpdateInstruction{
			Id:    e.Key(),
			Index: *esIndex,
			Type:  "entry",
			Body:  body(e),
		}
		bulkLoader.Update(&ui)
	}
	bulkLoader.Quit()
}

func readEntries(fn string, ch chan<- *wiktionary.Entry, count func()) error {
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
		ch <- e
		count()
	}
}

func main() {
	flag.Parse()
	if flag.NArg() < 2 {
		log.Fatalf("Usage: %v [opts] http://localhost:9200/ es.jsonl.gz [...]", os.Args[0])
	}
	esurl, files := flag.Arg(0), flag.Args()[1:]

	ch := make(chan *wiktionary.Entry, 1000)

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go entryHandler(esurl, ch)
	}

	entries := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	count := func() {
		entries++
		if entries%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s entries total (%.2f/s)",
				humanize.Comma(entries), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	var err error
	for _, fn := range files {
		log.Printf("Loading %v", fn)
		if err = readEntries(fn, ch, count); err != nil {
			log.Printf("Error reading %v: %v", fn, err)
			break
		}
	}
	close(ch)
	wg.Wait()
	log.Printf("Ended with err after %v:  %v after %s entries",
		time.Since(start), err, humanize.Comma(entries))
}
