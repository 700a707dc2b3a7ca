// Load wiktionary entry files into CouchDB
package main

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
)

var wg sync.WaitGroup

type document struct {
	ID  string `json:"_id"`
	Rev string `json:"_rev,omitempty"`
	*wiktionary.Entry
}

func escapeKey(in string) string {
	return strings.Replace(strings.Replace(in, "/", "%2f", -1),
		"+", "%2b", -1)
}

// resolveConflict replaces the stored document when ours was parsed
// more recently.
func resolveConflict(db *couch.Database, d *document) {
	log.Printf("Resolving conflict on %s", d.ID)
	prev := document{Entry: &wiktionary.Entry{}}
	err := db.Retrieve(d.ID, &prev)
	if err != nil {
		log.Printf("  Error retrieving existing %v: %v", d.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Printf("Got no rev from %v", d.ID)
		return
	}
	if d.Metadata.ParsedAt.After(prev.Metadata.ParsedAt) {
		log.Printf("  This one is newer...replacing %s.", prev.Rev)
		_, err = db.EditWith(d, d.ID, prev.Rev)
		if err != nil {
			log.Printf("  Error updating %v: %v", prev.ID, err)
		}
	}
}

func doEntry(db *couch.Database, e *wiktionary.Entry) {
	defer wg.Done()
	d := document{ID: escapeKey(e.Key()), Entry: e}

	_, _, err := db.Insert(&d)
	httpe, isHttpError := err.(*couch.HTTPError)
	switch {
	case err == nil:
		// yay
	case isHttpError && httpe.Status == 409:
		resolveConflict(db, &d)
	default:
		log.Printf("Error inserting %v: %v", d.ID, err)
	}
}

func entryHandler(db couch.Database, ch <-chan *wiktionary.Entry) {
	for e := range ch {
		doEntry(&db, e)
	}
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
		wg.Add(1)
		ch <- e
		count()
	}
}

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %v http://localhost:5984/wiktionary es.jsonl.gz [...]", os.Args[0])
	}
	dburl, files := os.Args[1], os.Args[2:]

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	ch := make(chan *wiktionary.Entry, 1000)

	for i := 0; i < 20; i++ {
		go entryHandler(db, ch)
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
	for _, fn := range files {
		log.Printf("Loading %v", fn)
		if err = readEntries(fn, ch, count); err != nil {
			log.Printf("Error reading %v: %v", fn, err)
			break
		}
	}
	wg.Wait()
	close(ch)
	log.Printf("Ended with err after %v:  %v after %s entries",
		time.Since(start), err, humanize.Comma(entries))
}
