// Load wiktionary entry files into Couchbase
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/couchbase/go-couchbase"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
)

var numWorkers = flag.Int("numWorkers", 8, "Number of entry workers")

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] es.jsonl.gz [fr.jsonl.gz ...]\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func doEntry(db *couchbase.Bucket, e *wiktionary.Entry) {
	err := db.Set(e.Key(), 0, e)
	if err != nil {
		log.Printf("Error setting %v: %v", e.Key(), err)
		return
	}
}

func entryHandler(db *couchbase.Bucket, ch <-chan *wiktionary.Entry) {
	defer wg.Done()
	for e := range ch {
		doEntry(db, e)
	}
}

// readEntries feeds every entry of an entry file to ch.
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

	if meta, err := r.Metadata(); err == nil {
		log.Printf("Loading %v entries from %v (parser %v, generated %v)",
			meta.Language, fn, meta.ParserVersion, meta.GeneratedAt)
	}

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
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	procs := flag.Int("cpus", runtime.NumCPU(), "Number of CPUS to use")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
	}

	runtime.GOMAXPROCS(*procs)

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}

	ch := make(chan *wiktionary.Entry, 1000)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
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
			log.Printf("Processed %s entries total (%.2f/s)",
				humanize.Comma(entries), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	for _, fn := range flag.Args() {
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
