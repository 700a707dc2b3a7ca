// Build a SQLite index of page locations in an uncompressed wiktionary
// dump.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
	"github.com/dustin/go-wiktionary/pageindex"
)

var dbPath = flag.String("db", "pages.db", "Index database to create or update")
var batchSize = flag.Int("batch", 10000, "Pages per transaction")
var mainOnly = flag.Bool("main", false, "Only index main namespace pages")

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] enwiktionary.xml\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}
	filename := flag.Arg(0)

	f, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		log.Fatalf("Error examining %v: %v", filename, err)
	}

	ix, err := pageindex.Open(*dbPath)
	if err != nil {
		log.Fatalf("Error opening index: %v", err)
	}
	defer ix.Close()

	ctx := context.Background()
	batch := make([]wiktionary.PageLocation, 0, *batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := ix.Put(ctx, batch)
		batch = batch[:0]
		return err
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(100000)
	err = wiktionary.ScanPageOffsets(f, func(l wiktionary.PageLocation) error {
		if *mainOnly && l.Namespace != wiktionary.MainNamespace {
			return nil
		}
		batch = append(batch, l)
		if len(batch) >= *batchSize {
			if err := flush(); err != nil {
				return err
			}
		}

		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Indexed %s pages, %s of %s (%.2f/s)",
				humanize.Comma(pages), humanize.Bytes(uint64(l.Offset)),
				humanize.Bytes(uint64(st.Size())), float64(reportfreq)/d.Seconds())
			prev = now
		}
		return nil
	})
	if err == nil {
		err = flush()
	}
	if err != nil {
		log.Fatalf("Error indexing %v: %v", filename, err)
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		abs = filename
	}
	meta := map[string]string{
		pageindex.MetaDumpFile:  abs,
		pageindex.MetaDumpSize:  strconv.FormatInt(st.Size(), 10),
		pageindex.MetaBuiltAt:   time.Now().UTC().Format(time.RFC3339),
		pageindex.MetaPageCount: strconv.FormatInt(pages, 10),
	}
	for k, v := range meta {
		if err := ix.SetMeta(ctx, k, v); err != nil {
			log.Fatalf("Error recording metadata: %v", err)
		}
	}

	d := time.Since(start)
	log.Printf("Indexed %s pages from %s in %v (%.2f p/s)",
		humanize.Comma(pages), humanize.Bytes(uint64(st.Size())), d,
		float64(pages)/d.Seconds())
}
