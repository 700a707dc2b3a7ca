// Look up pages through a page index and print their parsed entries.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
	"github.com/dustin/go-wiktionary/pageindex"
)

var dbPath = flag.String("db", "pages.db", "Index database built by buildindex")
var dumpPath = flag.String("dump", "", "Uncompressed dump (default: the one recorded in the index)")
var language = flag.String("lang", "", "Only parse this language (default: all supported)")
var search = flag.Bool("search", false, "Treat arguments as LIKE patterns and list matching titles")
var limit = flag.Int("limit", 50, "Maximum titles listed by -search")
var showStats = flag.Bool("stats", false, "Print index statistics")
var raw = flag.Bool("raw", false, "Print the page wikitext instead of entries")

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] title...\n  %s -search [opts] pattern...\n  %s -stats\n",
		os.Args[0], os.Args[0], os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func printStats(ctx context.Context, ix *pageindex.Index) {
	st, err := ix.Stats(ctx)
	if err != nil {
		log.Fatalf("Error reading stats: %v", err)
	}
	fmt.Printf("pages:    %s\n", humanize.Comma(int64(st.Pages)))
	fmt.Printf("entries:  %s\n", humanize.Comma(int64(st.Entries)))
	fmt.Printf("bytes:    %s\n", humanize.Bytes(uint64(st.TotalBytes)))
	for k, v := range st.Meta {
		fmt.Printf("%-9s %v\n", k+":", v)
	}
}

func searchTitles(ctx context.Context, ix *pageindex.Index, patterns []string) {
	for _, pattern := range patterns {
		locs, err := ix.Search(ctx, pattern, *limit)
		if err != nil {
			log.Fatalf("Error searching: %v", err)
		}
		for _, l := range locs {
			fmt.Printf("%v\t%v\t%v\n", l.Title, l.PageID, humanize.Bytes(uint64(l.Length)))
		}
	}
}

func keepFunc() func(string) bool {
	if *language != "" {
		return func(l string) bool { return l == *language }
	}
	return wiktionary.IsSupportedLanguage
}

func lookup(ctx context.Context, ix *pageindex.Index, dump *os.File, titles []string) {
	ep := wiktionary.NewEntryParser()
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	for _, title := range titles {
		l, err := ix.Lookup(ctx, title)
		if errors.Is(err, pageindex.ErrNotFound) {
			log.Printf("%v is not in the index", title)
			continue
		}
		if err != nil {
			log.Fatalf("Error looking up %v: %v", title, err)
		}

		p, err := wiktionary.ReadPageAt(dump, l.Offset, l.Length)
		if err != nil {
			log.Fatalf("Error reading %v: %v", title, err)
		}
		if *raw {
			fmt.Println(p.Text())
			continue
		}

		entries := ep.ParsePage(p.Title, p.Text(), keepFunc())
		if len(entries) == 0 {
			log.Printf("%v has no entries", title)
			continue
		}
		if err := enc.Encode(entries); err != nil {
			log.Fatalf("Error encoding entries: %v", err)
		}
	}
}

func main() {
	flag.Parse()

	ix, err := pageindex.Open(*dbPath)
	if err != nil {
		log.Fatalf("Error opening index: %v", err)
	}
	defer ix.Close()
	ctx := context.Background()

	switch {
	case *showStats:
		printStats(ctx, ix)
		return
	case flag.NArg() == 0:
		usage()
	case *search:
		searchTitles(ctx, ix, flag.Args())
		return
	}

	if *dumpPath == "" {
		st, err := ix.Stats(ctx)
		if err != nil {
			log.Fatalf("Error reading index metadata: %v", err)
		}
		*dumpPath = st.Meta[pageindex.MetaDumpFile]
		if *dumpPath == "" {
			log.Fatalf("The index doesn't record its dump; use -dump")
		}
	}
	dump, err := os.Open(*dumpPath)
	if err != nil {
		log.Fatalf("Error opening dump: %v", err)
	}
	defer dump.Close()

	lookup(ctx, ix, dump, flag.Args())
}
