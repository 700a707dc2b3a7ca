// Rewrite a multistream index with 64-bit stream offsets, or summarize
// its streams.
package main

import (
	"bufio"
	"compress/bzip2"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wiktionary"
)

var summary = flag.Bool("summary", false, "Print stream offsets and page counts only")

func open(fn string) (io.Reader, io.Closer) {
	r, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Error opening %v: %v", fn, err)
	}
	if strings.HasSuffix(fn, ".bz2") {
		return bzip2.NewReader(r), r
	}
	return r, r
}

func summarize(r io.Reader, w io.Writer) {
	isr, err := wiktionary.NewIndexSummaryReader(r)
	if err != nil {
		log.Fatalf("Error reading index: %v", err)
	}
	streams, pages := int64(0), int64(0)
	for {
		offset, count, err := isr.Next()
		if count > 0 {
			fmt.Fprintf(w, "%v\t%v\n", offset, count)
			streams++
			pages += int64(count)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading index: %v", err)
		}
	}
	log.Printf("%s pages in %s streams", humanize.Comma(pages), humanize.Comma(streams))
}

func rewrite(r io.Reader, w io.Writer) {
	ir := wiktionary.NewIndexReader(r)
	for {
		e, err := ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading stream:  %v", err)
		}

		fmt.Fprintln(w, e.String())
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("Usage: %v [-summary] enwiktionary-multistream-index.txt.bz2", os.Args[0])
	}

	r, closer := open(flag.Arg(0))
	defer closer.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if *summary {
		summarize(r, w)
	} else {
		rewrite(r, w)
	}
}
