package wiktionary

import (
	"compress/bzip2"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sync"
)

type indexChunk struct {
	offset int64
	count  int
}

type multiStreamParser struct {
	siteInfo SiteInfo

	workerch chan indexChunk
	entries  chan *Page

	errOnce sync.Once
	err     error
}

func (p *multiStreamParser) fail(err error) {
	p.errOnce.Do(func() { p.err = err })
}

func multiStreamIndexWorker(indexfn string, p *multiStreamParser) {
	defer close(p.workerch)

	r, err := os.Open(indexfn)
	if err != nil {
		p.fail(err)
		return
	}
	defer r.Close()

	bz := bzip2.NewReader(r)

	isr, err := NewIndexSummaryReader(bz)
	if err != nil {
		p.fail(fmt.Errorf("index summary: %w", err))
		return
	}
	for {
		offset, count, err := isr.Next()
		p.workerch <- indexChunk{offset, count}
		if err == io.EOF {
			break
		}
		if err != nil {
			p.fail(fmt.Errorf("reading index: %w", err))
			return
		}
	}
}

func multiStreamWorker(datafn string, wg *sync.WaitGroup,
	p *multiStreamParser) {
	defer wg.Done()

	r, err := os.Open(datafn)
	if err != nil {
		p.fail(err)
		// Keep draining so the index worker never blocks.
		for range p.workerch {
		}
		return
	}
	defer r.Close()

	for idxChunk := range p.workerch {
		if idxChunk.count == 0 {
			continue
		}
		_, err := r.Seek(idxChunk.offset, io.SeekStart)
		if err != nil {
			p.fail(fmt.Errorf("seeking to %v: %w", idxChunk.offset, err))
			continue
		}
		bz := bzip2.NewReader(r)
		d := xml.NewDecoder(bz)

		for i := 0; i < idxChunk.count; i++ {
			newpage := new(Page)
			err = d.Decode(newpage)
			if err == io.EOF {
				break
			}
			if err != nil {
				p.fail(fmt.Errorf("decoding stream at %v: %w", idxChunk.offset, err))
				break
			}
			p.entries <- newpage
		}
	}
}

// NewIndexedParser gets a dump parser reading a multistream dump
// through its index, decoding streams on numWorkers goroutines. Pages
// arrive in no particular order.
func NewIndexedParser(indexfn, datafn string, numWorkers int) (Parser, error) {
	r, err := os.Open(datafn)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	bz := bzip2.NewReader(r)

	d := xml.NewDecoder(bz)
	_, err = d.Token()
	if err != nil {
		return nil, err
	}

	si := SiteInfo{}
	err = d.Decode(&si)
	if err != nil {
		return nil, err
	}

	rv := &multiStreamParser{
		siteInfo: si,
		workerch: make(chan indexChunk, 1000),
		entries:  make(chan *Page, 1000),
	}

	wg := sync.WaitGroup{}
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go multiStreamWorker(datafn, &wg, rv)
	}

	go multiStreamIndexWorker(indexfn, rv)

	go func() {
		wg.Wait()
		close(rv.entries)
	}()

	return rv, nil
}

// Next gets the next page. Once all streams are read it reports the
// first error any worker hit, or io.EOF.
func (p *multiStreamParser) Next() (rv *Page, err error) {
	var ok bool
	rv, ok = <-p.entries
	if !ok {
		if p.err != nil {
			return nil, p.err
		}
		return nil, io.EOF
	}
	return
}

func (p *multiStreamParser) SiteInfo() SiteInfo {
	return p.siteInfo
}
