package wiktionary

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
)

// An IndexEntry is an individual page from a multistream index.
type IndexEntry struct {
	StreamOffset int64
	PageID       uint64
	Title        string
}

func (i IndexEntry) String() string {
	return fmt.Sprintf("%v:%v:%v",
		i.StreamOffset, i.PageID, i.Title)
}

// An IndexReader is a multistream index reader.
type IndexReader struct {
	r          *bufio.Scanner
	base       int64
	prevOffset int64
}

// Next gets the next entry from the index stream.
//
// Offsets in older indexes wrap at 32 bits; they are assumed to be
// increasing.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.r.Scan() {
		err := ir.r.Err()
		if err == nil {
			err = io.EOF
		}
		return IndexEntry{}, err
	}
	parts := strings.SplitN(ir.r.Text(), ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, errors.New("bad record")
	}
	rv := IndexEntry{Title: parts[2]}
	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}
	if offset < ir.prevOffset {
		ir.base += (1 << 32)
	}
	rv.StreamOffset = offset + ir.base
	rv.PageID, err = strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}
	ir.prevOffset = offset

	return rv, nil
}

// NewIndexReader gets a multistream index reader.
func NewIndexReader(r io.Reader) *IndexReader {
	return &IndexReader{r: bufio.NewScanner(r)}
}

// IndexSummaryReader gets offsets and counts from an index.
//
// If you don't want to know the individual pages, just how many
// and where, this is for you.
type IndexSummaryReader struct {
	index      *IndexReader
	prevOffset int64
	count      int
}

// NewIndexSummaryReader gets a new IndexSummaryReader from the given
// stream of index lines.
func NewIndexSummaryReader(r io.Reader) (rv *IndexSummaryReader, err error) {
	rv = &IndexSummaryReader{index: NewIndexReader(r)}
	first, err := rv.index.Next()
	if err != nil {
		return nil, err
	}
	rv.prevOffset = first.StreamOffset
	rv.count = 1

	return rv, nil
}

// Next gets the next offset and count from the index summary reader.
//
// Note that the last returns io.EOF as an error, but a valid offset
// and count.
func (isr *IndexSummaryReader) Next() (offset int64, count int, err error) {
	for {
		e, err := isr.index.Next()
		if err != nil {
			offset = isr.prevOffset
			count = isr.count
			isr.prevOffset = 0
			isr.count = 0
			return offset, count, err
		}

		if e.StreamOffset != isr.prevOffset {
			offset = isr.prevOffset
			count = isr.count
			isr.prevOffset = e.StreamOffset
			isr.count = 1
			return offset, count, nil
		}
		isr.count++
	}
}

// A PageLocation is where a page's <page> element sits in an
// uncompressed dump.
type PageLocation struct {
	Title     string
	PageID    uint64
	Namespace int
	Offset    int64
	Length    int64
}

// ScanPageOffsets reads an uncompressed XML dump line by line and
// calls fn with the location of every page. Dumps put each of <page>,
// <title>, <ns>, <id> and </page> on a line of its own.
func ScanPageOffsets(r io.Reader, fn func(PageLocation) error) error {
	br := bufio.NewReaderSize(r, 1<<20)

	var (
		pos    int64
		inPage bool
		cur    PageLocation
		haveID bool
	)
	for {
		line, err := br.ReadBytes('\n')
		start := pos
		pos += int64(len(line))

		t := bytes.TrimSpace(line)
		switch {
		case bytes.Contains(t, []byte("<page>")):
			inPage, haveID = true, false
			cur = PageLocation{Offset: start}
		case inPage && bytes.Contains(t, []byte("<title>")):
			cur.Title = html.UnescapeString(elementText(t, "title"))
		case inPage && !haveID && bytes.Contains(t, []byte("<id>")):
			cur.PageID, _ = strconv.ParseUint(elementText(t, "id"), 10, 64)
			haveID = true
		case inPage && bytes.Contains(t, []byte("<ns>")):
			cur.Namespace, _ = strconv.Atoi(elementText(t, "ns"))
		case inPage && bytes.Contains(t, []byte("</page>")):
			inPage = false
			cur.Length = pos - cur.Offset
			if cur.Title != "" {
				if ferr := fn(cur); ferr != nil {
					return ferr
				}
			}
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func elementText(line []byte, name string) string {
	s := string(line)
	open, end := "<"+name+">", "</"+name+">"
	i := strings.Index(s, open)
	j := strings.Index(s, end)
	if i < 0 || j < i+len(open) {
		return ""
	}
	return s[i+len(open) : j]
}

// ReadPageAt decodes the page stored at a location found by
// ScanPageOffsets.
func ReadPageAt(r io.ReaderAt, offset, length int64) (*Page, error) {
	d := xml.NewDecoder(io.NewSectionReader(r, offset, length))
	rv := new(Page)
	if err := d.Decode(rv); err != nil {
		return nil, fmt.Errorf("decoding page at %v: %w", offset, err)
	}
	return rv, nil
}
