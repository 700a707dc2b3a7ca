package wiktionary

import (
	"bufio"
	"compress/bzip2"
	"encoding/xml"
	"io"
	"os"
	"strings"
)

// The toplevel site info describing basic dump properties.
type SiteInfo struct {
	SiteName   string `xml:"sitename"`
	Base       string `xml:"base"`
	Generator  string `xml:"generator"`
	Case       string `xml:"case"`
	Namespaces []struct {
		Key   string `xml:"key,attr"`
		Case  string `xml:"case,attr"`
		Value string `xml:",chardata"`
	} `xml:"namespaces>namespace"`
}

// A user who contributed a revision.
type Contributor struct {
	ID       uint64 `xml:"id"`
	Username string `xml:"username"`
}

// A revision to a page.
type Revision struct {
	ID          uint64      `xml:"id"`
	Timestamp   string      `xml:"timestamp"`
	Contributor Contributor `xml:"contributor"`
	Comment     string      `xml:"comment"`
	Text        string      `xml:"text"`
}

// MainNamespace holds the dictionary entries themselves.
const MainNamespace = 0

// A wiki page.
type Page struct {
	Title     string     `xml:"title"`
	Namespace int        `xml:"ns"`
	ID        uint64     `xml:"id"`
	Revisions []Revision `xml:"revision"`
}

// Text is the wikitext of the page's first revision.
func (p *Page) Text() string {
	if len(p.Revisions) == 0 {
		return ""
	}
	return p.Revisions[0].Text
}

// IsEntry reports whether the page is a dictionary entry rather than
// a talk, template or other namespace page.
func (p *Page) IsEntry() bool {
	return p.Namespace == MainNamespace
}

// That which emits wiki pages.
type Parser interface {
	// Next gets the next page, or io.EOF at the end of the dump.
	Next() (*Page, error)
	// SiteInfo is the dump's header.
	SiteInfo() SiteInfo
}

type singleStreamParser struct {
	siteInfo SiteInfo
	x        *xml.Decoder
}

// NewParser gets a dump parser reading from the given reader.
func NewParser(r io.Reader) (Parser, error) {
	d := xml.NewDecoder(r)
	_, err := d.Token()
	if err != nil {
		return nil, err
	}

	si := SiteInfo{}
	err = d.Decode(&si)
	if err != nil {
		return nil, err
	}

	return &singleStreamParser{
		siteInfo: si,
		x:        d,
	}, nil
}

func (p *singleStreamParser) Next() (rv *Page, err error) {
	rv = new(Page)
	err = p.x.Decode(rv)
	if err != nil {
		return nil, err
	}
	return
}

func (p *singleStreamParser) SiteInfo() SiteInfo {
	return p.siteInfo
}

// OpenDump opens a single stream dump, decompressing it if its name
// ends in .bz2. Close the returned closer when done.
func OpenDump(path string) (Parser, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	var r io.Reader = bufio.NewReaderSize(f, 1<<20)
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(r)
	}

	p, err := NewParser(r)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return p, f, nil
}
