package wiktionary

import (
	"strings"
	"time"
)

// Level-3 headings that open a part-of-speech span, keyed by their
// lowercase title.
var partsOfSpeech = map[string]string{
	"noun":         "noun",
	"verb":         "verb",
	"adjective":    "adjective",
	"adverb":       "adverb",
	"pronoun":      "pronoun",
	"preposition":  "preposition",
	"conjunction":  "conjunction",
	"interjection": "interjection",
	"particle":     "particle",
	"determiner":   "determiner",
	"article":      "article",
	"numeral":      "numeral",
	"proper noun":  "proper_noun",
	"phrase":       "phrase",
}

// An EntryParser turns language sections into entries. It holds no
// state between calls; give each goroutine its own.
type EntryParser struct {
	// Version is recorded in each entry's metadata.
	Version string
	// Now stamps each entry; time.Now when nil.
	Now func() time.Time
}

// NewEntryParser gets a parser stamping the current ParserVersion.
func NewEntryParser() *EntryParser {
	return &EntryParser{Version: ParserVersion, Now: time.Now}
}

// Parse parses the section of a page for one language.
func Parse(language, title, wikitext string) []Entry {
	return NewEntryParser().Parse(language, title, wikitext)
}

// Parse turns one language section of the page titled title into
// entries: a single inflected-form entry if the section points back at
// another lemma, else one entry per part-of-speech span that has
// definitions. Empty input yields no entries.
func (p *EntryParser) Parse(language, title, wikitext string) []Entry {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(wikitext) == "" {
		return nil
	}

	meta := p.metadata()
	pronunciations := ExtractPronunciations(wikitext)
	if pronunciations == nil {
		pronunciations = []Pronunciation{}
	}

	if d := DetectInflectedForm(wikitext); d != nil {
		return []Entry{{
			Language:            language,
			Lemma:               title,
			IsInflectedForm:     true,
			InflectedFormOf:     d.reference(),
			PartOfSpeech:        d.PartOfSpeech,
			GrammaticalFeatures: d.Features,
			Pronunciations:      pronunciations,
			Metadata:            meta,
		}}
	}

	a := assembler{
		language:       language,
		lemma:          title,
		etymology:      ExtractEtymology(wikitext),
		pronunciations: pronunciations,
		meta:           meta,
	}
	a.scan(wikitext)

	if len(a.entries) == 0 {
		// No recognized part of speech yielded definitions; try the
		// section as a whole.
		a.assemble("", wikitext)
	}
	return a.entries
}

func (p *EntryParser) metadata() Metadata {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return Metadata{ParsedAt: now().UTC(), ParserVersion: p.Version}
}

type splitState int

const (
	scanning splitState = iota
	inPOS
)

// assembler splits a language section into part-of-speech spans and
// builds an entry from each one.
type assembler struct {
	language       string
	lemma          string
	etymology      string
	pronunciations []Pronunciation
	meta           Metadata

	state   splitState
	pos     string
	span    []string
	entries []Entry
}

func (a *assembler) scan(wikitext string) {
	for _, line := range lines(wikitext) {
		level, title, isHeading := heading(line)
		pos, isPOS := partsOfSpeech[strings.ToLower(title)]

		switch {
		case isHeading && level == 3 && isPOS:
			a.close()
			a.state, a.pos, a.span = inPOS, pos, []string{line}
		case isHeading && level == 3 && a.state == inPOS:
			a.close()
		case a.state == inPOS:
			a.span = append(a.span, line)
		}
	}
	a.close()
}

// close assembles the open span, if any, and returns to scanning.
func (a *assembler) close() {
	if a.state == inPOS {
		a.assemble(a.pos, strings.Join(a.span, "\n"))
	}
	a.state, a.pos, a.span = scanning, "", nil
}

// assemble emits an entry for text unless it has no definitions.
func (a *assembler) assemble(pos, text string) {
	defs := ExtractDefinitions(text)
	if len(defs) == 0 {
		return
	}
	a.entries = append(a.entries, Entry{
		Language:       a.language,
		Lemma:          a.lemma,
		PartOfSpeech:   pos,
		Etymology:      a.etymology,
		Pronunciations: a.pronunciations,
		Definitions:    defs,
		WordForms:      ExtractWordForms(a.language, text),
		Metadata:       a.meta,
	})
}
