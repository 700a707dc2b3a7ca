package wiktionary

import (
	"regexp"
	"strings"
)

var headingRE *regexp.Regexp

func init() {
	headingRE = regexp.MustCompile(`^(={2,6})\s*([^=].*?)\s*(={2,6})\s*$`)
}

// heading classifies a line as a wiki heading, returning its level
// (number of surrounding '=' signs) and its trimmed title.
func heading(line string) (level int, title string, ok bool) {
	m := headingRE.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	level = len(m[1])
	if len(m[3]) < level {
		level = len(m[3])
	}
	return level, m[2], true
}

// lines splits text into lines, dropping carriage returns.
func lines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// subsection returns the body below the first heading at one of the
// given levels whose title matches (case-insensitively) one of names.
// The body runs until the next heading of level 3 or deeper, or the
// end of text.
func subsection(text string, minLevel, maxLevel int, names ...string) (string, bool) {
	var body []string
	in := false
	for _, line := range lines(text) {
		level, title, ok := heading(line)
		if in {
			if ok && level >= 3 {
				break
			}
			body = append(body, line)
			continue
		}
		if ok && level >= minLevel && level <= maxLevel {
			for _, n := range names {
				if strings.EqualFold(title, n) {
					in = true
					break
				}
			}
		}
	}
	if !in {
		return "", false
	}
	return strings.Join(body, "\n"), true
}

// A LanguageSection is one level-2 section of a page.
type LanguageSection struct {
	Language string
	Text     string
}

// SplitLanguages splits a page body at its ==Language== headings.
// Anything before the first such heading is dropped.
func SplitLanguages(wikitext string) []LanguageSection {
	var rv []LanguageSection
	var cur *LanguageSection
	var body []string

	flush := func() {
		if cur != nil {
			cur.Text = strings.TrimSpace(strings.Join(body, "\n"))
			rv = append(rv, *cur)
		}
		body = body[:0]
	}

	for _, line := range lines(wikitext) {
		if level, title, ok := heading(line); ok && level == 2 {
			flush()
			cur = &LanguageSection{Language: title}
			continue
		}
		if cur != nil {
			body = append(body, line)
		}
	}
	flush()

	return rv
}

// FindLanguage returns the named language's section of a page.
func FindLanguage(wikitext, language string) (string, bool) {
	for _, s := range SplitLanguages(wikitext) {
		if s.Language == language {
			return s.Text, true
		}
	}
	return "", false
}

// ParsePage parses every language section of a page accepted by keep
// (all of them if keep is nil).
func (p *EntryParser) ParsePage(title, wikitext string, keep func(language string) bool) []Entry {
	var rv []Entry
	for _, s := range SplitLanguages(wikitext) {
		if keep != nil && !keep(s.Language) {
			continue
		}
		rv = append(rv, p.Parse(s.Language, title, s.Text)...)
	}
	return rv
}
