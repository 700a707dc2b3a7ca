package wiktionary

import (
	"regexp"
	"strings"
)

var definitionLineRE, exampleLineRE, slashIPARE, ipaTemplateRE *regexp.Regexp

func init() {
	definitionLineRE = regexp.MustCompile(`^#\s+[^:#*]`)
	exampleLineRE = regexp.MustCompile(`^#[*:]\s+`)
	ipaTemplateRE = regexp.MustCompile(`\{\{IPA\|[^|]*\|([^|}]+)(?:\|a=([^}]+))?\}\}`)
	slashIPARE = regexp.MustCompile(`/([^/]+)/`)
}

// ExtractEtymology returns the normalized body of the section's
// ===Etymology=== subsection, or "" if there is none.
func ExtractEtymology(wikitext string) string {
	body, ok := subsection(wikitext, 3, 3, "Etymology")
	if !ok {
		return ""
	}
	return Normalize(body)
}

// ExtractPronunciations reads the ===Pronunciation=== subsection.
func ExtractPronunciations(wikitext string) []Pronunciation {
	body, ok := subsection(wikitext, 3, 3, "Pronunciation")
	if !ok {
		return nil
	}

	var rv []Pronunciation
	for _, m := range ipaTemplateRE.FindAllStringSubmatch(body, -1) {
		p := Pronunciation{
			IPA:     strings.TrimSpace(m[1]),
			Dialect: strings.TrimSpace(m[2]),
		}
		if p.IPA != "" {
			rv = append(rv, p)
		}
	}

	// Bare /.../ transcriptions not already taken from a template.
	for _, m := range slashIPARE.FindAllStringSubmatch(body, -1) {
		if strings.TrimSpace(m[1]) == "" {
			continue
		}
		ipa := "/" + m[1] + "/"
		if !hasPronunciation(rv, func(p *Pronunciation) bool { return p.IPA == ipa }) {
			rv = append(rv, Pronunciation{IPA: ipa})
		}
	}

	for _, a := range findAudio(body) {
		url := URLForFile(a.file)
		if hasPronunciation(rv, func(p *Pronunciation) bool { return p.AudioURL == url }) {
			continue
		}
		rv = attachAudio(rv, url, a.dialect)
	}

	return rv
}

func hasPronunciation(ps []Pronunciation, match func(*Pronunciation) bool) bool {
	for i := range ps {
		if match(&ps[i]) {
			return true
		}
	}
	return false
}

// attachAudio gives the audio to the latest pronunciation that has
// none yet, or appends an audio-only pronunciation. An existing
// dialect is never overwritten.
func attachAudio(ps []Pronunciation, url, dialect string) []Pronunciation {
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].AudioURL != "" {
			continue
		}
		ps[i].AudioURL = url
		if ps[i].Dialect == "" {
			ps[i].Dialect = dialect
		}
		return ps
	}
	return append(ps, Pronunciation{Dialect: dialect, AudioURL: url})
}

type lineKind int

const (
	lineText lineKind = iota
	lineHeading
	lineSubheading
	lineDefinition
	lineExample
)

// classifyLine tells what a line of a part-of-speech span is, and
// returns its content with the list markup removed.
func classifyLine(line string) (lineKind, string) {
	if level, _, ok := heading(line); ok {
		if level <= 3 {
			return lineHeading, ""
		}
		return lineSubheading, ""
	}
	if definitionLineRE.MatchString(line) {
		return lineDefinition, strings.TrimSpace(strings.TrimLeft(line[1:], " \t"))
	}
	if loc := exampleLineRE.FindStringIndex(line); loc != nil {
		return lineExample, strings.TrimSpace(line[loc[1]:])
	}
	return lineText, ""
}

type definitionState int

const (
	beforeHeading definitionState = iota
	noOpenDefinition
	definitionOpen
	definitionsDone
)

// ExtractDefinitions reads the numbered senses following the first
// level-3 heading. Lines before that heading are never definitions.
// A heading met while a definition is open ends the scan.
func ExtractDefinitions(wikitext string) []Definition {
	var rv []Definition
	state := beforeHeading

	for _, line := range lines(wikitext) {
		kind, content := classifyLine(line)

		switch state {
		case beforeHeading:
			if kind == lineHeading {
				state = noOpenDefinition
			}
			continue
		case definitionOpen:
			if kind == lineHeading || kind == lineSubheading {
				state = definitionsDone
			}
		}
		if state == definitionsDone {
			break
		}

		switch kind {
		case lineDefinition:
			text := Normalize(content)
			if text == "" {
				state = noOpenDefinition
				continue
			}
			rv = append(rv, Definition{
				Number:   len(rv) + 1,
				Text:     text,
				Examples: []Example{},
			})
			state = definitionOpen
		case lineExample:
			if state != definitionOpen {
				continue
			}
			if text := Normalize(content); text != "" {
				d := &rv[len(rv)-1]
				d.Examples = append(d.Examples, Example{Text: text})
			}
		}
	}

	return rv
}
