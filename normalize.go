package wiktionary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Templates carrying no definitional text. They are removed together
// with their parameters.
var metadataTemplates = []string{
	"syn", "ant", "cog", "der", "inh", "bor", "lb", "l", "link",
	"gloss", "qualifier", "q", "topics", "categorize", "cln",
	"c", "C", "trans-top", "trans-bottom", "trans-mid",
	"see", "seeCites", "cite", "quote-book", "quote-journal",
	"ux", "uxi", "usex", "afex",
}

// Templates expanded to "<name> <target word>" so the referenced lemma
// survives normalization.
var formOfTemplateNames = []string{
	"plural of", "feminine of", "masculine of", "singular of",
	"past of", "present of", "past tense of", "past participle of",
	"gerund of", "present participle of", "comparative of", "superlative of",
	"diminutive of", "augmentative of", "alternative form of", "archaic form of",
	"obsolete form of", "inflection of", "conjugation of",
}

var refRE, selfClosingRefRE, metadataRE, quoteRE, formOfRE, templateRE *regexp.Regexp

func init() {
	refRE = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>`)
	selfClosingRefRE = regexp.MustCompile(`<ref[^>]*/>`)
	metadataRE = regexp.MustCompile(`\{\{(?:` + quoteAll(metadataTemplates) +
		`|RQ:[^|}]*|cite-[^|}]*|quote-[^|}]*)(?:\|[^}]*)?\}\}`)
	quoteRE = regexp.MustCompile(`'{2,}`)
	formOfRE = regexp.MustCompile(`\{\{(` + quoteAll(formOfTemplateNames) + `)(\|[^}]+)?\}\}`)
	templateRE = regexp.MustCompile(`\{\{([^}|]+)(\|[^}]*)?\}\}`)
}

func quoteAll(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = regexp.QuoteMeta(n)
	}
	return strings.Join(q, "|")
}

// The normalization passes, in the order they must run. Form-of
// expansion has to precede the generic template strip or the target
// word is lost.
var normalizePasses = []func(string) string{
	stripRefs,
	stripMetadataTemplates,
	rewriteLinks,
	stripQuotes,
	expandFormOf,
	stripTemplates,
	collapseSpace,
}

// Normalize reduces a fragment of wikitext to plain text.
func Normalize(text string) string {
	for _, pass := range normalizePasses {
		text = pass(text)
	}
	return text
}

func stripRefs(text string) string {
	text = selfClosingRefRE.ReplaceAllString(text, "")
	return refRE.ReplaceAllString(text, "")
}

func stripMetadataTemplates(text string) string {
	return metadataRE.ReplaceAllString(text, "")
}

func stripQuotes(text string) string {
	return quoteRE.ReplaceAllString(text, "")
}

func expandFormOf(text string) string {
	return formOfRE.ReplaceAllStringFunc(text, func(tpl string) string {
		parts := templateParams(tpl)
		name := parts[0]
		if len(parts) < 2 {
			return name
		}
		if target := formOfTarget(parts[1:]); target != "" {
			return name + " " + target
		}
		return name
	})
}

// formOfTarget picks the first parameter longer than three characters
// (language codes are not), or the last one.
func formOfTarget(params []string) string {
	for i, p := range params {
		if utf8.RuneCountInString(p) > 3 || i == len(params)-1 {
			return p
		}
	}
	return ""
}

// stripTemplates reduces any remaining {{name|...}} to its name.
func stripTemplates(text string) string {
	return templateRE.ReplaceAllString(text, "${1}")
}

func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// templateParams splits a {{...}} template into its trimmed,
// pipe-separated parts; the first part is the template name.
func templateParams(tpl string) []string {
	tpl = strings.TrimSuffix(strings.TrimPrefix(tpl, "{{"), "}}")
	parts := strings.Split(tpl, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
