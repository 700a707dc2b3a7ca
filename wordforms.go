package wiktionary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var paradigmTemplateRE, headwordTemplateRE *regexp.Regexp

// First parameters of headword templates that are gender or number
// flags rather than spellings.
var grammaticalMarkers = map[string]bool{
	"m": true, "f": true, "n": true, "c": true, "p": true,
	"sg": true, "pl": true, "mf": true, "mfbysense": true,
}

func init() {
	paradigmTemplateRE = regexp.MustCompile(`\{\{([a-z]{2,3}-(?:conj|decl|ndecl))(?:\|([^}]+))?\}\}`)
	headwordTemplateRE = regexp.MustCompile(`\{\{([a-z]{2,3}-(?:verb|noun|adj))(?:\|([^}]+))?\}\}`)
}

// ExtractWordForms records the conjugation or declension templates of
// a part-of-speech span, plus alternative spellings named by its
// headword templates. Paradigms are not generated.
func ExtractWordForms(language, wikitext string) []WordFormRef {
	var rv []WordFormRef

	if body, ok := subsection(wikitext, 4, 6, "Conjugation", "Declension"); ok {
		for _, m := range paradigmTemplateRE.FindAllStringSubmatch(body, -1) {
			wf := WordFormRef{Template: m[1], FormType: FormDeclension}
			if strings.Contains(m[1], "conj") {
				wf.FormType = FormConjugation
			}
			if first := firstParam(m[2]); first != "" && !strings.Contains(first, "=") {
				wf.Form = first
				wf.Reflexive = language == "Spanish" && strings.HasSuffix(first, "se")
			}
			rv = append(rv, wf)
		}
	}

	for _, m := range headwordTemplateRE.FindAllStringSubmatch(wikitext, -1) {
		first := firstParam(m[2])
		if first == "" || strings.Contains(first, "=") ||
			grammaticalMarkers[first] || utf8.RuneCountInString(first) <= 2 {
			continue
		}
		if hasForm(rv, first) {
			continue
		}
		rv = append(rv, WordFormRef{Template: m[1], FormType: FormVariant, Form: first})
	}

	return rv
}

func firstParam(params string) string {
	if params == "" {
		return ""
	}
	return strings.TrimSpace(strings.SplitN(params, "|", 2)[0])
}

func hasForm(wfs []WordFormRef, form string) bool {
	for _, wf := range wfs {
		if wf.Form == form {
			return true
		}
	}
	return false
}
