package wiktionary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// A formOfFamily is one kind of form-of template. Families are tried
// in declaration order and the first that matches anywhere wins.
type formOfFamily int

const (
	posFormOf          formOfFamily = iota // {{verb form of|...}}, {{noun form of|...}}
	langVerbFormOf                         // {{es-verb form of|...}}
	inflectionOf                           // {{inflection of|lang|lemma|...}}
	pastParticipleOf                       // {{past participle of|...}}
	presentParticipleOf                    // {{gerund of|...}}, {{present participle of|...}}
	looseFormOf                            // anything named "... form of"; only after a form-of headword
)

var familyRE = map[formOfFamily]*regexp.Regexp{}

// Families matched unconditionally, by priority.
var formOfFamilies = []formOfFamily{
	posFormOf, langVerbFormOf, inflectionOf, pastParticipleOf, presentParticipleOf,
}

var formHeadRE *regexp.Regexp

func init() {
	familyRE[posFormOf] = regexp.MustCompile(`\{\{(verb|noun|adj|adv) form of\|([^|]+)\|([^}]+)\}\}`)
	familyRE[langVerbFormOf] = regexp.MustCompile(`\{\{([a-z]{2,3})-verb form of\|([^}]+)\}\}`)
	familyRE[inflectionOf] = regexp.MustCompile(`\{\{inflection of\|([^|]+)\|([^|]+)\|([^}]+)\}\}`)
	familyRE[pastParticipleOf] = regexp.MustCompile(`\{\{past participle of\|([^|]+)\|([^}]+)\}\}`)
	familyRE[presentParticipleOf] = regexp.MustCompile(`\{\{(gerund|present participle) of\|([^|]+)\|([^}]+)\}\}`)
	familyRE[looseFormOf] = regexp.MustCompile(`(?i)\{\{[^}]*form of[^}]+\}\}`)

	formHeadRE = regexp.MustCompile(`\{\{head\|[^|}]+\|(?:(verb|noun|adj|adv) form|(participle|gerund)(?: form)?)\}\}`)
}

// Detection describes an inflected-form section.
type Detection struct {
	Lemma        string
	PartOfSpeech string
	FormType     string
	Features     map[string]string
}

// reference builds the back-reference carried by an inflected entry.
func (d *Detection) reference() *InflectionReference {
	return &InflectionReference{
		Lemma:        d.Lemma,
		PartOfSpeech: d.PartOfSpeech,
		Person:       d.Features["person"],
		Number:       d.Features["number"],
		Tense:        d.Features["tense"],
		Mood:         d.Features["mood"],
		Gender:       d.Features["gender"],
		Case:         d.Features["case"],
	}
}

// DetectInflectedForm decides whether a language section describes an
// inflected form of another lemma. It returns nil for lemma sections.
func DetectInflectedForm(wikitext string) *Detection {
	headPOS, haveHead := formHeadPOS(wikitext)

	var d *Detection
	for _, fam := range formOfFamilies {
		if tpl := familyRE[fam].FindString(wikitext); tpl != "" {
			d = parseFormOf(tpl)
			break
		}
	}
	if d == nil && haveHead {
		if tpl := familyRE[looseFormOf].FindString(wikitext); tpl != "" {
			d = parseFormOf(tpl)
		}
	}
	if d == nil {
		return nil
	}
	if d.PartOfSpeech == "" {
		d.PartOfSpeech = headPOS
	}
	return d
}

// formHeadPOS looks for a {{head|lang|verb form}}-style headword and
// maps it to a part of speech.
func formHeadPOS(wikitext string) (string, bool) {
	m := formHeadRE.FindStringSubmatch(wikitext)
	if m == nil {
		return "", false
	}
	switch m[1] + m[2] {
	case "verb", "participle", "gerund":
		return "verb", true
	case "noun":
		return "noun", true
	case "adj":
		return "adjective", true
	case "adv":
		return "adverb", true
	}
	return "", true
}

// parseFormOf reads the lemma and grammatical features out of a
// form-of template. A template without a usable lemma yields nil.
func parseFormOf(tpl string) *Detection {
	parts := templateParams(tpl)
	d := &Detection{Features: map[string]string{}}

	name := parts[0]
	switch {
	case strings.Contains(name, "verb form"):
		d.FormType, d.PartOfSpeech = "verb_form", "verb"
	case strings.Contains(name, "noun form"):
		d.FormType, d.PartOfSpeech = "noun_form", "noun"
	case strings.Contains(name, "adj form"), strings.Contains(name, "adjective form"):
		d.FormType, d.PartOfSpeech = "adjective_form", "adjective"
	case strings.Contains(name, "past participle"):
		d.FormType, d.PartOfSpeech = "participle", "verb"
		d.Features["participle"] = "past"
	case strings.Contains(name, "present participle"), strings.Contains(name, "gerund"):
		d.FormType, d.PartOfSpeech = "participle", "verb"
		d.Features["participle"] = "present"
	default:
		d.FormType = "inflected_form"
	}

	// The lemma follows the language code when there is one.
	lemmaAt := 1
	if len(parts) > 2 && utf8.RuneCountInString(parts[1]) <= 3 {
		lemmaAt = 2
	}
	if len(parts) <= lemmaAt || parts[lemmaAt] == "" {
		return nil
	}
	d.Lemma = parts[lemmaAt]

	for _, param := range parts[lemmaAt+1:] {
		if param == "" || strings.Contains(param, "=") {
			continue
		}
		// "1//3" offers alternatives; keep the first.
		if i := strings.Index(param, "//"); i >= 0 {
			param = param[:i]
		}
		if f, ok := MapFeature(param); ok {
			d.Features[f.Name] = f.Value
		}
	}

	return d
}
