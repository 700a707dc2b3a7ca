package wiktionary

import "time"

// ParserVersion is stamped into every entry and entry file header.
const ParserVersion = "0.2.0"

// An Entry is the parse result for one part-of-speech span of a
// language section, or for a whole section that denotes an inflected
// form of another lemma.
type Entry struct {
	Language string `json:"language"`
	Lemma    string `json:"lemma"`

	IsInflectedForm bool `json:"is_inflected_form"`

	// Set only when IsInflectedForm is true.
	InflectedFormOf     *InflectionReference `json:"inflected_form_of,omitempty"`
	GrammaticalFeatures map[string]string    `json:"grammatical_features,omitempty"`

	PartOfSpeech   string          `json:"part_of_speech,omitempty"`
	Etymology      string          `json:"etymology,omitempty"`
	Pronunciations []Pronunciation `json:"pronunciations"`
	Definitions    []Definition    `json:"definitions,omitempty"`
	WordForms      []WordFormRef   `json:"word_forms,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// Metadata records when and by which parser version an entry was
// produced.
type Metadata struct {
	ParsedAt      time.Time `json:"parsed_at"`
	ParserVersion string    `json:"parser_version"`
}

// InflectionReference points an inflected form back at its lemma.
type InflectionReference struct {
	Lemma        string `json:"lemma"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
	Person       string `json:"person,omitempty"`
	Number       string `json:"number,omitempty"`
	Tense        string `json:"tense,omitempty"`
	Mood         string `json:"mood,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Case         string `json:"case,omitempty"`
}

// A Pronunciation has at least one of its fields set.
type Pronunciation struct {
	IPA      string `json:"ipa,omitempty"`
	Dialect  string `json:"dialect,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
}

// A Definition is a numbered sense. Numbers are 1-based and dense.
type Definition struct {
	Number   int       `json:"definition_number"`
	Text     string    `json:"text"`
	Examples []Example `json:"examples"`
}

// An Example is a usage line attached to a definition.
//
// Translation is never populated yet; the field is kept so files stay
// readable once it is.
type Example struct {
	Text        string  `json:"text"`
	Translation *string `json:"translation"`
}

// Word form kinds.
const (
	FormConjugation = "conjugation"
	FormDeclension  = "declension"
	FormVariant     = "variant"
)

// A WordFormRef names the template that generates a lemma's paradigm,
// or an alternative spelling given by a headword template.
type WordFormRef struct {
	Template  string `json:"template"`
	FormType  string `json:"form_type"`
	Form      string `json:"form,omitempty"`
	Reflexive bool   `json:"reflexive,omitempty"`
}

// Key is a stable document key for the entry: Language/lemma/pos,
// with "form" standing in for the part of speech on inflected forms.
func (e *Entry) Key() string {
	kind := e.PartOfSpeech
	switch {
	case e.IsInflectedForm:
		kind = "form"
	case kind == "":
		kind = "untyped"
	}
	return e.Language + "/" + e.Lemma + "/" + kind
}
