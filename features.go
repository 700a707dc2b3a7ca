package wiktionary

// A Feature is a normalized grammatical feature, e.g. {number singular}.
type Feature struct {
	Name  string
	Value string
}

// Grammatical codes used in form-of template parameters.
var featureCodes = map[string]Feature{
	"1":    {"person", "1"},
	"2":    {"person", "2"},
	"3":    {"person", "3"},
	"s":    {"number", "singular"},
	"sg":   {"number", "singular"},
	"p":    {"number", "plural"},
	"pl":   {"number", "plural"},
	"pres": {"tense", "present"},
	"past": {"tense", "past"},
	"pret": {"tense", "preterite"},
	"fut":  {"tense", "future"},
	"impf": {"tense", "imperfect"},
	"perf": {"aspect", "perfect"},
	"ind":  {"mood", "indicative"},
	"sub":  {"mood", "subjunctive"},
	"subj": {"mood", "subjunctive"},
	"imp":  {"mood", "imperative"},
	"cond": {"mood", "conditional"},
	"inf":  {"form", "infinitive"},
	"m":    {"gender", "masculine"},
	"f":    {"gender", "feminine"},
	"n":    {"gender", "neuter"},
}

// MapFeature maps a grammatical code to its feature. Unknown codes
// report false.
func MapFeature(code string) (Feature, bool) {
	f, ok := featureCodes[code]
	return f, ok
}
