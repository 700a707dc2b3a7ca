package wiktionary

import "sort"

// Languages whose sections the tools extract by default, keyed by the
// heading name used on English Wiktionary.
var languageCodes = map[string]string{
	"Chinese":    "zh",
	"Dutch":      "nl",
	"English":    "en",
	"French":     "fr",
	"German":     "de",
	"Italian":    "it",
	"Japanese":   "ja",
	"Korean":     "ko",
	"Polish":     "pl",
	"Portuguese": "pt",
	"Russian":    "ru",
	"Spanish":    "es",
}

// LanguageCode gets the ISO 639-1 code of a supported language.
func LanguageCode(language string) (string, bool) {
	c, ok := languageCodes[language]
	return c, ok
}

// IsSupportedLanguage reports whether language is in the supported set.
func IsSupportedLanguage(language string) bool {
	_, ok := languageCodes[language]
	return ok
}

// SupportedLanguages lists the supported language names, sorted.
func SupportedLanguages() []string {
	rv := make([]string, 0, len(languageCodes))
	for l := range languageCodes {
		rv = append(rv, l)
	}
	sort.Strings(rv)
	return rv
}
