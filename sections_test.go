package wiktionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeading(t *testing.T) {
	tests := []struct {
		in    string
		level int
		title string
		ok    bool
	}{
		{"===Verb===", 3, "Verb", true},
		{"== French ==", 2, "French", true},
		{"====Conjugation==== ", 4, "Conjugation", true},
		{"===Verb==", 2, "Verb", true},
		{"=Title=", 0, "", false},
		{"====", 0, "", false},
		{"# ==not a heading==", 0, "", false},
	}
	for _, test := range tests {
		level, title, ok := heading(test.in)
		assert.Equal(t, test.level, level, test.in)
		assert.Equal(t, test.title, title, test.in)
		assert.Equal(t, test.ok, ok, test.in)
	}
}

func TestSubsection(t *testing.T) {
	text := "===Verb===\n# run\n====Conjugation====\n{{es-conj}}\n=====Usage=====\nx\n===Noun===\n# runner"

	body, ok := subsection(text, 4, 6, "conjugation")
	require.True(t, ok)
	assert.Equal(t, "{{es-conj}}", body)

	body, ok = subsection(text, 3, 3, "Noun")
	require.True(t, ok)
	assert.Equal(t, "# runner", body)

	_, ok = subsection(text, 3, 3, "Conjugation")
	assert.False(t, ok)
}

const testPage = "{{also|Avoir}}\r\n==French==\r\n===Verb===\r\n# to have\r\n\r\n----\r\n\r\n==Haitian Creole==\r\n===Verb===\r\n# to have\r\n"

func TestSplitLanguages(t *testing.T) {
	sections := SplitLanguages(testPage)
	require.Len(t, sections, 2)
	assert.Equal(t, "French", sections[0].Language)
	assert.Equal(t, "===Verb===\n# to have\n\n----", sections[0].Text)
	assert.Equal(t, "Haitian Creole", sections[1].Language)
	assert.Equal(t, "===Verb===\n# to have", sections[1].Text)

	assert.Empty(t, SplitLanguages("no headings here"))
}

func TestFindLanguage(t *testing.T) {
	text, ok := FindLanguage(testPage, "Haitian Creole")
	require.True(t, ok)
	assert.Contains(t, text, "# to have")

	_, ok = FindLanguage(testPage, "Spanish")
	assert.False(t, ok)
}

func TestParsePageFiltersLanguages(t *testing.T) {
	p := NewEntryParser()

	entries := p.ParsePage("avoir", testPage, IsSupportedLanguage)
	require.Len(t, entries, 1)
	assert.Equal(t, "French", entries[0].Language)

	assert.Len(t, p.ParsePage("avoir", testPage, nil), 2)
}
