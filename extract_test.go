package wiktionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEtymology(t *testing.T) {
	text := "===Etymology===\nFrom Latin ''currere''.\n\n===Verb===\n# to run"
	assert.Equal(t, "From Latin currere.", ExtractEtymology(text))
	assert.Equal(t, "", ExtractEtymology("===Verb===\n# to run"))
}

func TestExtractPronunciationsMergesAudio(t *testing.T) {
	text := `===Pronunciation===
* {{IPA|es|/koˈreɾ/}}
* {{es-pr|+<audio:LL-Q1321 (spa)-file.wav<a:Spain>>}}

===Verb===
# to run`

	ps := ExtractPronunciations(text)
	require.Len(t, ps, 1)
	assert.Equal(t, Pronunciation{
		IPA:      "/koˈreɾ/",
		Dialect:  "Spain",
		AudioURL: CommonsFileBase + "LL-Q1321 (spa)-file.wav",
	}, ps[0])
}

func TestExtractPronunciationsKeepsDialect(t *testing.T) {
	text := `===Pronunciation===
* {{IPA|en|/ˈkʌlə/|a=RP}}
* {{audio|en|en-uk-colour.ogg|a=UK}}
* {{audio|en|en-uk-colour.ogg|a=UK}}
* {{audio|en|en-us-color.ogg|a=US}}`

	ps := ExtractPronunciations(text)
	require.Len(t, ps, 2)
	assert.Equal(t, "RP", ps[0].Dialect)
	assert.Equal(t, CommonsFileBase+"en-uk-colour.ogg", ps[0].AudioURL)
	assert.Equal(t, Pronunciation{
		Dialect:  "US",
		AudioURL: CommonsFileBase + "en-us-color.ogg",
	}, ps[1])
}

func TestExtractPronunciationsSlashes(t *testing.T) {
	ps := ExtractPronunciations("===Pronunciation===\n* IPA: /haʊs/, /hæʊs/\n")
	assert.Equal(t, []Pronunciation{{IPA: "/haʊs/"}, {IPA: "/hæʊs/"}}, ps)

	assert.Nil(t, ExtractPronunciations("===Verb===\n# to run"))
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		in      string
		kind    lineKind
		content string
	}{
		{"===Verb===", lineHeading, ""},
		{"==Spanish==", lineHeading, ""},
		{"====Conjugation====", lineSubheading, ""},
		{"# to run", lineDefinition, "to run"},
		{"#: Corro.", lineExample, "Corro."},
		{"#* 1605, Cervantes", lineExample, "1605, Cervantes"},
		{"#*: quoted", lineText, ""},
		{"## subsense", lineText, ""},
		{"{{es-verb}}", lineText, ""},
	}
	for _, test := range tests {
		kind, content := classifyLine(test.in)
		assert.Equal(t, test.kind, kind, test.in)
		assert.Equal(t, test.content, content, test.in)
	}
}

func TestExtractDefinitions(t *testing.T) {
	text := `===Verb===
{{es-verb}}

# to [[run]]
#: {{ux|es|Corro cada día.}}
#: Corro cada día.
# {{lb|es|intransitive}}
# to [[flow]]`

	defs := ExtractDefinitions(text)
	require.Len(t, defs, 2)

	assert.Equal(t, 1, defs[0].Number)
	assert.Equal(t, "to run", defs[0].Text)
	assert.Equal(t, []Example{{Text: "Corro cada día."}}, defs[0].Examples)

	assert.Equal(t, 2, defs[1].Number)
	assert.Equal(t, "to flow", defs[1].Text)
	assert.NotNil(t, defs[1].Examples)
	assert.Empty(t, defs[1].Examples)
}

func TestExtractDefinitionsScope(t *testing.T) {
	assert.Empty(t, ExtractDefinitions("# stray\n#: nope"))

	defs := ExtractDefinitions("# stray\n===Noun===\n# a [[house]]")
	require.Len(t, defs, 1)
	assert.Equal(t, "a house", defs[0].Text)

	defs = ExtractDefinitions("===Noun===\n# house\n====Synonyms====\n# hogar")
	require.Len(t, defs, 1)
	assert.Equal(t, "house", defs[0].Text)
}

func TestExtractDefinitionsExampleWithoutDefinition(t *testing.T) {
	defs := ExtractDefinitions("===Noun===\n#: orphan\n# house\n#: a house")
	require.Len(t, defs, 1)
	assert.Equal(t, []Example{{Text: "a house"}}, defs[0].Examples)
}
