package wiktionary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryKey(t *testing.T) {
	tests := []struct {
		e   Entry
		exp string
	}{
		{Entry{Language: "Spanish", Lemma: "correr", PartOfSpeech: "verb"}, "Spanish/correr/verb"},
		{Entry{Language: "French", Lemma: "fait", PartOfSpeech: "verb", IsInflectedForm: true}, "French/fait/form"},
		{Entry{Language: "English", Lemma: "xyzzy"}, "English/xyzzy/untyped"},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, test.e.Key())
	}
}

func TestEntryJSON(t *testing.T) {
	e := Entry{
		Language:       "Spanish",
		Lemma:          "casa",
		PartOfSpeech:   "noun",
		Pronunciations: []Pronunciation{},
		Definitions: []Definition{{
			Number:   1,
			Text:     "house",
			Examples: []Example{{Text: "Mi casa es tu casa."}},
		}},
		Metadata: Metadata{
			ParsedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			ParserVersion: ParserVersion,
		},
	}

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))

	assert.Equal(t, false, m["is_inflected_form"])
	assert.Equal(t, []interface{}{}, m["pronunciations"])
	assert.NotContains(t, m, "inflected_form_of")
	assert.NotContains(t, m, "grammatical_features")
	assert.NotContains(t, m, "etymology")
	assert.NotContains(t, m, "word_forms")

	def := m["definitions"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(1), def["definition_number"])
	ex := def["examples"].([]interface{})[0].(map[string]interface{})
	assert.Contains(t, ex, "translation")
	assert.Nil(t, ex["translation"])

	meta := m["metadata"].(map[string]interface{})
	assert.Equal(t, "2024-05-01T12:00:00Z", meta["parsed_at"])
	assert.Equal(t, ParserVersion, meta["parser_version"])
}

func TestMapFeature(t *testing.T) {
	f, ok := MapFeature("sg")
	assert.True(t, ok)
	assert.Equal(t, Feature{"number", "singular"}, f)

	f, ok = MapFeature("subj")
	assert.True(t, ok)
	assert.Equal(t, Feature{"mood", "subjunctive"}, f)

	_, ok = MapFeature("xyz")
	assert.False(t, ok)
	_, ok = MapFeature("")
	assert.False(t, ok)
}

func TestLanguages(t *testing.T) {
	code, ok := LanguageCode("Spanish")
	assert.True(t, ok)
	assert.Equal(t, "es", code)

	_, ok = LanguageCode("Klingon")
	assert.False(t, ok)

	langs := SupportedLanguages()
	assert.Len(t, langs, 12)
	assert.Equal(t, "Chinese", langs[0])
	assert.Equal(t, "Spanish", langs[len(langs)-1])
	assert.True(t, IsSupportedLanguage("Korean"))
}
