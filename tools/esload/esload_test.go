package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dustin/go-wiktionary"
)

func TestBody(t *testing.T) {
	e := &wiktionary.Entry{
		Language:     "English",
		Lemma:        "house",
		PartOfSpeech: "noun",
		Pronunciations: []wiktionary.Pronunciation{
			{IPA: "/haʊs/"},
			{AudioURL: wiktionary.URLForFile("En-us-house.ogg")},
		},
		Definitions: []wiktionary.Definition{
			{Number: 1, Text: "a building", Examples: []wiktionary.Example{{Text: "My house."}}},
			{Number: 2, Text: "a family", Examples: []wiktionary.Example{}},
		},
	}

	b := body(e)
	assert.Equal(t, "house", b["lemma"])
	assert.Equal(t, []string{"a building", "a family"}, b["definitions"])
	assert.Equal(t, []string{"My house."}, b["examples"])
	assert.Equal(t, []string{"/haʊs/"}, b["ipa"])
	assert.NotContains(t, b, "inflected_form_of")

	e.IsInflectedForm = true
	e.InflectedFormOf = &wiktionary.InflectionReference{Lemma: "houses"}
	assert.Equal(t, "houses", body(e)["inflected_form_of"])
}
