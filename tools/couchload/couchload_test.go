package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustin/go-wiktionary"
)

func TestEscapeKey(t *testing.T) {
	assert.Equal(t, "English%2fC%2b%2b%2fnoun", escapeKey("English/C++/noun"))
	assert.Equal(t, "plain", escapeKey("plain"))
}

func TestDocumentJSON(t *testing.T) {
	e := &wiktionary.Entry{Language: "Spanish", Lemma: "casa", PartOfSpeech: "noun"}
	d := document{ID: escapeKey(e.Key()), Entry: e}

	b, err := json.Marshal(&d)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "Spanish%2fcasa%2fnoun", m["_id"])
	assert.Equal(t, "casa", m["lemma"])
	assert.NotContains(t, m, "_rev")

	back := document{Entry: &wiktionary.Entry{}}
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "noun", back.PartOfSpeech)
}
