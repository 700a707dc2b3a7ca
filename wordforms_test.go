package wiktionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWordFormsReflexive(t *testing.T) {
	text := `===Verb===
{{es-verb}}
# to run away

====Conjugation====
{{es-conj|correrse}}`

	assert.Equal(t, []WordFormRef{{
		Template:  "es-conj",
		FormType:  FormConjugation,
		Form:      "correrse",
		Reflexive: true,
	}}, ExtractWordForms("Spanish", text))

	// Only Spanish marks reflexives.
	wfs := ExtractWordForms("Catalan", text)
	assert.Len(t, wfs, 1)
	assert.False(t, wfs[0].Reflexive)
}

func TestExtractWordFormsDeclension(t *testing.T) {
	text := "===Noun===\n{{de-noun|n|Hauses}}\n# house\n\n=====Declension=====\n{{de-ndecl|Haus}}\n"
	assert.Equal(t, []WordFormRef{{
		Template: "de-ndecl",
		FormType: FormDeclension,
		Form:     "Haus",
	}}, ExtractWordForms("German", text))
}

func TestExtractWordFormsNoParams(t *testing.T) {
	wfs := ExtractWordForms("French", "====Conjugation====\n{{fr-conj}}")
	assert.Equal(t, []WordFormRef{{Template: "fr-conj", FormType: FormConjugation}}, wfs)
}

func TestExtractWordFormsVariants(t *testing.T) {
	text := `{{es-noun|m}}
{{es-adj|corredora}}
{{es-noun|corredora}}
{{en-noun|es}}
{{en-verb|head=foo}}`

	assert.Equal(t, []WordFormRef{{
		Template: "es-adj",
		FormType: FormVariant,
		Form:     "corredora",
	}}, ExtractWordForms("Spanish", text))
}

func TestExtractWordFormsNone(t *testing.T) {
	assert.Empty(t, ExtractWordForms("Spanish", "===Verb===\n# to run"))
}
