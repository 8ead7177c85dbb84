package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorRendersTemplates(t *testing.T) {
	tr := NewTranslator("en")

	got := tr.T("en", "confirm.remove", map[string]any{"Email": "a@b.com", "Activity": "Chess Club"})
	assert.Equal(t, "Remove a@b.com from Chess Club?", got)
	assert.Equal(t, "3 spots left", tr.T("en", "roster.spots_left", map[string]any{"Count": 3}))
}

func TestTranslatorFallbacks(t *testing.T) {
	tr := NewTranslator("en")

	assert.Equal(t, "Aucun participant pour l'instant", tr.T("fr", "roster.no_participants", nil))
	assert.Equal(t, "No participants yet", tr.T("de", "roster.no_participants", nil))
	assert.Equal(t, "missing.key", tr.T("en", "missing.key", nil))
	assert.Equal(t, "", tr.T("en", "", nil))
}

func TestNegotiate(t *testing.T) {
	tr := NewTranslator("en")

	assert.Equal(t, "fr", tr.Negotiate("fr-CH, fr;q=0.9, en;q=0.8"))
	assert.Equal(t, "en", tr.Negotiate("de-DE"))
	assert.Equal(t, "en", tr.Negotiate(""))
	assert.Equal(t, "fr", tr.Negotiate("", "fr"))
}

func TestInvalidDefaultLocaleFallsBackToEnglish(t *testing.T) {
	tr := NewTranslator("not a locale!")
	assert.Equal(t, "en", tr.Negotiate())
}
