package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToEnglish(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "en", tr.Language())
	assert.Equal(t, "Home", tr.T("nav.home"))
}

func TestSpanishCatalog(t *testing.T) {
	tr, err := New("es")
	require.NoError(t, err)
	assert.Equal(t, "Inicio", tr.T("nav.home"))
	assert.Equal(t, "Generar", tr.T("nav.generate"))
}

func TestRegionFallsBackToBaseLanguage(t *testing.T) {
	tr, err := New("es-MX")
	require.NoError(t, err)
	assert.Equal(t, "es", tr.Language())
}

func TestUnsupportedLanguage(t *testing.T) {
	_, err := New("ja")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")

	tr := MustNew("ja")
	assert.Equal(t, "en", tr.Language())
}

func TestTemplateData(t *testing.T) {
	tr := MustNew("en")
	assert.Equal(t, "Chapters (3)", tr.Tf("viewer.tab_chapters", map[string]any{"Count": 3}))
	assert.Equal(t, "Saved to /tmp/x", tr.Tf("notice.downloaded", map[string]any{"Path": "/tmp/x"}))
}

func TestUnknownIDReturnsID(t *testing.T) {
	tr := MustNew("en")
	assert.Equal(t, "no.such.message", tr.T("no.such.message"))
}

func TestSetLanguageSwitchesCatalog(t *testing.T) {
	tr := MustNew("en")
	require.NoError(t, tr.SetLanguage("es"))
	assert.Equal(t, "¡Copiado!", tr.T("notice.copied"))
	require.Error(t, tr.SetLanguage("not a tag!"))
	assert.Equal(t, "es", tr.Language())
}

func TestEveryEnglishMessageHasSpanish(t *testing.T) {
	en := MustNew("en")
	es := MustNew("es")
	for _, id := range []string{
		"nav.docs", "landing.cta", "generate.validation_repo", "generate.error_generic",
		"viewer.loading", "viewer.failed_title", "menu.new", "error.timeout",
		"notice.copy_failed", "status.health_unreachable", "help.quit",
	} {
		assert.NotEqual(t, id, en.T(id), id)
		assert.NotEqual(t, en.T(id), es.T(id), id)
	}
}

func TestLanguages(t *testing.T) {
	tr := MustNew("en")
	assert.ElementsMatch(t, []string{"en", "es"}, tr.Languages())
}
