package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerResolution(t *testing.T) {
	assert.Equal(t, "Python", LanguageName("python"))
	assert.Equal(t, "Python", LanguageName("py"))
	assert.Equal(t, "Go", LanguageName("go"))
	assert.Equal(t, "fallback", LanguageName(""))
	assert.Equal(t, "fallback", LanguageName("definitely-not-a-language"))
}

func TestHighlightPlainKeepsLines(t *testing.T) {
	h := New("", WithoutColor())
	code := "def hello():\n    return 'hi'\n\nprint(hello())\n"

	out, err := h.Highlight(code, "python")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1 │ def hello():", lines[0])
	assert.Equal(t, "2 │     return 'hi'", lines[1])
	assert.Equal(t, "3 │ ", lines[2])
	assert.Equal(t, "4 │ print(hello())", lines[3])
}

func TestHighlightGutterWidth(t *testing.T) {
	h := New("", WithoutColor())
	code := strings.Repeat("x\n", 12)

	out, err := h.Highlight(code, "")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, " 1 │ x", lines[0])
	assert.Equal(t, "12 │ x", lines[11])
}

func TestHighlightUnknownLanguageStillRenders(t *testing.T) {
	out, err := New("", WithoutColor()).Highlight("some text", "klingon")
	require.NoError(t, err)
	assert.Equal(t, "1 │ some text", out)
}

func TestHighlightColorEmitsEscapes(t *testing.T) {
	out, err := New("monokai").Highlight("package main", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "main")
}

func TestHighlightEmpty(t *testing.T) {
	out, err := New("").Highlight("", "go")
	require.NoError(t, err)
	assert.Empty(t, out)
}
