package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	r, err := NewMarkdownRenderer("notty", 80)
	require.NoError(t, err)
	result, err := r.Render("Hello **world**")
	require.NoError(t, err)
	assert.Contains(t, result, "world")
	assert.Equal(t, 80, r.Width())
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	r, err := NewMarkdownRenderer("notty", 80)
	require.NoError(t, err)
	result, err := r.Render("```go\nfmt.Println(\"hello\")\n```")
	require.NoError(t, err)
	assert.Contains(t, result, "Println")
}

func TestRenderMarkdownEmpty(t *testing.T) {
	r, err := NewMarkdownRenderer("", 80)
	require.NoError(t, err)
	result, err := r.Render("")
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestRenderMarkdownNilPassesThrough(t *testing.T) {
	var r *MarkdownRenderer
	result, err := r.Render("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", result)
}
