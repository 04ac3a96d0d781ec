package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer wraps Glamour for rendering chapter bodies to styled
// terminal output.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a MarkdownRenderer with the given standard
// style ("dark", "light", "notty", ...) and word wrap width. The style is
// fixed instead of auto-detected because Bubble Tea owns the terminal.
func NewMarkdownRenderer(style string, width int) (*MarkdownRenderer, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating glamour renderer: %w", err)
	}
	return &MarkdownRenderer{renderer: r, width: width}, nil
}

// Width returns the wrap width the renderer was built with.
func (m *MarkdownRenderer) Width() int {
	if m == nil {
		return 0
	}
	return m.width
}

// Render processes markdown text into styled terminal output. A nil
// renderer passes the text through unchanged.
func (m *MarkdownRenderer) Render(md string) (string, error) {
	if md == "" {
		return "", nil
	}
	if m == nil || m.renderer == nil {
		return md, nil
	}
	return m.renderer.Render(md)
}
