package diagram

import (
	"context"

	"github.com/julianshen/codexplain/internal/logger"
)

// View holds one diagram slot. It renders when first given input and again
// whenever the id or source changes; the new output replaces the old.
type View struct {
	renderer Renderer
	id       string
	source   string
	output   string
	err      error
	mounted  bool
}

// NewView creates an empty view backed by r.
func NewView(r Renderer) *View {
	return &View{renderer: r}
}

// SetInput updates the view's inputs, re-rendering only on change.
func (v *View) SetInput(id, source string) {
	if v.mounted && id == v.id && source == v.source {
		return
	}
	v.id, v.source, v.mounted = id, source, true
	v.output, v.err = SafeRender(v.renderer, id, source)
	if v.err != nil {
		logger.Warn(context.Background(), "diagram render failed", "id", id, "error", v.err)
	}
}

// SetRenderer swaps the renderer and re-renders the current input.
func (v *View) SetRenderer(r Renderer) {
	v.renderer = r
	if v.mounted {
		v.mounted = false
		v.SetInput(v.id, v.source)
	}
}

// Output returns the last rendered output, or "" before the first input.
func (v *View) Output() string { return v.output }

// Err returns the error from the last render, nil when it succeeded.
func (v *View) Err() error { return v.err }
