// Package diagram turns backend diagram text into something displayable.
// The diagram grammar is opaque here: renderers hand the text to an
// external engine or show it verbatim.
package diagram

import (
	"errors"
	"fmt"
)

// ErrEmptySource is returned when there is no diagram text to render.
var ErrEmptySource = errors.New("diagram has no content")

// Renderer converts diagram text into display output. id is a stable,
// unique key for the diagram on the page.
type Renderer interface {
	Render(id, source string) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(id, source string) (string, error)

func (f RendererFunc) Render(id, source string) (string, error) { return f(id, source) }

// SafeRender calls r and never fails: a returned error or a panic inside
// the renderer yields a placeholder. The error, if any, is returned
// alongside so the caller can log it.
func SafeRender(r Renderer, id, source string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("diagram %s: renderer panicked: %v", id, p)
			out = Placeholder(id, err)
		}
	}()

	if r == nil {
		err = fmt.Errorf("diagram %s: no renderer configured", id)
		return Placeholder(id, err), err
	}
	out, err = r.Render(id, source)
	if err != nil {
		err = fmt.Errorf("diagram %s: %w", id, err)
		return Placeholder(id, err), err
	}
	return out, nil
}

// Placeholder is what a diagram slot shows when rendering failed.
func Placeholder(id string, err error) string {
	return placeholderStyle.Render(fmt.Sprintf("⚠ Diagram %s could not be rendered.\n%v", id, err))
}
