package diagram

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRenderer struct {
	calls int
	last  string
}

func (c *countingRenderer) Render(id, source string) (string, error) {
	c.calls++
	c.last = id + ":" + source
	return "rendered " + c.last, nil
}

func TestSafeRenderSuccess(t *testing.T) {
	out, err := SafeRender(RendererFunc(func(id, source string) (string, error) {
		return "<" + source + ">", nil
	}), "d0", "graph TD")
	require.NoError(t, err)
	assert.Equal(t, "<graph TD>", out)
}

func TestSafeRenderError(t *testing.T) {
	out, err := SafeRender(RendererFunc(func(id, source string) (string, error) {
		return "", errors.New("syntax error on line 2")
	}), "d1", "graph ???")
	require.Error(t, err)
	assert.Contains(t, out, "could not be rendered")
	assert.Contains(t, out, "syntax error on line 2")
}

func TestSafeRenderRecoversPanic(t *testing.T) {
	out, err := SafeRender(RendererFunc(func(id, source string) (string, error) {
		panic("renderer exploded")
	}), "d2", "graph TD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renderer exploded")
	assert.Contains(t, out, "could not be rendered")
}

func TestSafeRenderNilRenderer(t *testing.T) {
	out, err := SafeRender(nil, "d3", "graph TD")
	require.Error(t, err)
	assert.Contains(t, out, "could not be rendered")
}

func TestViewRendersOnMountAndOnChange(t *testing.T) {
	r := &countingRenderer{}
	v := NewView(r)
	assert.Empty(t, v.Output())

	v.SetInput("d0", "graph TD\nA-->B")
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, "rendered d0:graph TD\nA-->B", v.Output())

	v.SetInput("d0", "graph TD\nA-->B")
	assert.Equal(t, 1, r.calls, "same input must not re-render")

	v.SetInput("d0", "graph LR\nA-->C")
	assert.Equal(t, 2, r.calls)
	assert.Equal(t, "rendered d0:graph LR\nA-->C", v.Output())

	v.SetInput("d1", "graph LR\nA-->C")
	assert.Equal(t, 3, r.calls)
	assert.Equal(t, "rendered d1:graph LR\nA-->C", v.Output())
}

func TestViewFailureDoesNotKeepStaleOutput(t *testing.T) {
	fail := false
	v := NewView(RendererFunc(func(id, source string) (string, error) {
		if fail {
			return "", errors.New("bad")
		}
		return "ok", nil
	}))
	v.SetInput("d0", "a")
	assert.Equal(t, "ok", v.Output())
	assert.NoError(t, v.Err())

	fail = true
	v.SetInput("d0", "b")
	assert.Error(t, v.Err())
	assert.Contains(t, v.Output(), "could not be rendered")
}

func TestViewSetRendererRerenders(t *testing.T) {
	first, second := &countingRenderer{}, &countingRenderer{}
	v := NewView(first)
	v.SetRenderer(second)
	assert.Equal(t, 0, second.calls, "nothing to render before input")

	v.SetInput("d0", "x")
	v.SetRenderer(first)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestTerminalRenderer(t *testing.T) {
	r := NewTerminalRenderer(DefaultPreviewURL, 0)
	out, err := r.Render("d0", "graph TD\nA-->B\n")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "A-->B")
	assert.Contains(t, out, DefaultPreviewURL)
}

func TestTerminalRendererEmptySource(t *testing.T) {
	_, err := NewTerminalRenderer("", 0).Render("d0", "  \n")
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestPreviewLink(t *testing.T) {
	r := NewTerminalRenderer("https://mermaid.ink/svg/", 0)
	link := r.PreviewLink("graph TD\nA-->B")
	require.True(t, strings.HasPrefix(link, "https://mermaid.ink/svg/"))

	decoded, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(link, "https://mermaid.ink/svg/"))
	require.NoError(t, err)
	assert.Equal(t, "graph TD\nA-->B", string(decoded))

	assert.Empty(t, NewTerminalRenderer("", 0).PreviewLink("graph TD"))
}

func TestSVGPageEscapesSource(t *testing.T) {
	r := &SVGRenderer{script: DefaultMermaidScript}
	u := r.pageURL("graph TD\nA[<b>]-->B")
	require.True(t, strings.HasPrefix(u, "data:text/html;base64,"))

	page, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(u, "data:text/html;base64,"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "A[&lt;b&gt;]--&gt;B")
	assert.Contains(t, string(page), DefaultMermaidScript)
}
