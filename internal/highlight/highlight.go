// Package highlight renders source code as line-numbered, syntax-highlighted
// terminal text using chroma.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlighter formats code for a terminal.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithoutColor emits plain text; only the line-number gutter is added.
func WithoutColor() Option {
	return func(h *Highlighter) { h.formatter = formatters.NoOp }
}

// New creates a Highlighter using the named chroma style. Unknown names fall
// back to chroma's default style.
func New(style string, opts ...Option) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	h := &Highlighter{
		style:     styles.Get(style),
		formatter: formatters.TTY256,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Lexer resolves a language tag to a lexer by name, alias or file
// extension. Unknown or empty tags get the plain-text fallback lexer.
func Lexer(lang string) chroma.Lexer {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return lexers.Fallback
	}
	if l := lexers.Get(lang); l != nil {
		return l
	}
	return lexers.Fallback
}

// LanguageName returns the lexer name chosen for lang, e.g. "Python".
func LanguageName(lang string) string {
	return Lexer(lang).Config().Name
}

// Highlight returns code with a right-aligned line-number gutter. Line count
// and order match the input exactly.
func (h *Highlighter) Highlight(code, lang string) (string, error) {
	if code == "" {
		return "", nil
	}
	source := strings.Split(strings.TrimSuffix(code, "\n"), "\n")

	it, err := chroma.Coalesce(Lexer(lang)).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising %s: %w", lang, err)
	}
	lines := chroma.SplitTokensIntoLines(it.Tokens())

	width := len(fmt.Sprint(len(source)))
	var b strings.Builder
	for i := range source {
		var body strings.Builder
		if i < len(lines) {
			if err := h.formatter.Format(&body, h.style, chroma.Literator(trimNewlines(lines[i])...)); err != nil {
				return "", fmt.Errorf("formatting line %d: %w", i+1, err)
			}
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%*d │ %s", width, i+1, body.String())
	}
	return b.String(), nil
}

func trimNewlines(tokens []chroma.Token) []chroma.Token {
	out := make([]chroma.Token, 0, len(tokens))
	for _, t := range tokens {
		t.Value = strings.TrimRight(t.Value, "\r\n")
		if t.Value != "" {
			out = append(out, t)
		}
	}
	return out
}
