// Package export writes a tutorial to disk as a markdown site: plain
// markdown, a Hugo content tree, or a Docusaurus docs tree.
package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Document is a single output page.
type Document struct {
	Path    string // relative path, e.g. "chapters/01-intro.md"
	Title   string
	Content string
}

// Formats lists the supported output formats.
var Formats = []string{"raw-md", "hugo", "docusaurus"}

// Slug turns a title into a lowercase, ASCII, hyphen-separated file name.
// Accents are stripped so "Introducción" becomes "introduccion".
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
