package tutorial

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is the output language requested for a tutorial.
type Language string

const (
	English Language = "english"
	Spanish Language = "spanish"
	French  Language = "french"
	German  Language = "german"
)

// Languages lists the supported output languages in selector order.
var Languages = []Language{English, Spanish, French, German}

var languageTags = map[Language]language.Tag{
	English: language.English,
	Spanish: language.Spanish,
	French:  language.French,
	German:  language.German,
}

// ParseLanguage accepts a language name ("spanish") or a BCP-47 tag ("es").
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Languages {
		if string(l) == s {
			return l, nil
		}
	}
	if tag, err := language.Parse(s); err == nil {
		base, _ := tag.Base()
		for l, t := range languageTags {
			if b, _ := t.Base(); b == base {
				return l, nil
			}
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Tag returns the BCP-47 tag for the language.
func (l Language) Tag() language.Tag {
	if t, ok := languageTags[l]; ok {
		return t
	}
	return language.English
}

// Label returns the English display name, e.g. "Spanish".
func (l Language) Label() string {
	return display.English.Languages().Name(l.Tag())
}

// NativeLabel returns the language's name in itself, e.g. "español".
func (l Language) NativeLabel() string {
	return display.Self.Name(l.Tag())
}

// Next returns the language after l in selector order, wrapping around.
func (l Language) Next() Language { return l.step(1) }

// Prev returns the language before l in selector order, wrapping around.
func (l Language) Prev() Language { return l.step(-1) }

func (l Language) step(delta int) Language {
	idx := 0
	for i, candidate := range Languages {
		if candidate == l {
			idx = i
			break
		}
	}
	n := len(Languages)
	return Languages[((idx+delta)%n+n)%n]
}
