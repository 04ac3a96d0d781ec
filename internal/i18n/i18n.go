// Package i18n localizes the interactive client's strings. Catalogs are
// TOML files embedded from locales/; English is the default and the
// fallback for any message a catalog lacks.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Translations resolves message ids for one active language.
type Translations struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	lang      string
}

// New loads the embedded catalogs and activates lang. An empty lang means
// English.
func New(lang string) (*Translations, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("listing locales: %w", err)
	}
	for _, file := range files {
		data, err := locales.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading locale file %s: %w", file, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(file)); err != nil {
			return nil, fmt.Errorf("loading locale file %s: %w", file, err)
		}
	}

	t := &Translations{bundle: bundle}
	if lang == "" {
		lang = "en"
	}
	if err := t.SetLanguage(lang); err != nil {
		return nil, err
	}
	return t, nil
}

// MustNew is New for callers that only pass known languages. Unknown
// languages fall back to English.
func MustNew(lang string) *Translations {
	t, err := New(lang)
	if err != nil {
		t, err = New("en")
		if err != nil {
			panic(err)
		}
	}
	return t
}

// SetLanguage switches the active language. Region subtags are accepted
// when the base language has a catalog ("es-MX" uses "es").
func (t *Translations) SetLanguage(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("language '%s' not supported", lang)
	}
	base, _ := tag.Base()
	for _, supported := range t.bundle.LanguageTags() {
		if b, _ := supported.Base(); b == base {
			t.localizer = goi18n.NewLocalizer(t.bundle, supported.String())
			t.lang = supported.String()
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

// Language returns the active catalog's tag, e.g. "es".
func (t *Translations) Language() string { return t.lang }

// Languages lists the tags of all embedded catalogs.
func (t *Translations) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// T returns the message for id. Unknown ids come back unchanged.
func (t *Translations) T(id string) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: id})
}

// Tf returns the message for id with template data applied.
func (t *Translations) Tf(id string, data map[string]any) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural selects the plural form of id for count. Count is also available
// to the template as {{.Count}}.
func (t *Translations) Plural(id string, count int) string {
	return t.localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (t *Translations) localize(cfg *goi18n.LocalizeConfig) string {
	out, err := t.localizer.Localize(cfg)
	if err != nil || out == "" {
		return cfg.MessageID
	}
	return out
}
