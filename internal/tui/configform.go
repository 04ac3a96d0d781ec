package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/julianshen/codexplain/internal/config"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// ConfigForm wraps a Huh form for editing codexplain configuration.
type ConfigForm struct {
	form       *huh.Form
	cfg        *config.Config
	savePath   string
	maxSizeStr string
	timeoutStr string
	fetchTOStr string
}

// NewConfigForm creates a config editor form populated from the given config.
func NewConfigForm(cfg *config.Config, savePath string) *ConfigForm {
	cf := &ConfigForm{
		cfg:        cfg,
		savePath:   savePath,
		maxSizeStr: strconv.Itoa(cfg.Generate.MaxFileSize),
		timeoutStr: cfg.API.Timeout.String(),
		fetchTOStr: cfg.API.FetchTimeout.String(),
	}

	backendGroup := huh.NewGroup(
		huh.NewInput().
			Title("Backend URL").
			Placeholder("http://localhost:8000").
			Value(&cfg.API.BaseURL),
		huh.NewInput().
			Title("Generation timeout").
			Placeholder("5m").
			Value(&cf.timeoutStr),
		huh.NewInput().
			Title("Fetch timeout").
			Placeholder("30s").
			Value(&cf.fetchTOStr),
	).Title("Backend")

	languageOpts := make([]huh.Option[string], 0, len(tutorial.Languages))
	for _, l := range tutorial.Languages {
		languageOpts = append(languageOpts, huh.NewOption(l.Label(), string(l)))
	}

	generateGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Default output language").
			Options(languageOpts...).
			Value(&cfg.Generate.Language),
		huh.NewInput().
			Title("Default max file size (bytes)").
			Placeholder(strconv.Itoa(tutorial.DefaultMaxFileSize)).
			Value(&cf.maxSizeStr),
	).Title("Generate")

	uiGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Interface language").
			Options(
				huh.NewOption("English", "en"),
				huh.NewOption("Español", "es"),
			).
			Value(&cfg.UI.Locale),
		huh.NewInput().
			Title("Code style").
			Placeholder("monokai").
			Value(&cfg.UI.CodeStyle),
	).Title("Interface")

	cf.form = huh.NewForm(backendGroup, generateGroup, uiGroup).WithShowHelp(true)

	return cf
}

// GroupCount returns the number of form groups.
func (c *ConfigForm) GroupCount() int { return 3 }

// Config returns the config being edited.
func (c *ConfigForm) Config() *config.Config { return c.cfg }

// Apply copies the string-typed fields back into the config. Values that
// do not parse leave the previous setting in place.
func (c *ConfigForm) Apply() {
	if v, err := strconv.Atoi(strings.TrimSpace(c.maxSizeStr)); err == nil && v >= 0 {
		c.cfg.Generate.MaxFileSize = v
	}
	if d, err := time.ParseDuration(strings.TrimSpace(c.timeoutStr)); err == nil && d >= 0 {
		c.cfg.API.Timeout = d
	}
	if d, err := time.ParseDuration(strings.TrimSpace(c.fetchTOStr)); err == nil && d >= 0 {
		c.cfg.API.FetchTimeout = d
	}
	c.cfg.API.BaseURL = strings.TrimSpace(c.cfg.API.BaseURL)
}

// Save applies the edited fields and persists the config to disk.
func (c *ConfigForm) Save() error {
	c.Apply()
	if c.savePath == "" {
		return nil
	}
	return config.Save(c.savePath, c.cfg)
}

// Form returns the underlying huh.Form for Bubble Tea embedding.
func (c *ConfigForm) Form() *huh.Form { return c.form }

// SetForm replaces the underlying huh.Form. This is used when the form's
// Update method returns a new Form instance.
func (c *ConfigForm) SetForm(f *huh.Form) { c.form = f }

// IsCompleted returns true if the form has been completed (submitted).
func (c *ConfigForm) IsCompleted() bool { return c.form.State == huh.StateCompleted }

// IsAborted returns true if the form has been aborted (cancelled).
func (c *ConfigForm) IsAborted() bool { return c.form.State == huh.StateAborted }
