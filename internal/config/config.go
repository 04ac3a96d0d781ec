package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// Config represents the top-level application configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Generate GenerateConfig `toml:"generate"`
	UI       UIConfig       `toml:"ui"`
	Share    ShareConfig    `toml:"share"`
	Export   ExportConfig   `toml:"export"`
	History  HistoryConfig  `toml:"history"`
	Log      LogConfig      `toml:"log"`
}

// APIConfig locates the backend and bounds each call to it.
type APIConfig struct {
	BaseURL            string        `toml:"base_url"`
	Timeout            time.Duration `toml:"timeout"`
	FetchTimeout       time.Duration `toml:"fetch_timeout"`
	CompatibleVersions string        `toml:"compatible_versions"`
}

// GenerateConfig seeds a fresh Generate form.
type GenerateConfig struct {
	Language        string   `toml:"language"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	MaxFileSize     int      `toml:"max_file_size"`
}

// UIConfig holds presentation settings for the interactive client.
type UIConfig struct {
	Locale            string `toml:"locale"`
	Theme             string `toml:"theme"`
	CodeStyle         string `toml:"code_style"`
	DocsURL           string `toml:"docs_url"`
	DocsBreakpoint    int    `toml:"docs_breakpoint"`
	DiagramPreviewURL string `toml:"diagram_preview_url"`
}

// ShareConfig controls the link produced by the Share action.
type ShareConfig struct {
	BaseURL string `toml:"base_url"`
}

// ExportConfig holds defaults for the Download action and export command.
type ExportConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// HistoryConfig controls the local record of generated tutorial ids.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// LogConfig controls where the interactive client writes its log.
type LogConfig struct {
	File string `toml:"file"`
}

// ExportFormats lists the accepted values of export.format.
var ExportFormats = []string{"raw-md", "hugo", "docusaurus"}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		API: APIConfig{
			BaseURL:            "http://localhost:8000",
			Timeout:            5 * time.Minute,
			FetchTimeout:       30 * time.Second,
			CompatibleVersions: ">=1.0.0, <2.0.0",
		},
		Generate: GenerateConfig{
			Language:        "english",
			IncludePatterns: []string{"*.py", "*.js"},
			ExcludePatterns: []string{"tests/*", "docs/*"},
			MaxFileSize:     100000,
		},
		UI: UIConfig{
			Locale:            "en",
			Theme:             "dark",
			CodeStyle:         "monokai",
			DocsURL:           "https://github.com/julianshen/codexplain#readme",
			DocsBreakpoint:    90,
			DiagramPreviewURL: "https://mermaid.ink/svg/",
		},
		Share: ShareConfig{
			BaseURL: "http://localhost:3000",
		},
		Export: ExportConfig{
			Dir:    "tutorials",
			Format: "raw-md",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "history.db"),
		},
		Log: LogConfig{
			File: filepath.Join(dir, "codexplain.log"),
		},
	}
}

// Dir returns the codexplain configuration directory, ~/.config/codexplain.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codexplain"
	}
	return filepath.Join(home, ".config", "codexplain")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the TOML file at path on top of DefaultConfig. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Validate reports settings that would make the client misbehave.
func (c *Config) Validate() error {
	if c.API.Timeout < 0 || c.API.FetchTimeout < 0 {
		return fmt.Errorf("api timeouts must not be negative")
	}
	if c.API.CompatibleVersions != "" {
		if _, err := semver.NewConstraint(c.API.CompatibleVersions); err != nil {
			return fmt.Errorf("api.compatible_versions: %w", err)
		}
	}
	if c.UI.DocsBreakpoint < 0 {
		return fmt.Errorf("ui.docs_breakpoint must not be negative")
	}
	if c.Generate.MaxFileSize < 0 {
		return fmt.Errorf("generate.max_file_size must not be negative")
	}
	for _, f := range ExportFormats {
		if c.Export.Format == f {
			return nil
		}
	}
	return fmt.Errorf("export.format %q is not one of %v", c.Export.Format, ExportFormats)
}
