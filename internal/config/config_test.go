package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.API.Timeout)
	assert.Equal(t, 30*time.Second, cfg.API.FetchTimeout)
	assert.Equal(t, "english", cfg.Generate.Language)
	assert.Equal(t, []string{"*.py", "*.js"}, cfg.Generate.IncludePatterns)
	assert.Equal(t, []string{"tests/*", "docs/*"}, cfg.Generate.ExcludePatterns)
	assert.Equal(t, 100000, cfg.Generate.MaxFileSize)
	assert.Equal(t, "monokai", cfg.UI.CodeStyle)
	assert.Equal(t, 90, cfg.UI.DocsBreakpoint)
	assert.Equal(t, "raw-md", cfg.Export.Format)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "history.db", filepath.Base(cfg.History.Path))
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
[api]
base_url = "https://tutorials.example.com"
timeout = "10m"
fetch_timeout = "5s"

[generate]
language = "spanish"
include_patterns = ["*.go"]
max_file_size = 2048

[ui]
locale = "es"
docs_breakpoint = 120
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "https://tutorials.example.com", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.API.Timeout)
	assert.Equal(t, 5*time.Second, cfg.API.FetchTimeout)
	assert.Equal(t, "spanish", cfg.Generate.Language)
	assert.Equal(t, []string{"*.go"}, cfg.Generate.IncludePatterns)
	assert.Equal(t, 2048, cfg.Generate.MaxFileSize)
	assert.Equal(t, "es", cfg.UI.Locale)
	assert.Equal(t, 120, cfg.UI.DocsBreakpoint)
	// Fields not in the file keep their defaults.
	assert.Equal(t, []string{"tests/*", "docs/*"}, cfg.Generate.ExcludePatterns)
	assert.Equal(t, "monokai", cfg.UI.CodeStyle)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 100000, cfg.Generate.MaxFileSize)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[invalid toml..."), 0644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://backend:9000"
	cfg.API.Timeout = 90 * time.Second
	cfg.Generate.ExcludePatterns = []string{"vendor/*"}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Export.Format = "pdf"
	assert.ErrorContains(t, cfg.Validate(), "export.format")

	cfg = DefaultConfig()
	cfg.API.CompatibleVersions = "not-a-range"
	assert.ErrorContains(t, cfg.Validate(), "api.compatible_versions")

	cfg = DefaultConfig()
	cfg.UI.DocsBreakpoint = -1
	assert.Error(t, cfg.Validate())
}
