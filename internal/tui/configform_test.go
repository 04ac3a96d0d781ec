package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/codexplain/internal/config"
)

func TestConfigFormCreation(t *testing.T) {
	cfg := config.DefaultConfig()
	form := NewConfigForm(cfg, "/tmp/test-config.toml")
	assert.NotNil(t, form)
	assert.NotNil(t, form.Form())
	assert.Equal(t, 3, form.GroupCount())
}

func TestConfigFormSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()

	form := NewConfigForm(cfg, path)
	cfg.API.BaseURL = " http://backend:9000 "
	cfg.Generate.Language = "german"
	form.maxSizeStr = "2048"
	form.timeoutStr = "90s"
	require.NoError(t, form.Save())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", loaded.API.BaseURL)
	assert.Equal(t, "german", loaded.Generate.Language)
	assert.Equal(t, 2048, loaded.Generate.MaxFileSize)
	assert.Equal(t, 90*time.Second, loaded.API.Timeout)
}

func TestConfigFormApplyKeepsValuesThatDoNotParse(t *testing.T) {
	cfg := config.DefaultConfig()
	form := NewConfigForm(cfg, "")
	form.maxSizeStr = "lots"
	form.fetchTOStr = "soon"
	form.Apply()

	assert.Equal(t, 100000, cfg.Generate.MaxFileSize)
	assert.Equal(t, 30*time.Second, cfg.API.FetchTimeout)
}
