package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/folio/document"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, document.DefaultMaxPages, cfg.Render.MaxPages)
	assert.True(t, cfg.Render.Caching)
	assert.False(t, cfg.Render.Debug)
	assert.Equal(t, 4, cfg.Render.Workers)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[render]
max_pages = 40
debug = true

[log]
level = "debug"
`), 0o644))
	t.Setenv("FOLIO_RENDER_WORKERS", "9")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Render.MaxPages)
	assert.True(t, cfg.Render.Debug)
	assert.Equal(t, 9, cfg.Render.Workers)
	assert.Equal(t, log.DebugLevel, cfg.Level())

	s := cfg.Settings(nil)
	assert.Equal(t, 40, s.MaxPages)
	assert.True(t, s.EnableDebugging)
	assert.True(t, s.EnableCaching)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	require.NoError(t, os.WriteFile(path, []byte("[render]\nmax_pages = 0\n"), 0o644))
	_, err = Load(path)
	require.ErrorContains(t, err, "max_pages")
}
