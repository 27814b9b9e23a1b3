package config

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(`
display:
  backend: ws
  listen: ":9000"
wrap:
  low: {x: -8, y: -8}
  high: {x: 136, y: 72}
tick: 40ms
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, 128, c.Display.Width)
	assert.Equal(t, "ws", c.Display.Backend)
	assert.Equal(t, ":9000", c.Display.Listen)
	assert.Equal(t, image.Pt(-8, -8), c.Wrap.Low.Image())
	assert.Equal(t, image.Pt(136, 72), c.Wrap.High.Image())
	assert.Equal(t, 40*time.Millisecond, c.Tick)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadEmpty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestValidate(t *testing.T) {
	tables := []struct {
		name string
		yaml string
	}{
		{"size", "display: {width: 0}"},
		{"too big", "display: {width: 256, height: 64}"},
		{"wrap", "wrap: {high: {x: 0, y: 0}}"},
		{"tick", "tick: 0s"},
		{"backend", "display: {backend: crt}"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(table.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("database: sprites.db\n"), 0o644))

	c, err := LoadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "sprites.db", c.Database)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
