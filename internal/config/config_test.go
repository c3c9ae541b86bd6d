package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lsbstego.yaml")
	content := `
mode: hide
input: in.png
output: out.png
message: hello
ecc: golay
length_header: true
offset: 64
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Hide, cfg.Mode)
	assert.Equal(t, "in.png", cfg.Input)
	assert.Equal(t, "out.png", cfg.Output)
	assert.Equal(t, "hello", cfg.Message)
	assert.Equal(t, "golay", cfg.ECC)
	assert.Equal(t, int64(1234567890), cfg.Seed)
	assert.True(t, cfg.LengthHeader)
	require.NotNil(t, cfg.Offset)
	assert.Equal(t, 64, *cfg.Offset)
	require.NoError(t, cfg.Validate())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [hide"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	negative := -1
	test := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"hide", func(c *Config) {}, true},
		{"find", func(c *Config) { c.Mode, c.Length = Find, 2 }, true},
		{"find_header", func(c *Config) { c.Mode, c.LengthHeader = Find, true }, true},
		{"inspect", func(c *Config) { c.Mode, c.Output, c.Message = Inspect, "", "" }, true},
		{"no_mode", func(c *Config) { c.Mode = "" }, false},
		{"bad_mode", func(c *Config) { c.Mode = "peek" }, false},
		{"no_input", func(c *Config) { c.Input = "" }, false},
		{"long_input", func(c *Config) { c.Input = strings.Repeat("a", MaxPathLen+1) }, false},
		{"no_output", func(c *Config) { c.Output = "" }, false},
		{"same_output", func(c *Config) { c.Output = c.Input }, false},
		{"no_message", func(c *Config) { c.Message = "" }, false},
		{"long_message", func(c *Config) { c.Message = strings.Repeat("m", MaxMessageLen+1) }, false},
		{"find_no_length", func(c *Config) { c.Mode = Find }, false},
		{"find_negative", func(c *Config) { c.Mode, c.Length = Find, -2 }, false},
		{"bad_ecc", func(c *Config) { c.ECC = "hamming" }, false},
		{"bad_offset", func(c *Config) { c.Offset = &negative }, false},
		{"bad_level", func(c *Config) { c.LogLevel = "loud" }, false},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Mode = Hide
			cfg.Input = "in.bmp"
			cfg.Output = "out.bmp"
			cfg.Message = "hello"
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
