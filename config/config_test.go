package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	opts := cfg.FormatOptions()
	assert.Equal(t, "{", opts.Prefix)
	assert.Equal(t, "}", opts.Postfix)
	assert.Equal(t, "#9c9b9b", opts.PlaceholderColor)
	assert.NotNil(t, opts.NewID)

	g := cfg.Geometry()
	assert.Equal(t, 794.0, g.Width)
	assert.Equal(t, 120.0, g.ContentLeft())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadByExtension(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "formctl.toml",
			content: `
[page]
width = 600.0
margins = [10.0, 20.0, 10.0, 20.0]

[control]
prefix = "<<"
placeholder_color = "silver"
`,
		},
		{
			name: "yaml",
			file: "formctl.yml",
			content: `
page:
  width: 600
  margins: [10, 20, 10, 20]
control:
  prefix: "<<"
  placeholder_color: silver
`,
		},
		{
			name:    "json",
			file:    "formctl.json",
			content: `{"page":{"width":600,"margins":[10,20,10,20]},"control":{"prefix":"<<","placeholder_color":"silver"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, 600.0, cfg.Page.Width)
			// untouched keys keep their defaults
			assert.Equal(t, 1123.0, cfg.Page.Height)
			assert.Equal(t, [4]float64{10, 20, 10, 20}, cfg.Page.Margins)
			assert.Equal(t, "<<", cfg.Control.Prefix)
			assert.Equal(t, "}", cfg.Control.Postfix)
			assert.Equal(t, "#c0c0c0", cfg.FormatOptions().PlaceholderColor)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "formctl.ini", "just some words"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadSniffsContent(t *testing.T) {
	cfg, err := Load(writeFile(t, "formctl.conf", "[control]\npostfix = \">>\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ">>", cfg.Control.Postfix)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	path := writeFile(t, "formctl.toml", `
[page]
width = -1

[control]
prefix = ""
bracket_color = "not-a-color"
`)
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Config.Page.Width")
	assert.Contains(t, err.Error(), "Config.Control.Prefix")
	assert.Contains(t, err.Error(), "Config.Control.BracketColor")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FORMCTL_PREFIX", "[")
	t.Setenv("FORMCTL_POSTFIX", "]")
	t.Setenv("FORMCTL_PLACEHOLDER_COLOR", "#ABCDEF")
	t.Setenv("FORMCTL_LOG_LEVEL", "DEBUG")
	t.Setenv("FORMCTL_PAGE_WIDTH", "500.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "[", cfg.Control.Prefix)
	assert.Equal(t, "]", cfg.Control.Postfix)
	assert.Equal(t, "#abcdef", cfg.FormatOptions().PlaceholderColor)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500.5, cfg.Page.Width)
	assert.Equal(t, "debug", cfg.LoggerOptions().Level)
}

func TestApplyEnvOverridesBadNumber(t *testing.T) {
	t.Setenv("FORMCTL_PAGE_GAP", "wide")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#9C9B9B", "#9c9b9b", false},
		{"red", "#ff0000", false},
		{" Grey ", "#808080", false},
		{"#fff", "", true},
		{"chartreuse-ish", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ResolveColor(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
