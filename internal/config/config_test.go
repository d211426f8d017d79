package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `absolute: false
relative: true
recursive: true
files_only: true
format: json

copy:
  verify: true
  ignore_line_endings: true

empty:
  remove: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, dirsnap.ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Relative)
	assert.True(t, cfg.Recursive)
	assert.True(t, cfg.FilesOnly)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.Copy.Verify)
	assert.True(t, cfg.Copy.IgnoreLineEndings)
	assert.True(t, cfg.Empty.Remove)
	assert.Equal(t, dirsnap.Options{Relative: true, Recursive: true, FilesOnly: true}, cfg.Options())
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dirsnap.ConfigFileName), nil, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dirsnap.Options{}, cfg.Options())
	assert.Empty(t, cfg.Format)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "recursive: [unclosed"},
		{"unknown key", "recursve: true\n"},
		{"wrong type", "recursive: maybe\n"},
		{"bad format", "format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "custom.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFile(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, dirsnap.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestOptions_BothPathModes(t *testing.T) {
	cfg := &ProjectConfig{Absolute: true, Relative: true}
	assert.Equal(t, dirsnap.Options{Absolute: true}, cfg.Options())
}

func TestLoadEnvFile_ApplyEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# overrides
DIRSNAP_RELATIVE=true
DIRSNAP_RECURSIVE="1"
DIRSNAP_FORMAT=YAML
DIRSNAP_COPY_IGNORE_LINE_ENDINGS=true
UNRELATED=ignored
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	env, err := LoadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ignored", env["UNRELATED"])

	cfg := &ProjectConfig{Absolute: true, FilesOnly: true}
	require.NoError(t, cfg.ApplyEnv(env))

	assert.False(t, cfg.Absolute, "relative override clears absolute")
	assert.True(t, cfg.Relative)
	assert.True(t, cfg.Recursive)
	assert.True(t, cfg.FilesOnly, "untouched keys keep file values")
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.True(t, cfg.Copy.IgnoreLineEndings)
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad boolean", map[string]string{"DIRSNAP_RECURSIVE": "sometimes"}},
		{"bad format", map[string]string{"DIRSNAP_FORMAT": "toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ProjectConfig{}
			err := cfg.ApplyEnv(tt.env)
			require.Error(t, err)
			assert.True(t, errors.Is(err, dirsnap.ErrInvalidConfig))
		})
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	_, err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
