package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Output formats accepted by the format setting.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type CopyConfig struct {
	Verify bool `yaml:"verify"`

	// IgnoreLineEndings verifies with CRLF and CR rewritten to LF.
	IgnoreLineEndings bool `yaml:"ignore_line_endings"`
}

type EmptyConfig struct {
	Remove bool `yaml:"remove"`
}

// ProjectConfig holds defaults read from dirsnap.yaml.
type ProjectConfig struct {
	Absolute  bool        `yaml:"absolute"`
	Relative  bool        `yaml:"relative"`
	Recursive bool        `yaml:"recursive"`
	FilesOnly bool        `yaml:"files_only"`
	Format    string      `yaml:"format,omitempty"`
	Copy      CopyConfig  `yaml:"copy"`
	Empty     EmptyConfig `yaml:"empty"`
}

// Load reads dirsnap.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, dirsnap.ConfigFileName))
}

// LoadFile reads and validates a config file. Unknown keys are rejected.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg ProjectConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", dirsnap.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks values that yaml decoding cannot.
func (c *ProjectConfig) Validate() error {
	switch c.Format {
	case "", FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unsupported format %q (want text, json or yaml)", dirsnap.ErrInvalidConfig, c.Format)
	}
}

// Options returns the snapshot options. When both path modes are set,
// absolute wins.
func (c *ProjectConfig) Options() dirsnap.Options {
	return dirsnap.Options{
		Absolute:  c.Absolute,
		Relative:  c.Relative,
		Recursive: c.Recursive,
		FilesOnly: c.FilesOnly,
	}.Normalized()
}

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file without touching the
// process environment.
func LoadEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

// ApplyEnv overrides settings from DIRSNAP_* keys. Keys without the prefix
// are ignored. Enabling one path mode clears the other.
func (c *ProjectConfig) ApplyEnv(env map[string]string) error {
	boolKeys := []struct {
		key   string
		apply func(bool)
	}{
		{"ABSOLUTE", func(v bool) {
			c.Absolute = v
			if v {
				c.Relative = false
			}
		}},
		{"RELATIVE", func(v bool) {
			c.Relative = v
			if v {
				c.Absolute = false
			}
		}},
		{"RECURSIVE", func(v bool) { c.Recursive = v }},
		{"FILES_ONLY", func(v bool) { c.FilesOnly = v }},
		{"COPY_VERIFY", func(v bool) { c.Copy.Verify = v }},
		{"COPY_IGNORE_LINE_ENDINGS", func(v bool) { c.Copy.IgnoreLineEndings = v }},
		{"EMPTY_REMOVE", func(v bool) { c.Empty.Remove = v }},
	}

	for _, bk := range boolKeys {
		raw, ok := env[dirsnap.EnvPrefix+bk.key]
		if !ok {
			continue
		}
		value, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", dirsnap.ErrInvalidConfig, dirsnap.EnvPrefix, bk.key, raw)
		}
		bk.apply(value)
	}

	if format, ok := env[dirsnap.EnvPrefix+"FORMAT"]; ok {
		c.Format = strings.ToLower(strings.TrimSpace(format))
	}
	return c.Validate()
}
