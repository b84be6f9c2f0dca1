package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	pl0 "go.pl0.dev/pkg"
)

// DefaultPath is looked up when no config file is given explicitly.
const DefaultPath = "./pl0c.toml"

type Config struct {
	MaxScopeSize    uint   `toml:"max_scope_size" yaml:"max_scope_size"`
	StrictConstants bool   `toml:"strict_constants" yaml:"strict_constants"`
	NoColor         bool   `toml:"no_color" yaml:"no_color"`
	Output          Output `toml:"output" yaml:"output"`
	Watch           Watch  `toml:"watch" yaml:"watch"`
}

type Output struct {
	AST string `toml:"ast" yaml:"ast"` // none, text or json
}

type Watch struct {
	Debounce time.Duration `toml:"debounce" yaml:"debounce"`
	Include  []string      `toml:"include" yaml:"include"`
	Exclude  []string      `toml:"exclude" yaml:"exclude"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

// Load reads a TOML or YAML config file, chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOrDefault loads path. A missing file is only an error when the path
// was given explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

func (c *Config) Validate() error {
	switch c.Output.AST {
	case "none", "text", "json":
	default:
		return fmt.Errorf("output.ast must be none, text or json, got %q", c.Output.AST)
	}

	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce must not be negative")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxScopeSize == 0 {
		c.MaxScopeSize = pl0.MaxScopeSize
	}

	if c.Output.AST == "" {
		c.Output.AST = "none"
	}

	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 300 * time.Millisecond
	}

	if len(c.Watch.Include) == 0 {
		c.Watch.Include = []string{"*.pl0"}
	}
}
