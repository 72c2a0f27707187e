package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwconfig "github.com/msto63/asa/foundation/core/config"
	mdwerror "github.com/msto63/asa/foundation/core/error"
)

// EnvPrefix prefixes environment overrides, e.g. ASA_PARSER_MAX_DEPTH
const EnvPrefix = "ASA"

// EnvConfigPath names the variable that points at an explicit config file
const EnvConfigPath = "ASA_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	History HistoryConfig `toml:"history" yaml:"history"`

	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ParserConfig holds parser limits
type ParserConfig struct {
	MaxDepth       int `toml:"max_depth" yaml:"max_depth"`
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// HistoryConfig holds parse history settings
type HistoryConfig struct {
	Enabled   bool     `toml:"enabled" yaml:"enabled"`
	Path      string   `toml:"path" yaml:"path"`
	Retention Duration `toml:"retention" yaml:"retention"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// OutputFormats lists the values accepted by output.format
var OutputFormats = []string{"tree", "json", "yaml", "sexpr"}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{Output: OutputConfig{Color: true}}
	cfg.applyDefaults()
	return cfg
}

// Rules returns the validation rules for the raw configuration keys
func Rules() mdwconfig.ValidationRules {
	return mdwconfig.ValidationRules{
		"general.log_level": {
			Type:  "string",
			OneOf: []string{"trace", "debug", "info", "warn", "error", "off"},
		},
		"general.log_format": {
			Type:  "string",
			OneOf: []string{"json", "text", "console", "logfmt"},
		},
		"parser.max_depth": {
			Type: "int",
			Min:  mdwconfig.IntPtr(1),
			Max:  mdwconfig.IntPtr(100000),
		},
		"parser.max_input_length": {
			Type: "int",
			Min:  mdwconfig.IntPtr(1),
		},
		"output.format": {
			Type:  "string",
			OneOf: OutputFormats,
		},
		"output.color":    {Type: "bool"},
		"history.enabled": {Type: "bool"},
	}
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	src, err := mdwconfig.LoadWithOptions(path, mdwconfig.LoadOptions{
		Format:    mdwconfig.FormatAuto,
		EnvPrefix: EnvPrefix,
	})
	if err != nil {
		return nil, err
	}
	return FromSource(src)
}

// Discover loads the file named by ASA_CONFIG, or else the first of
// ./asa.toml, ./asa.yaml and the user configuration directory. Without any
// file the defaults apply, still subject to environment overrides.
func Discover() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	src, err := mdwconfig.Discover(mdwconfig.DefaultDiscoveryOptions())
	if err != nil {
		return nil, err
	}
	return FromSource(src)
}

// FromSource validates raw configuration values and maps them onto Config
func FromSource(src *mdwconfig.Config) (*Config, error) {
	if err := src.Validate(Rules()).Err(); err != nil {
		return nil, err
	}

	d := Default()
	cfg := &Config{
		General: GeneralConfig{
			LogLevel:  src.GetString("general.log_level", d.General.LogLevel),
			LogFormat: src.GetString("general.log_format", d.General.LogFormat),
		},
		Parser: ParserConfig{
			MaxDepth:       src.GetInt("parser.max_depth", d.Parser.MaxDepth),
			MaxInputLength: src.GetInt("parser.max_input_length", d.Parser.MaxInputLength),
		},
		Output: OutputConfig{
			Format: src.GetString("output.format", d.Output.Format),
			Color:  src.GetBool("output.color", d.Output.Color),
		},
		History: HistoryConfig{
			Enabled:   src.GetBool("history.enabled", d.History.Enabled),
			Path:      src.GetString("history.path", d.History.Path),
			Retention: Duration{src.GetDuration("history.retention", d.History.Retention.Duration)},
		},
		source: src.FilePath(),
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Parser
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = 256
	}
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = 1 << 20
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}

	// History
	if c.History.Path == "" {
		c.History.Path = defaultHistoryPath()
	}
	if c.History.Retention.Duration == 0 {
		c.History.Retention.Duration = 30 * 24 * time.Hour
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "./data/history.db"
	}
	return filepath.Join(dir, "asa", "history.db")
}

// Source returns the file the configuration was read from, if any
func (c *Config) Source() string {
	return c.source
}

// WriteTOML writes the configuration as TOML
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteYAML writes the configuration as YAML
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// WriteDefault writes the default configuration to path as TOML. An
// existing file is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return mdwerror.New(fmt.Sprintf("config file already exists: %s", path)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.WriteDefault").
			WithDetail("filePath", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return mdwerror.Wrap(err, "failed to inspect config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.WriteDefault")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return mdwerror.Wrap(err, "failed to create config directory").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.WriteDefault")
	}

	f, err := os.Create(path)
	if err != nil {
		return mdwerror.Wrap(err, "failed to create config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.WriteDefault")
	}
	defer f.Close()

	return Default().WriteTOML(f)
}
