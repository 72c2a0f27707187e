package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/asa/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"hours", "720h", 720 * time.Hour, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{2 * time.Hour}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "2h0m0s" {
		t.Errorf("MarshalText() = %v, want 2h0m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if cfg.Parser.MaxDepth != 256 {
		t.Errorf("Parser.MaxDepth = %v, want 256", cfg.Parser.MaxDepth)
	}
	if cfg.Parser.MaxInputLength != 1<<20 {
		t.Errorf("Parser.MaxInputLength = %v, want %d", cfg.Parser.MaxInputLength, 1<<20)
	}
	if cfg.Output.Format != "tree" {
		t.Errorf("Output.Format = %v, want tree", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should default to true")
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should default to false")
	}
	if cfg.History.Path == "" {
		t.Error("History.Path should have a default")
	}
	if cfg.History.Retention.Duration != 720*time.Hour {
		t.Errorf("History.Retention = %v, want 720h", cfg.History.Retention.Duration)
	}
	if cfg.Source() != "" {
		t.Errorf("Source() = %q, want empty", cfg.Source())
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/asa.toml")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Load() error = %v, want NOT_FOUND", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "asa.toml")

	configContent := `
[general]
log_level = "debug"

[parser]
max_depth = 64

[output]
format = "json"
color = false

[history]
enabled = true
path = "$ASA_TEST_DIR/history.db"
retention = "24h"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("ASA_TEST_DIR", tmpDir)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Parser.MaxDepth != 64 {
		t.Errorf("Parser.MaxDepth = %v, want 64", cfg.Parser.MaxDepth)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %v, want json", cfg.Output.Format)
	}
	if cfg.Output.Color {
		t.Error("Output.Color = true, want false")
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if want := filepath.Join(tmpDir, "history.db"); cfg.History.Path != want {
		t.Errorf("History.Path = %v, want %v", cfg.History.Path, want)
	}
	if cfg.History.Retention.Duration != 24*time.Hour {
		t.Errorf("History.Retention = %v, want 24h", cfg.History.Retention.Duration)
	}

	// Check defaults were applied for missing values
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text (default)", cfg.General.LogFormat)
	}
	if cfg.Parser.MaxInputLength != 1<<20 {
		t.Errorf("Parser.MaxInputLength = %v, want default", cfg.Parser.MaxInputLength)
	}
	if cfg.Source() != configPath {
		t.Errorf("Source() = %v, want %v", cfg.Source(), configPath)
	}
}

func TestLoad_YAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "asa.yaml")
	content := "parser:\n  max_depth: 32\noutput:\n  format: sexpr\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Parser.MaxDepth != 32 {
		t.Errorf("Parser.MaxDepth = %v, want 32", cfg.Parser.MaxDepth)
	}
	if cfg.Output.Format != "sexpr" {
		t.Errorf("Output.Format = %v, want sexpr", cfg.Output.Format)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown format", "[output]\nformat = \"xml\"\n", "output.format"},
		{"zero depth", "[parser]\nmax_depth = 0\n", "parser.max_depth"},
		{"bad level", "[general]\nlog_level = \"loud\"\n", "general.log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "asa.toml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			_, err := Load(configPath)
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err.Error(), tt.field)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "asa.toml")
	if err := os.WriteFile(configPath, []byte("[parser]\nmax_depth = 64\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("ASA_PARSER_MAX_DEPTH", "12")
	t.Setenv("ASA_OUTPUT_FORMAT", "yaml")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Parser.MaxDepth != 12 {
		t.Errorf("Parser.MaxDepth = %v, want 12 from environment", cfg.Parser.MaxDepth)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %v, want yaml from environment", cfg.Output.Format)
	}
}

func TestDiscover_NoConfigFound(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	originalWd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	defer os.Chdir(originalWd)

	cfg, err := Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Output.Format != "tree" || cfg.Source() != "" {
		t.Errorf("Discover() = %+v from %q, want defaults", cfg.Output, cfg.Source())
	}
}

func TestDiscover_ExplicitPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(configPath, []byte("[output]\nformat = \"json\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv(EnvConfigPath, configPath)

	cfg, err := Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %v, want json", cfg.Output.Format)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "asa.toml")

	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of written default error = %v", err)
	}
	want := Default()
	if cfg.General != want.General || cfg.Parser != want.Parser || cfg.Output != want.Output || cfg.History != want.History {
		t.Errorf("round trip = %+v, want %+v", cfg, want)
	}

	err = WriteDefault(path, false)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("second WriteDefault() error = %v, want INVALID_INPUT", err)
	}
	if err := WriteDefault(path, true); err != nil {
		t.Errorf("WriteDefault(overwrite) error = %v", err)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"parser:", "max_depth: 256", "format: tree"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteYAML() output lacks %q:\n%s", want, out)
		}
	}
}
