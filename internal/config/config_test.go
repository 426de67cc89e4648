package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Language != "javascript" {
		t.Errorf("Language = %q, want javascript", cfg.Language)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Output.Format = %q, want human", cfg.Output.Format)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Input.MaxFileSizeBytes <= 0 {
		t.Error("MaxFileSizeBytes should be positive")
	}
	if cfg.Cache.Path != "" {
		t.Errorf("Cache.Path = %q, want cache disabled by default", cfg.Cache.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"defaults", func(*Config) {}, ""},
		{"typescript alias", func(c *Config) { c.Language = "ts" }, ""},
		{"tsx", func(c *Config) { c.Language = "tsx" }, ""},
		{"unknown language", func(c *Config) { c.Language = "python" }, "language"},
		{"json output", func(c *Config) { c.Output.Format = "json" }, ""},
		{"unknown output", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"level uppercase", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"empty max size", func(c *Config) { c.Logging.MaxSize = "" }, ""},
		{"bad max size", func(c *Config) { c.Logging.MaxSize = "lots" }, "logging.maxSize"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.maxBackups"},
		{"negative input limit", func(c *Config) { c.Input.MaxFileSizeBytes = -5 }, "input.maxFileSizeBytes"},
		{"no input limit", func(c *Config) { c.Input.MaxFileSizeBytes = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() returned unexpected error: %v", err)
				}
				return
			}

			cerr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() error type = %T, want *ConfigError", err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cerr.Field, tt.wantField)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "output.format", Message: "unknown format"}

	want := "config error in field 'output.format': unknown format"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	result, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if result.Path != "" {
		t.Errorf("Path = %q, want empty when no file exists", result.Path)
	}
	if *result.Config != *DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", result.Config)
	}
}

func TestLoadConfig_FromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jscore.toml")
	writeFile(t, path, `
language = "typescript"

[output]
format = "json"

[input]
maxFileSizeBytes = 2048
`)

	result, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg := result.Config
	if cfg.Language != "typescript" {
		t.Errorf("Language = %q, want typescript", cfg.Language)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Input.MaxFileSizeBytes != 2048 {
		t.Errorf("MaxFileSizeBytes = %d, want 2048", cfg.Input.MaxFileSizeBytes)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("unset Logging.Level = %q, want default warn", cfg.Logging.Level)
	}
	if result.Path != path {
		t.Errorf("Path = %q, want %q", result.Path, path)
	}
}

func TestLoadConfig_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jscore.yaml")
	writeFile(t, path, "logging:\n  level: debug\n  maxBackups: 1\noutput:\n  format: yaml\n")

	result, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if result.Config.Logging.Level != "debug" || result.Config.Logging.MaxBackups != 1 {
		t.Errorf("Logging = %+v", result.Config.Logging)
	}
	if result.Config.Output.Format != "yaml" {
		t.Errorf("Output.Format = %q, want yaml", result.Config.Output.Format)
	}
}

func TestLoadConfig_SearchPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".config", "jscore", "jscore.json"), `{"language": "tsx"}`)

	result, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if result.Config.Language != "tsx" {
		t.Errorf("Language = %q, want tsx", result.Config.Language)
	}
	if !strings.HasSuffix(result.Path, "jscore.json") {
		t.Errorf("Path = %q", result.Path)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jscore.toml")
	writeFile(t, path, "[output]\nformat = \"json\"\n")

	t.Setenv("JSCORE_OUTPUT_FORMAT", "toml")
	t.Setenv("JSCORE_LANGUAGE", "ts")
	t.Setenv("JSCORE_CACHE_PATH", "/tmp/scores.db")

	result, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if result.Config.Output.Format != "toml" {
		t.Errorf("Output.Format = %q, want env override toml", result.Config.Output.Format)
	}
	if result.Config.Language != "ts" {
		t.Errorf("Language = %q, want env override ts", result.Config.Language)
	}
	if result.Config.Cache.Path != "/tmp/scores.db" {
		t.Errorf("Cache.Path = %q, want env override", result.Config.Cache.Path)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	invalid := filepath.Join(dir, "broken.toml")
	writeFile(t, invalid, "language = [unterminated")

	rejected := filepath.Join(dir, "rejected.toml")
	writeFile(t, rejected, "[output]\nformat = \"xml\"\n")

	tests := []struct {
		name      string
		path      string
		wantField string
	}{
		{"missing explicit file", filepath.Join(dir, "nope.toml"), "file"},
		{"invalid syntax", invalid, "file"},
		{"invalid value", rejected, "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			cerr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("error = %v (%T), want *ConfigError", err, err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cerr.Field, tt.wantField)
			}
		})
	}
}

func TestConfig_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jscore.toml")

	cfg := DefaultConfig()
	cfg.Language = "tsx"
	cfg.Logging.MaxBackups = 7
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.Contains(string(data), "[output]") {
		t.Errorf("saved config should be TOML, got:\n%s", data)
	}

	result, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig of saved file failed: %v", err)
	}
	if *result.Config != *cfg {
		t.Errorf("loaded %+v, want %+v", result.Config, cfg)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
