package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"jscore/internal/jsparse"
	"jscore/internal/output"
	"jscore/internal/slogutil"
)

// FileName is the base name of the configuration file, without extension.
const FileName = "jscore"

// EnvPrefix prefixes environment overrides, e.g. JSCORE_OUTPUT_FORMAT.
const EnvPrefix = "JSCORE"

// Config represents the complete jscore configuration
type Config struct {
	Language string        `toml:"language" json:"language" yaml:"language" mapstructure:"language"`
	Output   OutputConfig  `toml:"output" json:"output" yaml:"output" mapstructure:"output"`
	Logging  LoggingConfig `toml:"logging" json:"logging" yaml:"logging" mapstructure:"logging"`
	Input    InputConfig   `toml:"input" json:"input" yaml:"input" mapstructure:"input"`
	Cache    CacheConfig   `toml:"cache" json:"cache" yaml:"cache" mapstructure:"cache"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `toml:"format" json:"format" yaml:"format" mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level" json:"level" yaml:"level" mapstructure:"level"`
	MaxSize    string `toml:"maxSize" json:"maxSize" yaml:"maxSize" mapstructure:"maxSize"`
	MaxBackups int    `toml:"maxBackups" json:"maxBackups" yaml:"maxBackups" mapstructure:"maxBackups"`
}

// InputConfig limits what the loader accepts
type InputConfig struct {
	MaxFileSizeBytes int64 `toml:"maxFileSizeBytes" json:"maxFileSizeBytes" yaml:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// CacheConfig locates the score cache. An empty path disables it.
type CacheConfig struct {
	Path string `toml:"path" json:"path" yaml:"path" mapstructure:"path"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Language: string(jsparse.LangJavaScript),
		Output: OutputConfig{
			Format: "human",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
		Input: InputConfig{
			MaxFileSizeBytes: 10 << 20,
		},
	}
}

// LoadResult is a loaded configuration and where it came from.
type LoadResult struct {
	Config *Config
	// Path is empty when no file was found and defaults were used
	Path string
}

// SearchPaths returns the directories searched for jscore.{toml,yaml,json},
// in order.
func SearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "jscore"))
	}
	return paths
}

// LoadConfig loads configuration from path, or from the first file found in
// SearchPaths when path is empty. Environment variables with the JSCORE_
// prefix override file values. The result is validated.
func LoadConfig(path string) (*LoadResult, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		for _, dir := range SearchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &ConfigError{Field: "file", Message: err.Error()}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &LoadResult{Config: &cfg, Path: v.ConfigFileUsed()}, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault("language", d.Language)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.maxSize", d.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
	v.SetDefault("input.maxFileSizeBytes", d.Input.MaxFileSizeBytes)
	v.SetDefault("cache.path", d.Cache.Path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Save writes the configuration as TOML to path
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := jsparse.ParseLanguage(c.Language); err != nil {
		return &ConfigError{Field: "language", Message: err.Error()}
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return &ConfigError{Field: "output.format", Message: err.Error()}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	if c.Logging.MaxSize != "" && slogutil.ParseSize(c.Logging.MaxSize) == 0 {
		return &ConfigError{Field: "logging.maxSize", Message: fmt.Sprintf("cannot parse size %q", c.Logging.MaxSize)}
	}
	if c.Logging.MaxBackups < 0 {
		return &ConfigError{Field: "logging.maxBackups", Message: "must not be negative"}
	}
	if c.Input.MaxFileSizeBytes < 0 {
		return &ConfigError{Field: "input.maxFileSizeBytes", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
