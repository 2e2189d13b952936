// Package config provides configuration management for the chatlens command-line tool.
// It supports loading configuration from YAML files, environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	chaterrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/ingest/transcript"
	"github.com/otherjamesbrown/chatlens/pkg/logging"
	"github.com/otherjamesbrown/chatlens/pkg/report"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultOutputFormat = OutputFormatText
	DefaultDateOrder    = transcript.DayFirst
	DefaultLogLevel     = "info"
	DefaultTopWords     = 20
	DefaultTopMessages  = 10
	DefaultConfigDir    = ".chatlens"
	DefaultConfigFile   = "config.yaml"
	DefaultRedisAddress = "localhost:6379"
)

// RedisConfig holds the report publisher connection settings.
type RedisConfig struct {
	// Address is the Redis server (host:port).
	Address string `yaml:"address" validate:"required,hostname_port"`

	// Password is optional.
	Password string `yaml:"password,omitempty"`

	// DB selects the logical database.
	DB int `yaml:"db" validate:"gte=0,lte=15"`

	// Channel is the pub/sub channel reports are published on.
	Channel string `yaml:"channel" validate:"required"`
}

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format" validate:"oneof=text json yaml"`

	// StopwordsPath is a whitespace-separated stopword list used by the word
	// commands. Supports ~ for home directory expansion.
	StopwordsPath string `yaml:"stopwords_path,omitempty"`

	// DateOrder is "dmy" for day-first exports or "mdy" for month-first.
	DateOrder transcript.DateOrder `yaml:"date_order" validate:"oneof=dmy mdy"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogJSON switches stderr logs to JSON lines.
	LogJSON bool `yaml:"log_json,omitempty"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// TopWords is how many words the word commands report.
	TopWords int `yaml:"top_words" validate:"gte=1,lte=1000"`

	// TopMessages is how many messages the sentiment command reports per label.
	TopMessages int `yaml:"top_messages" validate:"gte=1,lte=1000"`

	// Redis holds the report publisher settings.
	Redis RedisConfig `yaml:"redis"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		OutputFormat: DefaultOutputFormat,
		DateOrder:    DefaultDateOrder,
		LogLevel:     DefaultLogLevel,
		TopWords:     DefaultTopWords,
		TopMessages:  DefaultTopMessages,
		Redis: RedisConfig{
			Address: DefaultRedisAddress,
			Channel: report.ChannelReportExported,
		},
	}
}

// ConfigDir returns the configuration directory path.
// Uses $CHATLENS_CONFIG_DIR if set, otherwise ~/.chatlens
func ConfigDir() (string, error) {
	if dir := os.Getenv("CHATLENS_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads configuration from the default directory.
func LoadConfig() (*CLIConfig, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom loads the CLI configuration from file and environment variables.
// An empty dir uses ConfigDir. Configuration is loaded in this order (later
// sources override earlier):
// 1. Default values
// 2. Config file (dir/config.yaml)
// 3. Environment variables (CHATLENS_*)
func LoadConfigFrom(dir string) (*CLIConfig, error) {
	cfg := DefaultConfig()

	if dir == "" {
		var err error
		dir, err = ConfigDir()
		if err != nil {
			return nil, fmt.Errorf("getting config path: %w", err)
		}
	}
	configPath := filepath.Join(dir, DefaultConfigFile)

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("%w: loading config file: %v", chaterrors.ErrConfiguration, err)
		}
	}

	// Overlay environment variables.
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", chaterrors.ErrConfiguration, err)
	}

	// Validate the configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file. Keys absent from the
// file keep their current value.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	cfg.LogLevel = string(logging.NormalizeLevel(cfg.LogLevel))

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) error {
	if v := os.Getenv("CHATLENS_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("CHATLENS_STOPWORDS_PATH"); v != "" {
		cfg.StopwordsPath = v
	}

	if v := os.Getenv("CHATLENS_DATE_ORDER"); v != "" {
		cfg.DateOrder = transcript.DateOrder(strings.ToLower(v))
	}

	if v := os.Getenv("CHATLENS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = string(logging.NormalizeLevel(v))
	}

	if v := os.Getenv("CHATLENS_LOG_JSON"); v == "true" || v == "1" {
		cfg.LogJSON = true
	}

	if v := os.Getenv("CHATLENS_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"CHATLENS_TOP_WORDS", &cfg.TopWords},
		{"CHATLENS_TOP_MESSAGES", &cfg.TopMessages},
		{"CHATLENS_REDIS_DB", &cfg.Redis.DB},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", e.key, v)
		}
		*e.dst = n
	}

	if v := os.Getenv("CHATLENS_REDIS_ADDRESS"); v != "" {
		cfg.Redis.Address = v
	}

	if v := os.Getenv("CHATLENS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v := os.Getenv("CHATLENS_REDIS_CHANNEL"); v != "" {
		cfg.Redis.Channel = v
	}

	return nil
}

var validate = validator.New()

// Validate checks that the configuration is valid. Failures wrap
// errors.ErrConfiguration.
func (c *CLIConfig) Validate() error {
	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("%w: invalid output_format: %q (must be text, json, or yaml)", chaterrors.ErrConfiguration, c.OutputFormat)
	}

	if !c.DateOrder.IsValid() {
		return fmt.Errorf("%w: invalid date_order: %q (must be dmy or mdy)", chaterrors.ErrConfiguration, c.DateOrder)
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: invalid %s: %v (rule %s)", chaterrors.ErrConfiguration, fe.Namespace(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", chaterrors.ErrConfiguration, err)
	}

	return nil
}

// ResolvedStopwordsPath returns StopwordsPath with ~ expanded.
func (c *CLIConfig) ResolvedStopwordsPath() (string, error) {
	return ExpandPath(c.StopwordsPath)
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to dir, or ConfigDir when dir is empty.
func SaveConfig(cfg *CLIConfig, dir string) error {
	if dir == "" {
		var err error
		dir, err = ConfigDir()
		if err != nil {
			return fmt.Errorf("getting config directory: %w", err)
		}
	}

	// Ensure config directory exists.
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// 0600 because the file may carry the Redis password.
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
