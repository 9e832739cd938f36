// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/library-console/internal/app"
)

// Default configuration values.
const (
	// DefaultAdminPort is the default admin HTTP port.
	DefaultAdminPort = 9090

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 10

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// envPrefix prefixes every environment override.
	envPrefix = "APP_"

	// dotEnvPath is loaded into the process environment when present.
	dotEnvPath = ".env"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Admin     AdminConfig     `koanf:"admin"`
	Lending   LendingConfig   `koanf:"lending"`
	Console   ConsoleConfig   `koanf:"console"   validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AdminConfig contains settings for the optional admin HTTP surface
// (health probes and Prometheus metrics).
type AdminConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host"             validate:"required_if=Enabled true"`
	Port            int           `koanf:"port"             validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required_if=Enabled true,omitempty,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required_if=Enabled true,omitempty,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required_if=Enabled true,omitempty,min=1s"`
}

// LendingConfig contains lending registry settings.
type LendingConfig struct {
	// DefaultQuantity may be zero; negative counts are rejected.
	DefaultQuantity int `koanf:"default_quantity" validate:"min=0"`
}

// ConsoleConfig contains console driver settings.
type ConsoleConfig struct {
	Language string `koanf:"language" validate:"required,oneof=en ko"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "library-console",
		"app.version":     "dev",
		"app.environment": "local",

		"log.level":            "warn",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/library.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "library-console",
		"telemetry.sampling_rate": 1.0,

		"admin.enabled":          false,
		"admin.host":             "127.0.0.1",
		"admin.port":             DefaultAdminPort,
		"admin.read_timeout":     "5s",
		"admin.write_timeout":    "10s",
		"admin.shutdown_timeout": "5s",

		"lending.default_quantity": app.DefaultStockQuantity,

		"console.language": "en",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix), including those from a .env file
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
//
// Environment variable names are the upper-cased key with dots replaced by
// underscores, e.g. APP_LENDING_DEFAULT_QUANTITY for lending.default_quantity.
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	err = loadDotEnvIfExists(dotEnvPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dotEnvPath, err)
	}

	err = k.Load(env.Provider(envPrefix, ".", envKeyMapper(k.Keys())), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// loadDotEnvIfExists copies a dotenv file into the process environment.
// Variables already set in the environment win.
func loadDotEnvIfExists(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return godotenv.Load(path)
}

// envKeyMapper resolves APP_ variables against the known config keys, so that
// keys containing underscores (default_quantity) map back unambiguously.
// Unknown variables are ignored.
func envKeyMapper(keys []string) func(string) string {
	index := make(map[string]string, len(keys))
	for _, key := range keys {
		index[EnvName(key)] = key
	}

	return func(name string) string {
		return index[name]
	}
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
