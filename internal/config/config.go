// Package config loads client settings from defaults, an optional YAML
// file, .env files and COOKMATE_* environment variables, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COOKMATE"

// Config holds the client settings.
type Config struct {
	BackendURL         string        `mapstructure:"backend_url"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	RetryAttempts      int           `mapstructure:"retry_attempts"`
	RequestsPerSecond  float64       `mapstructure:"requests_per_second"`
	StorePath          string        `mapstructure:"store_path"`
	LogFile            string        `mapstructure:"log_file"`
	LogLevel           string        `mapstructure:"log_level"`
	CarouselInterval   time.Duration `mapstructure:"carousel_interval"`
	CarouselTransition time.Duration `mapstructure:"carousel_transition"`
	NoticeTTL          time.Duration `mapstructure:"notice_ttl"`
	TopN               int           `mapstructure:"top_n"`
}

// LoadEnv loads .env files into the process environment. Missing files
// are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration. With an empty path it looks for cookmate.yaml
// in the working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cookmate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend_url", "http://127.0.0.1:8000")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("retry_attempts", 3)
	v.SetDefault("requests_per_second", 10)
	v.SetDefault("store_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "normal")
	v.SetDefault("carousel_interval", "5s")
	v.SetDefault("carousel_transition", "500ms")
	v.SetDefault("notice_ttl", "5s")
	v.SetDefault("top_n", 8)
}

// Validate checks ranges and formats.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: backend_url %q is not an absolute URL: %w", c.BackendURL, domain.ErrInvalidInput)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive: %w", domain.ErrInvalidInput)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("config: retry_attempts must not be negative: %w", domain.ErrInvalidInput)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config: requests_per_second must not be negative: %w", domain.ErrInvalidInput)
	}
	if c.TopN < 1 || c.TopN > 50 {
		return fmt.Errorf("config: top_n must be between 1 and 50: %w", domain.ErrInvalidInput)
	}
	if c.NoticeTTL <= 0 {
		return fmt.Errorf("config: notice_ttl must be positive: %w", domain.ErrInvalidInput)
	}
	if c.CarouselInterval < 0 || c.CarouselTransition < 0 {
		return fmt.Errorf("config: carousel timings must not be negative: %w", domain.ErrInvalidInput)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "off", "quiet", "none", "normal", "info", "verbose", "debug":
	default:
		return fmt.Errorf("config: unknown log_level %q: %w", c.LogLevel, domain.ErrInvalidInput)
	}
	return nil
}
