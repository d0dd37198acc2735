package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration.
// Precedence: CLI flags > environment > YAML file > defaults.
type Config struct {
	Port                string        `yaml:"port" env:"PORT"`
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD"`
	ReadHeaderTimeout   time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT"`
	WriteTimeout        time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout         time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	LogLevel            string        `yaml:"log_level" env:"LOG_LEVEL"`
	RateLimit           RateLimit     `yaml:"rate_limit" envPrefix:"RATE_LIMIT_"`
	CORS                CORS          `yaml:"cors" envPrefix:"CORS_"`
	Telemetry           Telemetry     `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

// RateLimit configures the token bucket in front of the router.
// An RPS of 0 disables limiting.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RPS"`
	Burst int     `yaml:"burst" env:"BURST"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Telemetry toggles the OTLP exporters. With Enabled false the global OTel
// providers stay no-op and nothing is exported.
type Telemetry struct {
	Enabled    bool `yaml:"enabled" env:"ENABLED"`
	ExportLogs bool `yaml:"export_logs" env:"EXPORT_LOGS"`
}

// CLIOverrides holds command-line flag overrides. Nil fields are unset.
type CLIOverrides struct {
	ConfigFile       string
	Port             *string
	LogLevel         *string
	RateLimitRPS     *float64
	RateLimitBurst   *int
	TelemetryEnabled *bool
}

// Load resolves the final configuration and validates it.
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := Default()

	if overrides != nil && overrides.ConfigFile != "" {
		if err := loadFromFile(overrides.ConfigFile, &cfg); err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Port:                defaultPort,
		ShutdownGracePeriod: 10 * time.Second,
		ReadHeaderTimeout:   5 * time.Second,
		WriteTimeout:        15 * time.Second,
		IdleTimeout:         60 * time.Second,
		LogLevel:            defaultLogLevel,
		RateLimit: RateLimit{
			RPS:   defaultRateLimitRPS,
			Burst: defaultRateLimitBurst,
		},
		CORS: CORS{
			AllowedOrigins: []string{"*"},
		},
		Telemetry: Telemetry{
			Enabled:    true,
			ExportLogs: true,
		},
	}
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port cannot be empty"))
	}
	if c.ShutdownGracePeriod <= 0 {
		errs = append(errs, errors.New("shutdown_grace_period must be positive"))
	}
	if c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, errors.New("rate_limit.rps must be >= 0"))
	}
	if c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit.burst must be >= 0"))
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("cors.allowed_origins cannot be empty"))
	}

	return errors.Join(errs...)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}

	return nil
}

func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimit.RPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimit.Burst = *overrides.RateLimitBurst
	}

	if overrides.TelemetryEnabled != nil {
		cfg.Telemetry.Enabled = *overrides.TelemetryEnabled
	}
}
