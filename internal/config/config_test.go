package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv neutralises every variable Load reads so the host environment
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SHUTDOWN_GRACE_PERIOD", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"LOG_LEVEL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS",
		"TELEMETRY_ENABLED", "TELEMETRY_EXPORT_LOGS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.RateLimit.RPS != defaultRateLimitRPS || cfg.RateLimit.Burst != defaultRateLimitBurst {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Telemetry.Enabled {
		t.Fatal("expected telemetry enabled by default")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port: "9090"
write_timeout: 30s
log_level: debug
rate_limit:
  rps: 5
  burst: 10
cors:
  allowed_origins:
    - https://app.example.com
telemetry:
  enabled: false
`)

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("expected port from file, got %s", cfg.Port)
	}
	if cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("expected write timeout 30s, got %s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("expected unset keys to keep defaults, got idle timeout %s", cfg.IdleTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.RateLimit.RPS != 5 || cfg.RateLimit.Burst != 10 {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if cfg.Telemetry.Enabled {
		t.Fatal("expected telemetry disabled by file")
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "port: \"9090\"\nlog_level: debug\n")
	t.Setenv("PORT", "9191")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cliLevel := "error"
	cfg, err := Load(&CLIOverrides{ConfigFile: path, LogLevel: &cliLevel})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9191" {
		t.Fatalf("expected env to override file, got port %s", cfg.Port)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("expected CLI to override env, got log level %s", cfg.LogLevel)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins from env, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadCLIOverrides(t *testing.T) {
	clearEnv(t)

	port := "7070"
	rps := 0.0
	burst := 3
	telemetry := false
	cfg, err := Load(&CLIOverrides{
		Port:             &port,
		RateLimitRPS:     &rps,
		RateLimitBurst:   &burst,
		TelemetryEnabled: &telemetry,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7070" {
		t.Fatalf("expected port 7070, got %s", cfg.Port)
	}
	if cfg.RateLimit.RPS != 0 || cfg.RateLimit.Burst != 3 {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if cfg.Telemetry.Enabled {
		t.Fatal("expected telemetry disabled by CLI")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "port: [unterminated\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatal("expected error for malformed YAML")
		}
	})

	t.Run("bad env value", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RATE_LIMIT_RPS", "fast")
		if _, err := Load(nil); err == nil {
			t.Fatal("expected error for non-numeric RATE_LIMIT_RPS")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "loud")
		t.Setenv("RATE_LIMIT_BURST", "-1")
		_, err := Load(nil)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "log_level") || !strings.Contains(err.Error(), "rate_limit.burst") {
			t.Fatalf("expected both problems reported, got %v", err)
		}
	})
}

func TestAddr(t *testing.T) {
	if got := (Config{Port: "8080"}).Addr(); got != ":8080" {
		t.Fatalf("expected %q, got %q", ":8080", got)
	}
	if got := (Config{Port: "127.0.0.1:8080"}).Addr(); got != "127.0.0.1:8080" {
		t.Fatalf("expected host:port unchanged, got %q", got)
	}
}
