package main

import (
	"github.com/alecthomas/kingpin/v2"

	"calculator-api/internal/config"
)

// parseFlags maps command-line flags onto config overrides. Only flags the
// user actually passed override lower-precedence sources.
func parseFlags(args []string) (*config.CLIOverrides, error) {
	var rpsSet, burstSet, telemetrySet bool

	app := kingpin.New("calculator-api", "Calculator REST API - basic arithmetic over HTTP")
	configFile := app.Flag("config", "Path to YAML configuration file").String()
	port := app.Flag("port", "HTTP port exposed by the service").String()
	logLevel := app.Flag("log-level", "Log level (debug, info, warn, error)").String()
	rps := app.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").IsSetByUser(&rpsSet).Float64()
	burst := app.Flag("rate-limit-burst", "Burst capacity for rate limiter").IsSetByUser(&burstSet).Int()
	telemetry := app.Flag("telemetry", "Export traces, metrics and logs over OTLP").IsSetByUser(&telemetrySet).Bool()

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		Port:       port,
		LogLevel:   logLevel,
	}
	if rpsSet {
		overrides.RateLimitRPS = rps
	}
	if burstSet {
		overrides.RateLimitBurst = burst
	}
	if telemetrySet {
		overrides.TelemetryEnabled = telemetry
	}

	return overrides, nil
}
