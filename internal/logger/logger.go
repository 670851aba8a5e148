// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deppfellow/starwars-blog/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService wraps the optional New Relic application instance.
//
// When no license key is configured the service still exists but carries a
// nil application, so callers always check GetApplication() != nil before
// wiring instrumentation.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when the agent is
// not configured.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes pending telemetry and stops the agent. Safe to call when
// the agent is not configured.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s == nil || s.nrApp == nil {
		return
	}
	s.nrApp.Shutdown(timeout)
}

// New builds the application logger from observability config.
//
// Behavior:
//   - Level comes from ObservabilityConfig.GetLogLevel.
//   - "console" format writes human-friendly output; anything else writes JSON.
//   - When a New Relic license key is set, the agent is started and log
//     forwarding is wired through the zerologWriter integration so every log
//     line carries trace linking metadata.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	obs := cfg.Observability

	level, err := zerolog.ParseLevel(obs.GetLogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	service := &LoggerService{}

	if obs.NewRelic.LicenseKey != "" {
		opts := []newrelic.ConfigOption{
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		}
		if obs.NewRelic.DebugLogging {
			opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
		}

		app, err := newrelic.NewApplication(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing New Relic application: %w", err)
		}
		service.nrApp = app
	}

	var out io.Writer = os.Stdout
	if obs.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	var logger zerolog.Logger
	if service.nrApp != nil && obs.NewRelic.AppLogForwardingEnabled {
		nrWriter := zerologWriter.New(out, service.nrApp)
		logger = zerolog.New(nrWriter).Level(level).With().Timestamp().
			Str("service", obs.ServiceName).
			Str("env", obs.Environment).
			Logger()
	} else {
		logger = zerolog.New(out).Level(level).With().Timestamp().
			Str("service", obs.ServiceName).
			Str("env", obs.Environment).
			Logger()
	}

	return &logger, service, nil
}

// NewPgxLogger returns the logger used for SQL query tracing. It always
// writes console format: query logging is only enabled in the local
// environment, where pretty output matters more than machine parsing.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(level).With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps a zerolog level onto the pgx tracelog level scale
// (tracelog: none=1, error=2, warn=3, info=4, debug=5, trace=6).
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return 6
	case zerolog.DebugLevel:
		return 5
	case zerolog.InfoLevel:
		return 4
	case zerolog.WarnLevel:
		return 3
	case zerolog.ErrorLevel:
		return 2
	default:
		return 1
	}
}
