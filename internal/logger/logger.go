// Package logger builds the logr.Logger shared by the commands.
package logger

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	flagLogEncoding = "log-encoding"
	flagLogLevel    = "log-level"
)

var levelStrings = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"error": zapcore.ErrorLevel,
}

// For log.V(...) calls. logr V(1) maps to zap's debug level.
const (
	DebugLevel = 1
	InfoLevel  = 0
)

// Options contains the configuration options for the logger.
type Options struct {
	LogEncoding string
	LogLevel    string
}

// BindFlags registers the logger flags on fs.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogEncoding, flagLogEncoding, "console",
		"Log encoding format. Can be 'json' or 'console'.")
	fs.StringVar(&o.LogLevel, flagLogLevel, "info",
		"Log verbosity level. Can be one of 'debug', 'info', 'error'.")
}

// Validate rejects unknown encodings and levels.
func (o Options) Validate() error {
	switch o.LogEncoding {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log encoding %q", o.LogEncoding)
	}
	if _, ok := levelStrings[o.LogLevel]; o.LogLevel != "" && !ok {
		return fmt.Errorf("invalid log level %q", o.LogLevel)
	}
	return nil
}

// NewLogger returns a logger configured with the given Options, and
// timestamps set to the ISO8601 format.
func NewLogger(opts Options) (logr.Logger, error) {
	if err := opts.Validate(); err != nil {
		return logr.Discard(), err
	}

	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Encoding = "console"
	if opts.LogEncoding != "" {
		cfg.Encoding = opts.LogEncoding
	}
	if cfg.Encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if l, ok := levelStrings[opts.LogLevel]; ok {
		cfg.Level = zap.NewAtomicLevelAt(l)
	}

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("failed to build logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// NewWithCore wraps an existing zap core, mostly for tests that observe output.
func NewWithCore(core zapcore.Core) logr.Logger {
	return zapr.NewLogger(zap.New(core))
}
