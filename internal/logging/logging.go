// Package logging builds the application's zap logger. Output goes to a file
// because the terminal belongs to the TUI.
package logging

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "culturedeck/culturedeck.log"

// Config holds logger configuration.
type Config struct {
	// Level is the minimum enabled level: debug, info, warn or error.
	// Default: "info"
	Level string

	// File is the log file path. Default: culturedeck.log in the XDG state directory.
	// "stderr" and "stdout" are accepted as well.
	File string

	// Development enables console encoding and stack traces on warnings.
	Development bool
}

// DefaultPath returns the log file location used when Config.File is empty.
func DefaultPath() (string, error) {
	return xdg.StateFile(logFileName)
}

// New creates a logger with the specified configuration.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
	}

	path := cfg.File
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.Wrap(err, "resolve log path")
		}
		path = p
	}
	if path != "stderr" && path != "stdout" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrapf(err, "create log directory for %s", path)
		}
	}

	encoding := "json"
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Development {
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	zapConfig := zap.Config{
		Level:             level,
		Development:       cfg.Development,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{path},
		ErrorOutputPaths:  []string{path},
		DisableStacktrace: !cfg.Development,
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

// WithComponent returns a logger with a "component" field.
func WithComponent(logger *zap.Logger, component string) *zap.Logger {
	return logger.With(zap.String("component", component))
}
