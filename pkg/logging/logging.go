// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how verbosely to log
type Options struct {
	// Level is a zap level name: debug, info, warn, error
	Level string
	// File receives JSON logs; "" logs to stderr in console format.
	// The TUI owns the terminal, so interactive mode always sets this.
	File string
}

// New builds a logger for opts
func New(opts Options) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	var conf zap.Config
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		conf = zap.NewProductionConfig()
		conf.OutputPaths = []string{opts.File}
		conf.ErrorOutputPaths = []string{opts.File}
	} else {
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		conf.OutputPaths = []string{"stderr"}
		conf.ErrorOutputPaths = []string{"stderr"}
	}
	conf.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := conf.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("gv"), nil
}

// OrNop returns l, or a no-op logger if l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
