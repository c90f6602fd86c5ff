// Package logging builds the zap logger shared by the twm commands.
//
// Diagnostics go to stderr in console form so they never mix with the
// workspace paths printed on stdout. An optional JSON file sink rotates
// through lumberjack.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	twmerrors "thoreinstein.com/twm/pkg/errors"
)

// Options controls logger construction.
type Options struct {
	Verbose    bool   // debug level on stderr instead of warn
	FilePath   string // optional JSON log file, always at debug level
	MaxSizeMB  int    // rotation size, default 10
	MaxBackups int    // rotated files kept, default 3
	MaxAgeDays int    // rotated file age, default 7
}

// New creates a logger from opts. The returned logger must be synced by the caller.
func New(opts Options) (*zap.Logger, error) {
	stderrLevel := zapcore.WarnLevel
	if opts.Verbose {
		stderrLevel = zapcore.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = ""
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			stderrLevel,
		),
	}

	if opts.FilePath != "" {
		if opts.MaxSizeMB == 0 {
			opts.MaxSizeMB = 10
		}
		if opts.MaxBackups == 0 {
			opts.MaxBackups = 3
		}
		if opts.MaxAgeDays == 0 {
			opts.MaxAgeDays = 7
		}

		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, twmerrors.Wrapf(err, "failed to create log directory for %s", opts.FilePath)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}

		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.TimeKey = "ts"
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			zapcore.AddSync(fileWriter),
			zapcore.DebugLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// Nop returns a logger that discards all output.
// Use in tests or when logging is not configured.
func Nop() *zap.Logger {
	return zap.NewNop()
}
