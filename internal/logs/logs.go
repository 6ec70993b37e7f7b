// Package logs builds the logger of the classflow command: a zap core
// writing colored text to the console and, when a file is configured,
// JSON to a rotating log file. Libraries receive it as a *slog.Logger.
package logs

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"github.com/syssam/classflow/internal/config"
)

// Logger is a slog logger backed by a zap core.
type Logger struct {
	*slog.Logger
	core  zapcore.Core
	level zap.AtomicLevel
	file  *lumberjack.Logger
}

// New returns a logger named name writing to console, and to cfg.File
// when set.
func New(name string, cfg config.LogConfig, console io.Writer) *Logger {
	lvl := zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	text := enc
	text.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(text), zapcore.Lock(zapcore.AddSync(console)), lvl)

	l := &Logger{level: lvl}
	if cfg.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
		js := enc
		js.EncodeLevel = zapcore.CapitalLevelEncoder
		core = zapcore.NewTee(core, zapcore.NewCore(zapcore.NewJSONEncoder(js), zapcore.AddSync(l.file), lvl))
	}
	opts := []zapslog.HandlerOption{zapslog.WithName(name), zapslog.WithCaller(true)}
	if cfg.Dev {
		opts = append(opts, zapslog.AddStacktraceAt(slog.LevelWarn))
	}
	l.core = core
	l.Logger = slog.New(zapslog.NewHandler(core, opts...))
	return l
}

// SetLevel changes the minimum level of the logger.
func (l *Logger) SetLevel(level string) {
	l.level.SetLevel(ParseLevel(level))
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	err := l.core.Sync()
	if l.file != nil {
		err = errors.Join(err, l.file.Close())
	}
	return err
}

// ParseLevel parses a level name case-insensitively. Unknown names yield
// info.
func ParseLevel(s string) zapcore.Level {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
