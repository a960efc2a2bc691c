package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thushan/llmsource/internal/util"
	"github.com/thushan/llmsource/theme"
)

type Config struct {
	Level          string
	LogDir         string
	Theme          string
	MaxSize        int // megabytes
	MaxBackups     int
	MaxAge         int // days
	FileOutput     bool
	TerminalOutput bool
}

const (
	DefaultLogOutputName = "llmsource.log"

	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	timestampFormat = "2006-01-02 15:04:05"
)

var levels = map[string]slog.Level{
	LogLevelDebug:   slog.LevelDebug,
	LogLevelInfo:    slog.LevelInfo,
	LogLevelWarn:    slog.LevelWarn,
	LogLevelWarning: slog.LevelWarn,
	LogLevelError:   slog.LevelError,
}

// New builds the logger for a run. The terminal sink is skipped while the
// setup panel owns the screen, leaving only the rotated file.
func New(cfg *Config) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Level)

	var (
		sinks   []slog.Handler
		closers []io.Closer
	)

	if cfg.TerminalOutput {
		sinks = append(sinks, terminalHandler(os.Stdout, level, theme.GetTheme(cfg.Theme)))
	}

	if cfg.FileOutput {
		rotator, err := openRotator(cfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, rotator)
		sinks = append(sinks, jsonHandler(rotator, level))
	}

	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	switch len(sinks) {
	case 0:
		return slog.New(slog.DiscardHandler), cleanup, nil
	case 1:
		return slog.New(sinks[0]), cleanup, nil
	default:
		return slog.New(teeHandler(sinks)), cleanup, nil
	}
}

func terminalHandler(w io.Writer, level slog.Level, appTheme *theme.Theme) slog.Handler {
	if !util.ShouldUseColors() {
		return jsonHandler(w, level)
	}

	plogger := pterm.DefaultLogger.
		WithLevel(ptermLevel(level)).
		WithWriter(w).
		WithFormatter(pterm.LogFormatterColorful).
		WithKeyStyles(map[string]pterm.Style{
			"level": *appTheme.Info,
			"msg":   *appTheme.Info,
			"time":  *appTheme.Muted,
		})

	return pterm.NewSlogHandler(plogger)
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: fastReplaceAttr,
	})
}

func openRotator(cfg *Config) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create log directory %s: %w", cfg.LogDir, err)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, DefaultLogOutputName),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}, nil
}

// fastReplaceAttr renames the time key, flattens structured values and strips
// terminal escapes so JSON sinks stay plain text
func fastReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String("timestamp", a.Value.Time().Format(timestampFormat))
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); strings.IndexByte(s, escape) >= 0 {
			return slog.String(a.Key, stripAnsiCodes(s))
		}
	case slog.KindAny:
		return slog.String(a.Key, fmt.Sprint(a.Value.Any()))
	}
	return a
}

// teeHandler sends each record to every sink that accepts its level
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, record.Level) {
			errs = append(errs, h.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithGroup(name)
	}
	return next
}

func parseLevel(level string) slog.Level {
	if l, ok := levels[strings.ToLower(level)]; ok {
		return l
	}
	return slog.LevelInfo
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelTrace
	case level >= slog.LevelError:
		return pterm.LogLevelError
	case level >= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelInfo
	}
}
