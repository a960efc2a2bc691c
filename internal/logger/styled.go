package logger

import (
	"fmt"
	"log/slog"

	"github.com/thushan/llmsource/theme"
)

// StyledLogger wraps slog.Logger with Theme-aware formatting
type StyledLogger struct {
	logger *slog.Logger
	Theme  *theme.Theme
}

func NewStyledLogger(logger *slog.Logger, theme *theme.Theme) *StyledLogger {
	return &StyledLogger{
		logger: logger,
		Theme:  theme,
	}
}

// NewDiscard is handy for tests and for components built without a logger
func NewDiscard() *StyledLogger {
	return NewStyledLogger(slog.New(slog.DiscardHandler), theme.Default())
}

func (sl *StyledLogger) Debug(msg string, args ...any) {
	sl.logger.Debug(msg, args...)
}

func (sl *StyledLogger) Info(msg string, args ...any) {
	sl.logger.Info(msg, args...)
}

func (sl *StyledLogger) Warn(msg string, args ...any) {
	sl.logger.Warn(msg, args...)
}

func (sl *StyledLogger) Error(msg string, args ...any) {
	sl.logger.Error(msg, args...)
}

func (sl *StyledLogger) InfoWithCount(msg string, count int, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Counts.Sprint("(", count, ")"))
	sl.logger.Info(styledMsg, args...)
}

func (sl *StyledLogger) InfoWithSource(msg string, source string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Source.Sprint(source))
	sl.logger.Info(styledMsg, args...)
}

func (sl *StyledLogger) WarnWithSource(msg string, source string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Source.Sprint(source))
	sl.logger.Warn(styledMsg, args...)
}

func (sl *StyledLogger) ErrorWithSource(msg string, source string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Source.Sprint(source))
	sl.logger.Error(styledMsg, args...)
}

func (sl *StyledLogger) InfoWithHost(msg string, host string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, sl.Theme.Host.Sprint(theme.Hyperlink(host, host)))
	sl.logger.Info(styledMsg, args...)
}

func (sl *StyledLogger) InfoSetupChange(source, oldHost, newHost string) {
	styledMsg := fmt.Sprintf("Host changed for %s to: %s",
		sl.Theme.Source.Sprint(source),
		sl.Theme.Host.Sprint(newHost))
	sl.logger.Info(styledMsg, "previous", oldHost)
}

func (sl *StyledLogger) GetUnderlying() *slog.Logger {
	return sl.logger
}

func (sl *StyledLogger) WithRequestID(requestID string) *StyledLogger {
	return sl.With("request_id", requestID)
}

func (sl *StyledLogger) With(args ...any) *StyledLogger {
	return &StyledLogger{
		logger: sl.logger.With(args...),
		Theme:  sl.Theme,
	}
}

func NewWithTheme(cfg *Config) (*slog.Logger, *StyledLogger, func(), error) {
	logger, cleanup, err := New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	appTheme := theme.GetTheme(cfg.Theme)
	styledLogger := NewStyledLogger(logger, appTheme)

	return logger, styledLogger, cleanup, nil
}
