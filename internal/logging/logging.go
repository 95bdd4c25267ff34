package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"

	"primini.ma/app/internal/config"
)

// Setup builds the application logger from config: JSON to stdout in
// production, tint-colored text for local development, with optional fan-out
// to a fluentd/fluent-bit collector. The returned closer flushes the fluent
// connection and may be nil.
func Setup(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	level := ParseLevel(cfg.Level)

	var base slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		base = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		base = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	if !cfg.FluentEnabled {
		return slog.New(base), nil, nil
	}

	fl, err := fluent.New(fluent.Config{
		FluentHost: cfg.FluentHost,
		FluentPort: cfg.FluentPort,
		Async:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("fluent client: %w", err)
	}

	fh := newFluentHandler(fl, cfg.FluentTag, level)
	return slog.New(newMultiHandler(base, fh)), fl.Close, nil
}

func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
