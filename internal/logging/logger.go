package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/covalenthq/lumberjack"
)

type Options struct {
	Service    string
	Env        string
	Level      string
	AddSource  bool
	File       string // rotated log file, written alongside stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds the JSON logger and installs it as the slog default.
// The returned closer releases the rotating file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closer = rotator
	}

	logger := NewWithWriter(out, opts)
	slog.SetDefault(logger)
	return logger, closer
}

// NewWithWriter builds the logger over an arbitrary writer without touching the default
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: opts.AddSource,
	})

	return slog.New(h).With(
		"service", opts.Service,
		"env", opts.Env,
	)
}

func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
