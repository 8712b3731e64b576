// Package logging configures the process-wide slog logger. Defaults are
// quiet (warnings to stderr) so CLI output stays readable; everything is
// overridable through the environment.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sebastianaldrin/tux-agent/internal/appdirs"
)

const (
	EnvLevel  = "TUXSETUP_LOG_LEVEL"
	EnvFormat = "TUXSETUP_LOG_FORMAT"
	EnvSink   = "TUXSETUP_LOG_SINK"
	EnvFile   = "TUXSETUP_LOG_FILE"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

// Init installs the default logger from environment configuration and
// returns a close function for any file sink it opened.
func Init(app, version string) (func() error, error) {
	level := parseLevel(os.Getenv(EnvLevel))
	sink := Sink(strings.ToLower(strings.TrimSpace(os.Getenv(EnvSink))))
	if sink == "" {
		sink = SinkStderr
	}

	writer, closeFn, err := resolveWriter(sink)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvFormat))) {
	case "json":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	slog.SetDefault(slog.New(handler).With(
		slog.String("app", app),
		slog.String("version", version),
	))
	return closeFn, nil
}

func parseLevel(value string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func resolveWriter(sink Sink) (io.Writer, func() error, error) {
	switch sink {
	case SinkNone:
		return io.Discard, func() error { return nil }, nil
	case SinkStderr:
		return os.Stderr, func() error { return nil }, nil
	case SinkFile:
		path := strings.TrimSpace(os.Getenv(EnvFile))
		if path == "" {
			paths, err := appdirs.Resolve()
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(paths.CacheDir, "tuxsetup.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		}
		return rot, func() error { return rot.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}
}
