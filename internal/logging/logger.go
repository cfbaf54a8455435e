package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"rpt/internal/config"
)

// NewFromConfig creates the CLI logger: the configured format on stderr plus
// JSON lines appended to the log file. verbose forces debug level.
func NewFromConfig(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	return newLogger(cfg, verbose, os.Stderr)
}

func newLogger(cfg *config.Config, verbose bool, console io.Writer) (*slog.Logger, error) {
	levelVar := new(slog.LevelVar)
	if cfg == nil {
		levelVar.Set(slog.LevelInfo)
		return slog.New(newConsoleHandler(console, levelVar, false)), nil
	}

	levelName := cfg.Logging.Level
	if verbose {
		levelName = "debug"
	}
	levelVar.Set(parseLevel(levelName))
	addSource := levelVar.Level() <= slog.LevelDebug

	consoleHandler, err := newHandler(cfg.Logging.Format, console, levelVar, addSource)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Paths.LogDir) == "" {
		return slog.New(consoleHandler), nil
	}

	file, err := openLogFile(cfg.LogPath())
	if err != nil {
		return nil, err
	}
	fileHandler, err := newJSONHandler(file, levelVar, addSource)
	if err != nil {
		return nil, err
	}
	return slog.New(newFanoutHandler(consoleHandler, fileHandler)), nil
}

func newHandler(format string, w io.Writer, lvl *slog.LevelVar, addSource bool) (slog.Handler, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "json":
		return newJSONHandler(w, lvl, addSource)
	case "console", "":
		return newConsoleHandler(w, lvl, addSource), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
