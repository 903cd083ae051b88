// Package logging builds the diagnostic logger used by the command line tool.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelCritical sits above slog.LevelError for failures that end the run.
const LevelCritical = slog.Level(12)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "INFO"

var levelNames = map[slog.Level]string{
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	slog.LevelWarn:  "WARNING",
	slog.LevelError: "ERROR",
	LevelCritical:   "CRITICAL",
}

// LevelNames lists the accepted level names, most verbose first.
func LevelNames() []string {
	return []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}
}

// ParseLevel converts a level name to a slog.Level. Names are
// case-insensitive and WARN is accepted for WARNING.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (use one of %s)", name, strings.Join(LevelNames(), ", "))
	}
}

// New returns a text logger writing timestamped records to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}))
}

// NewFromName is New with a level name.
func NewFromName(w io.Writer, name string) (*slog.Logger, error) {
	level, err := ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return New(w, level), nil
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	if name, ok := levelNames[level]; ok {
		a.Value = slog.StringValue(name)
	}
	return a
}
