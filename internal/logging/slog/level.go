package slog

import (
	"fmt"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name such as "debug" or "WARN" onto its slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unrecognized log level '%s': %w", name, err)
	}

	return level, nil
}
