package config

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func NormalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		format = FormatTable
	}
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	case "text", "txt":
		return FormatTable, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf(
			"invalid format %q (expected %s|%s|%s)",
			raw,
			FormatTable,
			FormatJSON,
			FormatYAML,
		)
	}
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
