package common

import (
	"fmt"
	"strings"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// DisabledLevel disables all logging. Use this to turn off logging completely.
	DisabledLevel LogLevel = iota

	// DebugLevel sets the logging level to debug. This level is used for detailed system operations.
	DebugLevel

	// InfoLevel sets the logging level to info. Use this for general operational entries about what's happening inside the application.
	InfoLevel

	// WarnLevel sets the logging level to warn. This level is used for non-critical entries that deserve eyes.
	WarnLevel

	// ErrorLevel sets the logging level to error. This level is used for errors that should definitely be noted and investigated.
	ErrorLevel
)

var logLevelNames = map[string]LogLevel{
	"disabled": DisabledLevel,
	"off":      DisabledLevel,
	"debug":    DebugLevel,
	"info":     InfoLevel,
	"warn":     WarnLevel,
	"warning":  WarnLevel,
	"error":    ErrorLevel,
}

// ParseLogLevel converts a level name such as "info" or "WARN" into a LogLevel.
// An empty string yields DisabledLevel.
func ParseLogLevel(name string) (LogLevel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DisabledLevel, nil
	}
	level, ok := logLevelNames[name]
	if !ok {
		return DisabledLevel, fmt.Errorf("unknown log level %q (use disabled, debug, info, warn or error)", name)
	}
	return level, nil
}

// String returns the canonical name of the level.
func (l LogLevel) String() string {
	switch l {
	case DisabledLevel:
		return "disabled"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}
