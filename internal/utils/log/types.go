package log

import (
	charmlog "github.com/charmbracelet/log"
)

type (
	Level  = charmlog.Level
	Styles = charmlog.Styles
)

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
	FatalLevel = charmlog.FatalLevel

	// AuditLevel marks records that mirror an audit log line
	AuditLevel = WarnLevel + 1
)

// ParseLevel maps a config level name onto a Level, defaulting to info.
func ParseLevel(s string) Level {
	l, err := charmlog.ParseLevel(s)
	if err != nil {
		return InfoLevel
	}
	return l
}

// LevelString returns the string representation of the level
func LevelString(l Level) string {
	switch l {
	case AuditLevel:
		return "audit"
	default:
		return charmlog.Level(l).String()
	}
}
