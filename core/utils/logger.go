package utils

import (
	"log"
	"os"
)

// Logger is a small leveled wrapper over the stdlib logger. Debug output is
// enabled via CRIME_DEBUG.
type Logger struct {
	std   *log.Logger
	debug bool
}

func NewLogger() *Logger {
	return &Logger{
		std:   log.New(os.Stderr, "", log.LstdFlags|log.LUTC),
		debug: os.Getenv("CRIME_DEBUG") != "",
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.std.Printf("INFO  "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.std.Printf("ERROR "+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.debug {
		return
	}
	l.std.Printf("DEBUG "+format, args...)
}
