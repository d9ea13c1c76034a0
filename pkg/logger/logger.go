package logger

import "log"

// Levels are ordered; a logger emits everything at its level and above.
// SILENCE drops all output, which the tests use to keep fixtures quiet.
const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type stdLogger struct {
	level int
}

func NewLogger(level int) *stdLogger {
	return &stdLogger{level: level}
}

func (l *stdLogger) logf(level int, prefix, msg string, a ...any) {
	if l.level <= level {
		log.Printf(prefix+" "+msg+"\n", a...)
	}
}

func (l *stdLogger) Debugf(msg string, a ...any) {
	l.logf(DEBUG, "DEBUG |", msg, a...)
}

func (l *stdLogger) Infof(msg string, a ...any) {
	l.logf(INFO, "INFO  |", msg, a...)
}

func (l *stdLogger) Warnf(msg string, a ...any) {
	l.logf(WARNING, "WARN  |", msg, a...)
}

func (l *stdLogger) Errorf(msg string, a ...any) {
	l.logf(ERROR, "ERROR |", msg, a...)
}
