// Package logger provides structured logging for the zoo simulation.
// Every decision the scheduler takes should be traceable through this.
package logger

import (
	"log"
	"os"
)

// Logger provides leveled logging with context.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// NewLogger creates a new logger instance.
func NewLogger() *Logger {
	return &Logger{
		infoLogger:  log.New(os.Stdout, "[ZOO-INFO] ", log.Ldate|log.Ltime),
		warnLogger:  log.New(os.Stdout, "[ZOO-WARN] ", log.Ldate|log.Ltime),
		errorLogger: log.New(os.Stderr, "[ZOO-ERROR] ", log.Ldate|log.Ltime),
	}
}

// Info logs informational messages.
func (l *Logger) Info(format string, args ...interface{}) {
	l.infoLogger.Printf(format, args...)
}

// Warn logs warning messages.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.warnLogger.Printf(format, args...)
}

// Error logs error messages.
func (l *Logger) Error(format string, args ...interface{}) {
	l.errorLogger.Printf(format, args...)
}

// Event logs a specific zoo event for operator oversight.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.infoLogger.Printf("[EVENT:%s] Actor:%s | %s", eventType, actorID, details)
}
