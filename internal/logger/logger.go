package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// Init initializes the logger with default settings
func Init() {
	Initialize("info")
}

// Initialize sets up the global logger with Charm's log library
func Initialize(logLevel string) {
	Logger = log.New(os.Stderr)

	level := strings.ToLower(logLevel)
	switch level {
	case "debug":
		Logger.SetLevel(log.DebugLevel)
	case "info":
		Logger.SetLevel(log.InfoLevel)
	case "warn", "warning":
		Logger.SetLevel(log.WarnLevel)
	case "error":
		Logger.SetLevel(log.ErrorLevel)
	case "fatal":
		Logger.SetLevel(log.FatalLevel)
	default:
		Logger.SetLevel(log.InfoLevel)
	}

	Logger.SetReportCaller(true)
	Logger.SetReportTimestamp(true)

	Logger.Debug("Logger initialized", "level", level)
}

// Get returns the global logger instance
func Get() *log.Logger {
	if Logger == nil {
		Initialize("info")
	}
	return Logger
}

// WithContext creates a new logger with additional context fields
func WithContext(fields ...any) *log.Logger {
	return Get().With(fields...)
}

// Store creates a logger for a data store
func Store(storeName string) *log.Logger {
	return WithContext("component", "store", "store", storeName)
}

// Storage creates a logger for a persistence backend
func Storage(backendName string) *log.Logger {
	return WithContext("component", "storage", "backend", backendName)
}

// HTTP creates a logger for HTTP operations
func HTTP() *log.Logger {
	return WithContext("component", "http")
}

// Handler creates a logger for HTTP handlers
func Handler(handlerName string) *log.Logger {
	return WithContext("component", "handler", "handler", handlerName)
}

// Invite creates a logger for the invitation pipeline
func Invite() *log.Logger {
	return WithContext("component", "invite")
}

// Migration creates a logger for database migrations
func Migration() *log.Logger {
	return WithContext("component", "migration")
}
