// Package logging configures log/slog for the host tools.
// Each subsystem gets its own logger tagged with a module attribute.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config represents logging configuration.
type Config struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

var (
	mutex         sync.RWMutex
	levelVar      = &slog.LevelVar{}
	output        io.Writer = os.Stderr
	format        = "text"
	moduleLoggers = make(map[string]*slog.Logger)
)

// Initialize sets the global level and format and rebuilds module loggers.
func Initialize(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	level, ok := parseLevel(config.Level)
	if !ok {
		level = slog.LevelInfo
	}
	levelVar.Set(level)

	format = strings.ToLower(config.Format)
	for module := range moduleLoggers {
		moduleLoggers[module] = slog.New(createHandler()).With("module", module)
	}
	slog.SetDefault(slog.New(createHandler()))
}

// SetOutput redirects all loggers created afterwards; used by tests.
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	output = w
	moduleLoggers = make(map[string]*slog.Logger)
}

// GetLogger returns a logger for the specified module, creating it if needed.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	if logger, exists := moduleLoggers[module]; exists {
		mutex.RUnlock()
		return logger
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	// Double-check in case another goroutine created it
	if logger, exists := moduleLoggers[module]; exists {
		return logger
	}
	logger := slog.New(createHandler()).With("module", module)
	moduleLoggers[module] = logger
	return logger
}

// createHandler builds a text or JSON handler on the current output.
// Caller must hold mutex.
func createHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: levelVar}
	if format == "json" {
		return slog.NewJSONHandler(output, opts)
	}
	return slog.NewTextHandler(output, opts)
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
