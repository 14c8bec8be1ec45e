package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Manager owns the process logger: console output plus an optional session log file.
type Manager struct {
	logger *ZerologLogger
}

// NewManager creates a new logging manager.
func NewManager() *Manager {
	return &Manager{}
}

// parseLevel converts a string log level to a zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup initializes logging to console and, when file is non-nil, to file as JSON.
func (m *Manager) Setup(console io.Writer, file io.Writer, level string) {
	if console == nil {
		console = os.Stdout
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339},
	}
	if file != nil {
		writers = append(writers, file)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	m.logger = NewZerolog(zl)
	m.logger.Info("Logging initialized", "level", level)
}

// Logger returns the configured logger, or a no-op logger if Setup hasn't been called.
func (m *Manager) Logger() *ZerologLogger {
	if m.logger == nil {
		return Nop()
	}
	return m.logger
}
