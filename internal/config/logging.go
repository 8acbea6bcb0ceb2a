package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

const logRelPath = "floatwm/floatwm.log"

// LogPath returns the configured log file, or the XDG state location.
func (c LoggingConfig) LogPath() (string, error) {
	if c.File != "" {
		return c.File, nil
	}
	path, err := xdg.StateFile(logRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to get log path: %w", err)
	}
	return path, nil
}

// LogLevel parses the configured level.
func (c LoggingConfig) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return level, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

// OpenLogFile opens the log file for appending, creating its directory.
func (c LoggingConfig) OpenLogFile() (*os.File, error) {
	path, err := c.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - log path comes from user config or XDG
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// NewLogger opens the log file and returns a logger writing to it. The
// caller closes the returned closer on exit.
func (c LoggingConfig) NewLogger() (*log.Logger, io.Closer, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	f, err := c.OpenLogFile()
	if err != nil {
		return nil, nil, err
	}
	return NewWriterLogger(f, level), f, nil
}

// NewWriterLogger returns a timestamped logger at level writing to w.
func NewWriterLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "floatwm",
	})
}
