package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Manager owns the editor's two logs:
//
//	<dataDir>/logs/system.log   startup, load/save outcomes, journal problems
//	<dataDir>/logs/access.log   one line per HTTP request
type Manager struct {
	System *Logger
	Access *Logger

	logDir string
}

// NewManager creates <dataDir>/logs and opens both loggers.
func NewManager(dataDir string, level string, rotationMB int, toConsole bool) (*Manager, error) {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: mkdir %s: %w", logDir, err)
	}

	sysLog, err := NewLogger(filepath.Join(logDir, "system.log"), level, rotationMB, toConsole)
	if err != nil {
		return nil, fmt.Errorf("logging: system logger: %w", err)
	}

	// Access lines stay out of the console even when system lines go there.
	accessLog, err := NewLogger(filepath.Join(logDir, "access.log"), level, rotationMB, false)
	if err != nil {
		sysLog.Close()
		return nil, fmt.Errorf("logging: access logger: %w", err)
	}

	return &Manager{System: sysLog, Access: accessLog, logDir: logDir}, nil
}

// Dir returns the log directory.
func (m *Manager) Dir() string { return m.logDir }

// Close closes both loggers.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	return errors.Join(m.System.Close(), m.Access.Close())
}
