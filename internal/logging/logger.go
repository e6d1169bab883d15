// Package logging provides the editor's level-filtered, size-rotated file
// loggers.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// parseLevel maps a configured level name onto a charm level; unknown
// names mean info.
func parseLevel(s string) charmlog.Level {
	lvl, err := charmlog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl < charmlog.DebugLevel || lvl > charmlog.ErrorLevel {
		return charmlog.InfoLevel
	}
	return lvl
}

// Logger writes timestamped, level-tagged lines to a file and optionally
// mirrors them to a styled console logger. The file is rotated once it grows past
// the configured size. A nil *Logger discards everything, so packages can
// log unconditionally.
type Logger struct {
	mu       sync.Mutex
	filePath string
	file     *os.File
	logger   *log.Logger
	level    atomic.Int32
	maxBytes int64
	console  *charmlog.Logger
}

// NewLogger opens (or creates) the log file at path. level is one of
// "debug", "info", "warn", "error"; rotationMB is the size that triggers a
// rotation. When toConsole is true every line is also written to stderr.
func NewLogger(path string, level string, rotationMB int, toConsole bool) (*Logger, error) {
	var console io.Writer
	if toConsole {
		console = os.Stderr
	}
	return newLogger(path, level, rotationMB, console)
}

// newLogger is NewLogger with an explicit console writer; nil disables the
// mirror.
func newLogger(path string, level string, rotationMB int, console io.Writer) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	l := &Logger{
		filePath: path,
		file:     f,
		logger:   log.New(f, "", 0),
		maxBytes: int64(rotationMB) * 1024 * 1024,
	}
	if console != nil {
		l.console = charmlog.NewWithOptions(console, charmlog.Options{
			Prefix:          strings.TrimSuffix(filepath.Base(path), ".log"),
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Level:           charmlog.DebugLevel,
		})
	}
	l.level.Store(int32(parseLevel(level)))
	return l, nil
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level string) {
	if l == nil {
		return
	}
	l.level.Store(int32(parseLevel(level)))
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) { l.logMsg(charmlog.DebugLevel, msg, args...) }

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...any) { l.logMsg(charmlog.InfoLevel, msg, args...) }

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...any) { l.logMsg(charmlog.WarnLevel, msg, args...) }

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...any) { l.logMsg(charmlog.ErrorLevel, msg, args...) }

func (l *Logger) logMsg(lvl charmlog.Level, msg string, args ...any) {
	if l == nil || lvl < charmlog.Level(l.level.Load()) {
		return
	}

	text := msg
	if len(args) > 0 {
		text = fmt.Sprintf(msg, args...)
	}
	line := time.Now().Format(time.RFC3339) + " [" + strings.ToUpper(lvl.String()) + "] " + text

	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkRotate()
	l.logger.Output(0, line)
	if l.console != nil {
		l.console.Log(lvl, text)
	}
}

// checkRotate rotates the file once it reaches maxBytes. Must be called
// with l.mu held.
func (l *Logger) checkRotate() {
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.maxBytes {
		return
	}

	// The open handle stays valid on Unix after the rename.
	if err := rotate(l.filePath); err != nil {
		fmt.Fprintf(os.Stderr, "logging: rotation failed: %v\n", err)
		return
	}

	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: reopen after rotation failed: %v\n", err)
		return
	}

	old := l.file
	l.file = f
	l.logger.SetOutput(f)
	old.Close()
}

// Close closes the underlying log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
