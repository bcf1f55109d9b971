// Package logger records viewer diagnostics: load failures, stale-result
// drops, and lifecycle events. Lines are kept in memory (for the HUD and for
// tests) and appended to a file on disk.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultLogPath is the path to the viewer log file, relative to the working
// directory.
const DefaultLogPath = "logs/viewer.txt"

// Logger stores timestamped lines in memory and appends them to a file.
// A nil *Logger is valid and discards everything, so library code can log
// unconditionally.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Logger writing to path (DefaultLogPath when empty) and
// ensures the log directory exists.
func New(path string) *Logger {
	if path == "" {
		path = DefaultLogPath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path}
}

// Log appends a line, prefixed with a timestamp, to memory and to the log
// file.
func (l *Logger) Log(line string) {
	if l == nil {
		return
	}
	stamped := "[" + time.Now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats and logs a line.
func (l *Logger) Logf(format string, args ...any) {
	if l == nil {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
