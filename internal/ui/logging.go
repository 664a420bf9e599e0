package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes leveled lines to Out. A nil *Logger discards everything.
type Logger struct {
	Debug bool
	Out   io.Writer

	mu sync.Mutex
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug, Out: os.Stderr}
}

func (l *Logger) printf(prefix, format string, args ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	_, _ = fmt.Fprintf(out, prefix+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l != nil && l.Debug {
		l.printf("[DEBUG] ", format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.printf("[INFO] ", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.printf("[ERROR] ", format, args...)
}
