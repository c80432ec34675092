// Package log wraps the standard library logger with named, leveled
// loggers. Every line carries a "[name>]" marker so output from the
// indexer, the watcher and the HTTP server can be told apart.
//
//	l := log.ForService("watcher")
//	l.Infof("reloaded %d records", n)
//	l.Debugf("event %s", ev) // only with debug enabled
//
// Debug output is enabled globally with SetGlobalDebug or per logger name
// with EnableDebugFor. All functions are safe for concurrent use.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
)

// Logger is a named logger.
type Logger struct {
	name string
	std  *stdlog.Logger
}

// sink keeps atomic.Value storing a single concrete type.
type sink struct {
	w io.Writer
}

var (
	output      atomic.Value
	globalDebug atomic.Bool
	debugNames  sync.Map
	loggers     sync.Map
	flags       = stdlog.LstdFlags
)

func init() {
	output.Store(sink{w: os.Stderr})
}

// ForService returns the logger for name, creating it on first use.
func ForService(name string) *Logger {
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	l := &Logger{name: name, std: stdlog.New(writer(), "", flags)}
	actual, _ := loggers.LoadOrStore(name, l)
	return actual.(*Logger)
}

func writer() io.Writer {
	return output.Load().(sink).w
}

// SetOutput routes every logger, existing and future, to w. A nil w
// restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output.Store(sink{w: w})
	loggers.Range(func(_, v any) bool {
		v.(*Logger).std.SetOutput(w)
		return true
	})
}

// SetGlobalDebug toggles debug output for all loggers.
func SetGlobalDebug(on bool) {
	globalDebug.Store(on)
}

// EnableDebugFor turns debug output on for the named loggers.
func EnableDebugFor(names ...string) {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			debugNames.Store(n, struct{}{})
		}
	}
}

// DisableDebugFor reverts EnableDebugFor.
func DisableDebugFor(names ...string) {
	for _, n := range names {
		debugNames.Delete(strings.TrimSpace(n))
	}
}

// DebugEnabledFor reports whether Debugf prints for name.
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	_, ok := debugNames.Load(name)
	return ok
}

func (l *Logger) emit(level, msg string) {
	l.std.Printf("%s [%s>] %s", level, l.name, msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.emit(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.emit(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.emit(LevelError, fmt.Sprintf(format, args...))
}

// Debugf prints only when debug is enabled for this logger.
func (l *Logger) Debugf(format string, args ...any) {
	if !DebugEnabledFor(l.name) {
		return
	}
	l.emit(LevelDebug, fmt.Sprintf(format, args...))
}
