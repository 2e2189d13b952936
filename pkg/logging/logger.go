// Package logging provides structured logging for chatlens.
// It wraps zerolog: JSON lines for machines, a console writer for people.
// Logs go to stderr so rendered results on stdout stay clean.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// ContextKey type for context values to avoid collisions.
type ContextKey string

// RunIDKey carries the pipeline run identifier through a context.
const RunIDKey ContextKey = "run_id"

// Level represents logging severity levels.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var zerologLevels = map[Level]zerolog.Level{
	LevelDebug: zerolog.DebugLevel,
	LevelInfo:  zerolog.InfoLevel,
	LevelWarn:  zerolog.WarnLevel,
	LevelError: zerolog.ErrorLevel,
}

// IsValid reports whether l is one of the known levels.
func (l Level) IsValid() bool {
	_, ok := zerologLevels[l]
	return ok
}

// NormalizeLevel lowercases and trims s and maps the "warning" alias to
// LevelWarn. Unknown values are returned normalized but not replaced.
func NormalizeLevel(s string) Level {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if l == "warning" {
		return LevelWarn
	}
	return l
}

// ParseLevel maps a config value such as "WARN" or "warning" to a Level.
// Unknown values fall back to LevelInfo.
func ParseLevel(s string) Level {
	l := NormalizeLevel(s)
	if !l.IsValid() {
		return LevelInfo
	}
	return l
}

// Config holds logger configuration.
type Config struct {
	// Level sets the minimum log level.
	Level Level

	// ServiceName is stamped on every entry.
	ServiceName string

	// JSONFormat enables JSON output when true, console output when false.
	JSONFormat bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the interactive CLI defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:       LevelInfo,
		ServiceName: "chatlens",
		Output:      os.Stderr,
	}
}

// Logger is the interface for structured logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a Logger that attaches fields to every entry.
	With(fields ...Field) Logger

	// WithContext returns a Logger carrying the run ID found in ctx, if any.
	WithContext(ctx context.Context) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field with the given key and value.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Err creates a Field for an error.
func Err(err error) Field {
	return Field{Key: zerolog.ErrorFieldName, Value: err}
}

// fieldList flattens fields into the key/value list zerolog accepts,
// keeping their order.
func fieldList(fields []Field) []interface{} {
	list := make([]interface{}, 0, 2*len(fields))
	for _, f := range fields {
		list = append(list, f.Key, f.Value)
	}
	return list
}

type logger struct {
	zl zerolog.Logger
}

// NewLogger creates a new Logger with the given configuration.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if !cfg.JSONFormat {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(out),
		}
	}

	level, ok := zerologLevels[cfg.Level]
	if !ok {
		level = zerolog.InfoLevel
	}

	zctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ServiceName != "" {
		zctx = zctx.Str("service_name", cfg.ServiceName)
	}
	return &logger{zl: zctx.Logger()}
}

// isTerminal reports whether w is a terminal, which enables colour.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (l *logger) log(e *zerolog.Event, msg string, fields []Field) {
	if len(fields) > 0 {
		e = e.Fields(fieldList(fields))
	}
	e.Msg(msg)
}

func (l *logger) Debug(msg string, fields ...Field) { l.log(l.zl.Debug(), msg, fields) }
func (l *logger) Info(msg string, fields ...Field)  { l.log(l.zl.Info(), msg, fields) }
func (l *logger) Warn(msg string, fields ...Field)  { l.log(l.zl.Warn(), msg, fields) }
func (l *logger) Error(msg string, fields ...Field) { l.log(l.zl.Error(), msg, fields) }

func (l *logger) With(fields ...Field) Logger {
	return &logger{zl: l.zl.With().Fields(fieldList(fields)).Logger()}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	runID := RunIDFromContext(ctx)
	if runID == "" {
		return l
	}
	return &logger{zl: l.zl.With().Str(string(RunIDKey), runID).Logger()}
}

// ContextWithRunID returns a copy of ctx carrying runID.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// RunIDFromContext returns the run ID stored by ContextWithRunID, or "".
func RunIDFromContext(ctx context.Context) string {
	runID, _ := ctx.Value(RunIDKey).(string)
	return runID
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)               {}
func (nopLogger) Info(string, ...Field)                {}
func (nopLogger) Warn(string, ...Field)                {}
func (nopLogger) Error(string, ...Field)               {}
func (n nopLogger) With(...Field) Logger               { return n }
func (n nopLogger) WithContext(context.Context) Logger { return n }

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() Logger {
	return nopLogger{}
}
