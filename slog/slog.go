// Package slog provides structured logging for handy's commands and libraries.
// It is a wrapper for the https://pkg.go.dev/log/slog
// With some extra functionality to configure levels and formatters.
package slog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

type (
	// A Handler handles log records produced by a Logger.
	Handler = slog.Handler

	// HandlerOptions are options for a [TextHandler] or [JSONHandler].
	// A zero HandlerOptions consists entirely of default values.
	HandlerOptions = slog.HandlerOptions

	// Level determines the importance or severity of a log record
	Level = slog.Level

	// Logger represents a logger instance with its own context.
	// It extends Go's slog.Logger by adding new methods, like [Logger.Fatal].
	Logger struct {
		*slog.Logger
	}

	// Format determines the output format of the log records
	Format string
)

// All available log levels
const (
	LevelInfo    Level = slog.LevelInfo
	LevelDebug   Level = slog.LevelDebug
	LevelWarn    Level = slog.LevelWarn
	LevelError   Level = slog.LevelError
	LevelDisable Level = math.MaxInt
)

// All available log formats
const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatGcloud Format = "gcloud"
)

// Default configurations
const (
	DefaultLevel  = slog.LevelInfo
	DefaultFormat = FormatText
)

// Config represents log configuration.
type Config struct {
	Level  Level
	Format Format
}

// Fatal is equivalent to [Logger.Error] followed by a call to os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}

// With calls Logger.With on the default logger returning a new Logger instance.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// LevelEnv returns the name of the environment variable with the log level of service.
func LevelEnv(service string) string {
	return service + "_LOG_LEVEL"
}

// FormatEnv returns the name of the environment variable with the log format of service.
func FormatEnv(service string) string {
	return service + "_LOG_FMT"
}

// LoadConfig will load the log Config of the service from environment variables.
// The service name is used as a prefix for the environment variables.
// So a service "HANDY" will load the log level from "HANDY_LOG_LEVEL", see [LevelEnv] and [FormatEnv].
//
// Available log levels are: "debug", "info", "warn", "error", "disable"
// Available log fmts are: "text", "json", "gcloud"
//
// If the environment variables are not found it will use default values.
func LoadConfig(service string) (Config, error) {
	return ParseConfig(os.Getenv(LevelEnv(service)), os.Getenv(FormatEnv(service)))
}

// ParseConfig parses a level and a format, empty values are parsed as the defaults.
func ParseConfig(level, format string) (Config, error) {
	logLevel, err := ParseLevel(level)
	if err != nil {
		return Config{}, err
	}
	logFormat, err := ParseFormat(format)
	if err != nil {
		return Config{}, err
	}
	return Config{Level: logLevel, Format: logFormat}, nil
}

// New creates a new Logger with the given non-nil Handler.
func New(h Handler) *Logger {
	return &Logger{slog.New(h)}
}

// NewHandler creates a [Handler] writing records on w as configured by cfg.
func NewHandler(w io.Writer, cfg Config) (Handler, error) {
	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	switch cfg.Format {
	case FormatText:
		return slog.NewTextHandler(w, opts), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	case FormatGcloud:
		return NewGoogleCloudHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format: %v", cfg.Format)
	}
}

// NewGoogleCloudHandler creates a [JSONHandler] that writes to w in a format that works well with Google Cloud Logging.
func NewGoogleCloudHandler(w io.Writer, opts *slog.HandlerOptions) *slog.JSONHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		// Customize the name of some fields to match Google Cloud expectations
		// More: https://cloud.google.com/logging/docs/agent/logging/configuration#process-payload
		if len(groups) > 0 {
			return a
		}
		switch a.Key {
		case slog.LevelKey:
			a.Key = "severity"
		case slog.MessageKey:
			a.Key = "message"
		case HTTPRequestKey:
			a.Key, a.Value = convertHTTPRequest(a.Key, a.Value)
		}
		return a
	}
	return slog.NewJSONHandler(w, opts)
}

// Configure will change the default logger configuration, logging on stderr.
// It should be called as soon as possible, usually on the main of your program.
func Configure(cfg Config) error {
	return ConfigureWriter(os.Stderr, cfg)
}

// ConfigureWriter is like [Configure] but logs on w.
func ConfigureWriter(w io.Writer, cfg Config) error {
	handler, err := NewHandler(w, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// Info calls Logger.Info on the default logger.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Debug calls Logger.Debug on the default logger.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Warn calls Logger.Warn on the default logger.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error calls Logger.Error on the default logger.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// Fatal is equivalent to Error() followed by a call to os.Exit(1).
func Fatal(msg string, args ...any) {
	Error(msg, args...)
	os.Exit(1)
}

// With calls Logger.With on the default logger returning a new Logger instance.
func With(args ...any) *Logger {
	return &Logger{slog.With(args...)}
}

// Default creates a new [Logger] with default configurations.
func Default() *Logger {
	return &Logger{slog.Default()}
}

// FromCtx gets the [Logger] associated with the given context. A default [Logger] is
// returned if the context has no [Logger] associated with it.
func FromCtx(ctx context.Context) *Logger {
	val := ctx.Value(loggerKey)
	log, ok := val.(*Logger)
	if !ok {
		return Default()
	}
	return log
}

// NewContext creates a new [context.Context] with the given [Logger] associated with it.
// Call [FromCtx] to retrieve the [Logger].
func NewContext(ctx context.Context, log *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// key is the type used to store data on contexts.
type key int

const (
	loggerKey key = iota
)

// ParseLevel parses the string and returns the corresponding [Level].
func ParseLevel(level string) (Level, error) {
	level = strings.ToLower(level)
	switch level {
	case "info", "":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "disable":
		return LevelDisable, nil
	default:
		return Level(666), fmt.Errorf("invalid log level: %q", level)
	}
}

// ParseFormat parses the string and returns the corresponding [Format].
func ParseFormat(format string) (Format, error) {
	switch Format(format) {
	case FormatText, FormatJSON, FormatGcloud:
		return Format(format), nil
	case "":
		return DefaultFormat, nil
	default:
		return "", fmt.Errorf("unknown log format %q", format)
	}
}
