// Package logging configures the process-wide slog logger: text on the console,
// JSON in weekly rotating files.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/medicore/ai-service/config"
)

// LoggingService owns the configured logger and its file writer
type LoggingService struct {
	Logger *slog.Logger
	file   io.Closer
}

// Options controls logger construction
type Options struct {
	Dir            string // empty disables file logging
	RetentionWeeks int
	MaxFileSize    int64
	Env            config.Environment
	Level          string
	Verbose        bool
	Console        io.Writer // defaults to stdout
}

var (
	DefaultLoggingService *LoggingService

	fallbackOnce   sync.Once
	fallbackLogger *slog.Logger
)

// InitLogger builds the global logger from opts and installs it as the slog default
func InitLogger(opts Options) {
	DefaultLoggingService = newLoggingService(opts)
	slog.SetDefault(DefaultLoggingService.Logger)
}

// Close flushes and closes the log file, if any
func Close() error {
	if DefaultLoggingService == nil || DefaultLoggingService.file == nil {
		return nil
	}
	return DefaultLoggingService.file.Close()
}

func newLoggingService(opts Options) *LoggingService {
	out := opts.Console
	if out == nil {
		out = os.Stdout
	}
	console := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose),
	})
	if opts.Dir == "" {
		return &LoggingService{Logger: slog.New(console)}
	}

	retention := opts.RetentionWeeks
	if retention <= 0 {
		retention = 4
	}
	writer, err := NewRotatingWriter(opts.Dir, retention, opts.MaxFileSize)
	if err != nil {
		logger := slog.New(console)
		logger.Error("Failed to open log directory, logging to console only", "dir", opts.Dir, "error", err)
		return &LoggingService{Logger: logger}
	}

	file := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: GetFileLogLevel()})
	return &LoggingService{
		Logger: slog.New(newFanoutHandler(console, file)),
		file:   writer,
	}
}

// Logger returns the configured logger, or a stderr logger before InitLogger
func Logger() *slog.Logger {
	if DefaultLoggingService != nil && DefaultLoggingService.Logger != nil {
		return DefaultLoggingService.Logger
	}
	fallbackOnce.Do(func() {
		fallbackLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	})
	return fallbackLogger
}

func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }
func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
