package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// Logger is the structured logger used across timescope.
type Logger interface {
	Debug(msg string, tags ...any)
	Info(msg string, tags ...any)
	Warn(msg string, tags ...any)
	Error(msg string, tags ...any)

	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)

	With(attrs ...any) Logger
	WithGroup(name string) Logger

	// Write prints msg as-is to stdout (and the extra writer, if any).
	Write(msg string)
}

var _ Logger = (*slogLogger)(nil)

type config struct {
	debug  bool
	format string
	writer io.Writer
	quiet  bool
	stderr io.Writer
	stdout io.Writer
}

// Option configures NewLogger.
type Option func(*config)

// WithDebug lowers the level to debug and adds source locations.
func WithDebug() Option {
	return func(c *config) {
		c.debug = true
	}
}

// WithFormat selects "text" or "json" output.
func WithFormat(format string) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithWriter duplicates every record to w.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writer = w
	}
}

// WithQuiet suppresses console output.
func WithQuiet() Option {
	return func(c *config) {
		c.quiet = true
	}
}

// WithConsole replaces stderr/stdout. Used by tests.
func WithConsole(stderr, stdout io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
		c.stdout = stdout
	}
}

// NewLogger builds a Logger fanning out to the console and an optional writer.
func NewLogger(opts ...Option) Logger {
	cfg := &config{stderr: os.Stderr, stdout: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.debug,
	}

	var handlers []slog.Handler
	if !cfg.quiet {
		handlers = append(handlers, newHandler(cfg.stderr, cfg.format, handlerOpts))
	}

	var sink *lockedWriter
	if cfg.writer != nil {
		sink = &lockedWriter{w: cfg.writer}
		handlers = append(handlers, newHandler(sink, cfg.format, handlerOpts))
	}

	return &slogLogger{
		logger: slog.New(slogmulti.Fanout(handlers...)),
		sink:   sink,
		stdout: cfg.stdout,
		quiet:  cfg.quiet,
		debug:  cfg.debug,
	}
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// lockedWriter keeps structured records and free-form Write calls from
// interleaving on the shared writer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type slogLogger struct {
	logger *slog.Logger
	sink   *lockedWriter
	stdout io.Writer
	quiet  bool
	debug  bool
}

func (l *slogLogger) Debug(msg string, tags ...any) { l.log(slog.LevelDebug, msg, tags...) }
func (l *slogLogger) Info(msg string, tags ...any)  { l.log(slog.LevelInfo, msg, tags...) }
func (l *slogLogger) Warn(msg string, tags ...any)  { l.log(slog.LevelWarn, msg, tags...) }
func (l *slogLogger) Error(msg string, tags ...any) { l.log(slog.LevelError, msg, tags...) }

func (l *slogLogger) Debugf(format string, v ...any) {
	l.log(slog.LevelDebug, fmt.Sprintf(format, v...))
}

func (l *slogLogger) Infof(format string, v ...any) {
	l.log(slog.LevelInfo, fmt.Sprintf(format, v...))
}

func (l *slogLogger) Warnf(format string, v ...any) {
	l.log(slog.LevelWarn, fmt.Sprintf(format, v...))
}

func (l *slogLogger) Errorf(format string, v ...any) {
	l.log(slog.LevelError, fmt.Sprintf(format, v...))
}

// log records the caller of the public method, not this file.
func (l *slogLogger) log(level slog.Level, msg string, tags ...any) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	var pc uintptr
	if l.debug {
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:]) // runtime.Callers, log, public method
		pc = pcs[0]
	}
	record := slog.NewRecord(time.Now(), level, msg, pc)
	record.Add(tags...)
	_ = l.logger.Handler().Handle(context.Background(), record)
}

func (l *slogLogger) With(attrs ...any) Logger {
	return &slogLogger{
		logger: l.logger.With(attrs...),
		sink:   l.sink,
		stdout: l.stdout,
		quiet:  l.quiet,
		debug:  l.debug,
	}
}

func (l *slogLogger) WithGroup(name string) Logger {
	return &slogLogger{
		logger: l.logger.WithGroup(name),
		sink:   l.sink,
		stdout: l.stdout,
		quiet:  l.quiet,
		debug:  l.debug,
	}
}

func (l *slogLogger) Write(msg string) {
	if !l.quiet {
		_, _ = fmt.Fprintln(l.stdout, msg)
	}
	if l.sink != nil {
		_, _ = l.sink.Write([]byte(msg + "\n"))
	}
}
