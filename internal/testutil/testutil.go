// Package testutil provides common test utilities and helpers to reduce boilerplate in test files.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/anaconda/anaconda-client/internal/config"
	"github.com/anaconda/anaconda-client/internal/log"
)

// NewTestLogger creates a logger that writes to t.Logf for testing.
// This ensures test output is properly captured by the test framework.
func NewTestLogger(t testing.TB) log.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	handler := &testHandler{t: t, opts: opts}
	slogLogger := slog.New(handler)

	return log.NewSlogAdapter(slogLogger)
}

// RecordingLogger is a log.Logger that keeps every record for assertions.
type RecordingLogger struct {
	mu      sync.Mutex
	Records []Record
}

// Record is one captured log call.
type Record struct {
	Level slog.Level
	Msg   string
	Args  []any
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) add(level slog.Level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Records = append(l.Records, Record{Level: level, Msg: msg, Args: args})
}

// Debug implements log.Logger.
func (l *RecordingLogger) Debug(msg string, args ...any) { l.add(slog.LevelDebug, msg, args) }

// Info implements log.Logger.
func (l *RecordingLogger) Info(msg string, args ...any) { l.add(slog.LevelInfo, msg, args) }

// Warn implements log.Logger.
func (l *RecordingLogger) Warn(msg string, args ...any) { l.add(slog.LevelWarn, msg, args) }

// Error implements log.Logger.
func (l *RecordingLogger) Error(msg string, args ...any) { l.add(slog.LevelError, msg, args) }

// AtLevel returns the messages logged at exactly level.
func (l *RecordingLogger) AtLevel(level slog.Level) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var msgs []string
	for _, r := range l.Records {
		if r.Level == level {
			msgs = append(msgs, r.Msg)
		}
	}
	return msgs
}

// Contains reports whether any message contains substr.
func (l *RecordingLogger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.Records {
		if strings.Contains(r.Msg, substr) {
			return true
		}
	}
	return false
}

// ConfigOption allows customization of test config settings.
type ConfigOption func(*config.Settings)

// WithURL sets the API URL.
func WithURL(url string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.URL = url
	}
}

// WithToken sets the environment token.
func WithToken(token string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Token = token
	}
}

// WithSite adds a named site.
func WithSite(name string, site config.Site) ConfigOption {
	return func(cfg *config.Settings) {
		if cfg.Sites == nil {
			cfg.Sites = make(map[string]config.Site)
		}
		cfg.Sites[name] = site
	}
}

// WithForceNewCLI sets the force-new toggle.
func WithForceNewCLI(enabled bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.ForceNewCLI = enabled
	}
}

// WithStandalone sets the standalone toggle.
func WithStandalone(enabled bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.Standalone = enabled
	}
}

// NewMockConfig creates a config provider for testing with optional customizations.
func NewMockConfig(_ testing.TB, opts ...ConfigOption) config.Provider {
	cfg := config.Defaults()

	for _, opt := range opts {
		opt(cfg)
	}

	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(cfg)
	return configProvider
}

// testHandler implements slog.Handler to write to testing.TB.
type testHandler struct {
	t    testing.TB
	opts *slog.HandlerOptions
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(_ context.Context, record slog.Record) error {
	h.t.Logf("[%s] %s", record.Level.String(), record.Message)
	return nil
}

func (h *testHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts}
}
