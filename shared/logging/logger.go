// Package logging provides the structured logger shared by all services.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultLevel = zerolog.WarnLevel

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	Console bool      // human readable output instead of JSON lines
	Version string    // optional CLI version attached to every entry
}

var (
	mu         sync.RWMutex
	base       zerolog.Logger
	configured bool
)

// ParseLevel parses a level name. An empty name yields the default level.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return defaultLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return defaultLevel, fmt.Errorf("unsupported log level %q (want trace, debug, info, warn, error or disabled)", name)
	}
	return level, nil
}

// Configure (re)initialises the global logger. Level falls back to LOG_LEVEL
// and then to warn, so a successful run stays silent. Callers validate the
// level with ParseLevel first; an unparsable one is treated as unset here.
func Configure(cfg Config) {
	name := cfg.Level
	if name == "" {
		name = os.Getenv("LOG_LEVEL")
	}
	level, err := ParseLevel(name)
	if err != nil {
		level = defaultLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Console {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(writer).Level(level).With().Timestamp()
	if cfg.Version != "" {
		ctx = ctx.Str("version", cfg.Version)
	}

	mu.Lock()
	base = ctx.Logger()
	configured = true
	mu.Unlock()
}

func logger() zerolog.Logger {
	mu.RLock()
	ok := configured
	l := base
	mu.RUnlock()
	if ok {
		return l
	}
	Configure(Config{})
	return logger()
}

type ctxKey struct{}

// ContextWithRunID returns a context whose logger carries the sync run ID.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, runID)
}

// FromContext returns the base logger enriched with any run ID found in ctx.
func FromContext(ctx context.Context) zerolog.Logger {
	l := logger()
	if ctx == nil {
		return l
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return l.With().Str("run_id", id).Logger()
	}
	return l
}

// WithComponent returns the context logger annotated with a component name.
func WithComponent(ctx context.Context, component string) zerolog.Logger {
	return FromContext(ctx).With().Str("component", component).Logger()
}
