// Package logging is the module's structured logger, a thin layer over bolt
// that keeps field names consistent between the planner, the executor and
// the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/felixgeelhaar/bolt/v3"
)

var current atomic.Pointer[bolt.Logger]

// Config selects level, encoding and destination.
type Config struct {
	Level  string // trace, debug, info, warn or error
	Format string // console or json
	Output io.Writer
}

// DefaultConfig logs info and above to stderr so plan output on stdout stays
// clean.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console", Output: os.Stderr}
}

var levels = map[string]bolt.Level{
	"trace": bolt.TRACE,
	"debug": bolt.DEBUG,
	"info":  bolt.INFO,
	"warn":  bolt.WARN,
	"error": bolt.ERROR,
}

// ParseLevel maps a level name to a bolt level. Matching ignores case.
func ParseLevel(s string) (bolt.Level, bool) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	return lvl, ok
}

// New builds a logger without touching the package default.
func New(cfg Config) (*bolt.Logger, error) {
	lvl := bolt.INFO
	if cfg.Level != "" {
		var ok bool
		if lvl, ok = ParseLevel(cfg.Level); !ok {
			return nil, fmt.Errorf("unknown log level %q", cfg.Level)
		}
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var handler bolt.Handler
	switch cfg.Format {
	case "", "console":
		handler = bolt.NewConsoleHandler(out)
	case "json":
		handler = bolt.NewJSONHandler(out)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return bolt.New(handler).SetLevel(lvl), nil
}

// Configure replaces the package default. On error the previous logger is
// kept.
func Configure(cfg Config) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}
	current.Store(logger)
	return nil
}

// Get returns the package default, creating it from DefaultConfig on first
// use.
func Get() *bolt.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	l, _ := New(DefaultConfig())
	current.CompareAndSwap(nil, l)
	return current.Load()
}

// LogEvent chains Fields onto a pending bolt event.
type LogEvent struct {
	event *bolt.Event
}

// NewEvent wraps e.
func NewEvent(e *bolt.Event) *LogEvent {
	return &LogEvent{event: e}
}

func (l *LogEvent) Add(f Field) *LogEvent {
	l.event = f(l.event)
	return l
}

func (l *LogEvent) Msg(msg string) { l.event.Msg(msg) }

func (l *LogEvent) Send() { l.event.Send() }

func Trace() *LogEvent { return NewEvent(Get().Trace()) }
func Debug() *LogEvent { return NewEvent(Get().Debug()) }
func Info() *LogEvent  { return NewEvent(Get().Info()) }
func Warn() *LogEvent  { return NewEvent(Get().Warn()) }
func Error() *LogEvent { return NewEvent(Get().Error()) }
