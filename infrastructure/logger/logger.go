package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Level is the severity of an emitted line
type Level int

const (
	DEBUG Level = iota
	INFO
	SUCCESS
	NEW
	WARNING
	ERROR
)

// Color returns the color lines of this level are printed with
func (l Level) Color() *color.Color {
	return []*color.Color{
		color.New(color.FgWhite, color.Italic), // Debug
		color.New(color.Reset),                 // Info
		color.New(color.FgHiGreen),             // Success
		color.New(color.FgGreen, color.Italic), // New
		color.New(color.FgYellow),              // Warning
		color.New(color.FgHiRed, color.Bold),   // Error
	}[l]
}

// Logger emits formatted lines at a level
type Logger interface {
	Emit(Level, string, ...interface{})
}

// Console writes log lines to an io.Writer, colored when enabled
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel Level
	colored  bool
}

// Option configures a Console
type Option func(*Console)

// WithMinLevel drops lines below level
func WithMinLevel(level Level) Option {
	return func(c *Console) {
		c.minLevel = level
	}
}

// WithColor forces colors on or off
func WithColor(enabled bool) Option {
	return func(c *Console) {
		c.colored = enabled
	}
}

// New creates a Console writing to out. Colors default to on only when out
// is a terminal and color output has not been disabled globally.
func New(out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:      out,
		minLevel: INFO,
		colored:  isTerminal(out) && !color.NoColor,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Emit implements Logger. Messages carry their own trailing newline.
func (c *Console) Emit(level Level, message string, args ...interface{}) {
	if level < c.minLevel {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	msg := fmt.Sprintf(message, args...)
	if !c.colored {
		fmt.Fprint(c.out, msg)
		return
	}

	col := level.Color()
	col.EnableColor()
	col.Fprint(c.out, msg)
}

// Discard is a Logger that drops everything
var Discard Logger = discard{}

type discard struct{}

func (discard) Emit(Level, string, ...interface{}) {}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Ensure Console implements Logger
var _ Logger = (*Console)(nil)
