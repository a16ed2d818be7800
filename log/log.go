// Package log provides the slog loggers used across the module.
//
// Components accept a *[slog.Logger] in their options and fall back to [Default] when none is given.
// The default logger writes human-readable records to stderr, see [Def], [Dev] and [Noop]
// for the prepared alternatives and [New] to build one from a [Format] and a level.
package log

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(fi fs.FileInfo) slog.Value {
		return slog.GroupValue(
			slog.String("name", fi.Name()),
			slog.Bool("dir", fi.IsDir()),
			slog.Int64("size", fi.Size()),
		)
	}),
	slogformatter.FormatByType(func(e fs.DirEntry) slog.Value {
		return slog.GroupValue(
			slog.String("name", e.Name()),
			slog.Bool("dir", e.IsDir()),
		)
	}),
)

// Format is a log output format.
type Format string

const (
	FormatConsole Format = "console"
	FormatDev     Format = "dev"
	FormatText    Format = "text"
	FormatJSON    Format = "json"
)

// ParseLevel parses a level name: debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return lvl, nil
}

// New creates a logger writing to w in the given format.
func New(w io.Writer, format Format, level slog.Leveler) (*slog.Logger, error) {
	var h slog.Handler
	switch format {
	case FormatConsole, "":
		h = console.NewHandler(w, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatDev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatText:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case FormatJSON:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(newHandler(h)), nil
}

// Def is a console logger writing to stderr at info level.
var Def = slog.New(newHandler(
	console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339Nano,
	}),
))

// Dev is a developer logger.
var Dev = slog.New(newHandler(
	devslog.NewHandler(os.Stderr, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		},
		SortKeys:   true,
		TimeFormat: time.RFC3339Nano,
	}),
))

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

var defLogger atomic.Pointer[slog.Logger]

func init() { defLogger.Store(Def) }

// Default returns the module-wide default logger.
func Default() *slog.Logger { return defLogger.Load() }

// SetDefault replaces the module-wide default logger.
// A nil logger resets it to [Def].
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Def
	}
	defLogger.Store(l)
}

type stringValue struct{ v fmt.Stringer }

func (v stringValue) LogValue() slog.Value {
	if v.v == nil {
		return slog.AnyValue(nil)
	}
	return slog.StringValue(v.v.String())
}

// StringValue returns a value logger that formats v using its String method.
func StringValue(v fmt.Stringer) slog.LogValuer { return stringValue{v} }

type calcValue struct{ fn func() any }

func (v calcValue) LogValue() slog.Value {
	cv := v.fn()
	switch cv := cv.(type) {
	case slog.Value:
		return cv
	default:
		return slog.AnyValue(cv)
	}
}

// CalcValue returns a value logger that computes a value using fn only when the record is emitted.
func CalcValue(fn func() any) slog.LogValuer { return calcValue{fn} }
