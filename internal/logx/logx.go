package logx

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the process logger.
type Options struct {
	Service string
	Level   string
	// Format is "json" (default) or "console".
	Format string
	Output io.Writer
}

// New builds the base logger. Request handlers derive child loggers from it
// and carry them on the context via zerolog.Ctx.
func New(opts Options) zerolog.Logger {
	var out io.Writer = opts.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	l := zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(ParseLevel(opts.Level))
	if opts.Service != "" {
		l = l.With().Str("service", opts.Service).Logger()
	}
	return l
}

// ParseLevel falls back to info for empty or unknown values.
func ParseLevel(value string) zerolog.Level {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(v); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	return zerolog.InfoLevel
}
