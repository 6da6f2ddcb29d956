package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger. It discards everything until Init is called.
var Logger = zerolog.Nop()

// Level is a log level name
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

var levels = map[Level]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
}

// Config holds logging configuration
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer // defaults to stdout
}

// Init replaces the global logger
func Init(cfg Config) {
	level, ok := levels[cfg.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if !cfg.JSONOutput {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	Logger = zerolog.New(out).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a Level, falling back to info
func ParseLevel(s string) Level {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levels[l]; ok {
		return l
	}
	return InfoLevel
}

// WithComponent returns a child logger tagged with component
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithView returns a child logger tagged with a poll view name
func WithView(view string) zerolog.Logger {
	return Logger.With().Str("view", view).Logger()
}

// Info logs msg at info level on the global logger
func Info(msg string) {
	Logger.Info().Msg(msg)
}

// Warn logs msg at warn level on the global logger
func Warn(msg string) {
	Logger.Warn().Msg(msg)
}
