// Package logging configures zerolog for the rwkit command and bridges it to
// the *slog.Logger the library accepts.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/grokify/rwkit/internal/config"
)

// Configure configures the global logger on stderr, keeping stdout for
// command output.
func Configure(cli config.Cli) {
	logger, err := New(cli, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msgf("Unknown log level")
	}
	log.Logger = logger
}

// New returns a logger writing to out and sets the global level from cli.
func New(cli config.Cli, out io.Writer) (zerolog.Logger, error) {
	var w io.Writer

	// Adds support for NO_COLOR. More info https://no-color.org/
	_, noColor := os.LookupEnv("NO_COLOR")

	if !cli.LogJSON {
		w = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColor || cli.LogNoColor,
			TimeFormat: time.RFC1123,
		}
	} else {
		w = out
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	ctx := zerolog.New(w).With().Timestamp()
	if cli.LogCaller {
		ctx = ctx.Caller()
	}

	level, err := zerolog.ParseLevel(cli.LogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.SetGlobalLevel(level)

	return ctx.Logger(), nil
}

// Slog returns a *slog.Logger forwarding library debug records through
// logger, or nil when the global level filters debug output.
func Slog(logger zerolog.Logger) *slog.Logger {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return nil
	}
	return slog.New(slog.NewTextHandler(debugWriter{logger}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// zerolog stamps its own time and level
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// debugWriter logs each written line as a debug message.
type debugWriter struct {
	logger zerolog.Logger
}

func (w debugWriter) Write(p []byte) (int, error) {
	w.logger.Debug().Msg(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
