package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New logs everything from debug up; config.Load narrows output with the
// global level once LOG_LEVEL is known.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()

	logger = logger.Level(zerolog.DebugLevel)

	return logger
}

// Console is the human readable logger of the command line scorer.
func Console(w io.Writer, level zerolog.Level) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()

	return logger.Level(level)
}

var Module = fx.Provide(New)
