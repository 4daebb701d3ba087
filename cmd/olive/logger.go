package main

import (
	"io"

	"github.com/rs/zerolog"
)

func newLogger(out io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// printfLogger feeds the server's messages into zerolog at info level. zerolog's own
// Printf logs at debug level, which would hide the accept log by default.
type printfLogger struct {
	zerolog.Logger
}

func (p printfLogger) Printf(format string, v ...any) {
	p.Logger.Info().Msgf(format, v...)
}
