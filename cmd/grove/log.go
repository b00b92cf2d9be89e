package main

import (
	"os"

	"github.com/rs/zerolog"
)

func (rcc *rootCmdConfig) logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if rcc.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
