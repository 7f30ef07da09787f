package config

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger from the logging section. The
// console format is meant for the CLIs; "json" writes structured lines
// for log collection.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
