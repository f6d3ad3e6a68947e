package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level      zerolog.Level
	TimeFormat string
	Output     io.Writer
	Pretty     bool
}

// Setup configures the global zerolog logger used across the process.
func Setup(cfg *Config) {
	if cfg == nil {
		cfg = &Config{
			Level:      zerolog.InfoLevel,
			TimeFormat: time.RFC3339,
			Output:     os.Stdout,
		}
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	output := cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: cfg.TimeFormat,
		}
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat
	log.Logger = zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// New returns a component logger with a name field attached.
func New(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
