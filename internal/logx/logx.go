// Package logx wraps zerolog for the client. The terminal is owned by the
// TUI while the app runs, so logs go to a file instead of stdout.
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. With an empty logFile everything is
// discarded, which is the right default for an interactive session.
// Development mode lowers the level to Debug and uses the console writer.
func Init(logFile string, development bool) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		out = f
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	if development {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}).Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger
	return nil
}

// Logger returns the global zerolog instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Info records a message with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(fields).Msg(msg)
}

// Warn records a warning with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(fields).Msg(msg)
}

// Error records an error with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(fields).Msg(msg)
}
