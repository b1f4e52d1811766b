// Package log wraps zerolog with the process-wide logger used by the server,
// the services and the wodctl command.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Level is a level name as read from LOG_LEVEL
type Level string

type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init replaces the global logger. Console output unless JSONOutput is set.
func Init(cfg Config) {
	zerolog.SetGlobalLevel(ParseLevel(string(cfg.Level)))

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
		return
	}
	Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// give info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// WithComponent creates a child logger with component field
func WithComponent(component string) *zerolog.Logger {
	l := Logger.With().Str("component", component).Logger()
	return &l
}

// WithWorkoutID creates a child logger with workout_id field
func WithWorkoutID(workoutID string) *zerolog.Logger {
	l := Logger.With().Str("workout_id", workoutID).Logger()
	return &l
}

func Info(msg string) {
	Logger.Info().Msg(msg)
}

func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

func Errorf(msg string, err error) {
	Logger.Error().Err(err).Msg(msg)
}

func Fatal(msg string, err error) {
	Logger.Fatal().Err(err).Msg(msg)
}
