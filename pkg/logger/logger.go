package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()

// Init configures the global logger. Development gets human-readable console
// output at debug level, everything else JSON at info level.
func Init(environment string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log = zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
		return
	}

	log = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

func Debug(msg string, args ...any) {
	withFields(log.Debug(), args).Msg(msg)
}

func Info(msg string, args ...any) {
	withFields(log.Info(), args).Msg(msg)
}

func Warn(msg string, args ...any) {
	withFields(log.Warn(), args).Msg(msg)
}

func Error(msg string, args ...any) {
	withFields(log.Error(), args).Msg(msg)
}

func Fatal(msg string, args ...any) {
	withFields(log.Fatal(), args).Msg(msg)
}

// withFields consumes args as alternating key/value pairs. A bare error with no
// preceding key is logged under "error".
func withFields(ev *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i < len(args); {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			ev = ev.Interface(key, args[i+1])
			i += 2
			continue
		}

		if err, ok := args[i].(error); ok {
			ev = ev.Err(err)
		} else {
			ev = ev.Interface(fmt.Sprintf("arg%d", i), args[i])
		}
		i++
	}

	return ev
}
