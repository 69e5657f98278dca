package ground

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger returns a zerolog.Logger configured for engine trace/debug
// output, replacing the source's print-based debug/trace modes with
// structured, leveled logging in the teacher's idiom.
func newLogger(trace, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case trace:
		level = zerolog.TraceLevel
	case debug:
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Str("component", "ground").Logger()
}
