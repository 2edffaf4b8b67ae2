package internal

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger creates a JSON logger writing to out, with a role field and timestamp on every event.
func NewLogger(out io.Writer, role string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(out).Level(level).With().
		Str("role", role).
		Timestamp().
		Logger()
}
