package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Fatal will log the error with the message at fatal level, and os.Exit with code 1.
func Fatal(log zerolog.Logger, err error, msg string) {
	log.WithLevel(zerolog.FatalLevel).Err(err).Msg(msg)
	os.Exit(1)
}

// Echo will emit the given message without any logging formatting.
func Echo(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(os.Stderr, msg, args...)
}
