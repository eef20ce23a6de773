package qoi

import (
	"io"

	"github.com/rs/zerolog"
)

// defaultLogger is silent: the core must never own stdout/stderr on a
// caller's behalf. Callers opt in via WithLogger.
func defaultLogger() zerolog.Logger {
	return zerolog.New(io.Discard).With().Logger()
}
