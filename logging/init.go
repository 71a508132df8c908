package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// init sets up the zerolog globals huffgen relies on.
func init() {
	// Stack traces come from github.com/pkg/errors, timestamps are UNIX seconds
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
