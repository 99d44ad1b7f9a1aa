package server

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"

	"team-draft/internal/domain"
)

var codes = []struct {
	err  error
	code connect.Code
}{
	{domain.ErrNotFound, connect.CodeNotFound},
	{domain.ErrForbidden, connect.CodePermissionDenied},
	{domain.ErrInvalidArgument, connect.CodeInvalidArgument},
	{domain.ErrConflict, connect.CodeAlreadyExists},
	{domain.ErrUnauthenticated, connect.CodeUnauthenticated},
	{domain.ErrFailedPrecondition, connect.CodeFailedPrecondition},
}

// toConnectError maps service errors onto connect codes. Anything that is
// not a known domain error is logged and reported as internal without detail.
func toConnectError(logger zerolog.Logger, procedure string, err error) error {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return connect.NewError(c.code, err)
		}
	}
	logger.Error().Err(err).Str("procedure", procedure).Msg("request failed")
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}
