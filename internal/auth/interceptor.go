package auth

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey struct{}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(contextKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// NewInterceptor requires a bearer token on every procedure except those
// listed in public, and stores the caller's profile id in the context.
func NewInterceptor(tokens *Tokens, public ...string) connect.UnaryInterceptorFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if open[req.Spec().Procedure] {
				return next(ctx, req)
			}
			raw, ok := strings.CutPrefix(req.Header().Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("missing bearer token"))
			}
			id, err := tokens.Parse(raw)
			if err != nil {
				zerolog.Ctx(ctx).Debug().Err(err).Str("procedure", req.Spec().Procedure).Msg("rejected token")
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			ctx = zerolog.Ctx(ctx).With().Str("user_id", id.String()).Logger().WithContext(ctx)
			return next(WithUserID(ctx, id), req)
		}
	}
}
