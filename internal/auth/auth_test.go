package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-draft/internal/config"
	"team-draft/internal/domain"
)

func newTokens(now time.Time) *Tokens {
	t := NewTokens(&config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour})
	t.now = func() time.Time { return now }
	return t
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Now()
	tokens := newTokens(now)
	id := uuid.New()

	signed, err := tokens.Issue(id)
	require.NoError(t, err)

	got, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenRejected(t *testing.T) {
	now := time.Now()
	tokens := newTokens(now)
	signed, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := newTokens(now.Add(2 * time.Hour))
		_, err := later.Parse(signed)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokens(&config.Config{JWTSecret: "other", TokenTTL: time.Hour})
		_, err := other.Parse(signed)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not.a.token")
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := jwt.RegisteredClaims{Issuer: issuer, Subject: uuid.NewString(), ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.Parse(unsigned)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	require.NoError(t, CheckPassword(hash, "correct horse"))
	require.ErrorIs(t, CheckPassword(hash, "battery staple"), domain.ErrUnauthenticated)
}
