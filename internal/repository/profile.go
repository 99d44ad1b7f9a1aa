package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-draft/internal/db"
	"team-draft/internal/domain"
)

type ProfileRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewProfileRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ProfileRepository {
	return &ProfileRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toProfile(p db.Profile) (*domain.Profile, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, fmt.Errorf("profile id %q: %w", p.ID, err)
	}
	return &domain.Profile{
		ID:        id,
		Username:  p.Username,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (r *ProfileRepository) Create(ctx context.Context, username, email, passwordHash string) (*domain.Profile, error) {
	id := uuid.New()
	err := r.queries.CreateProfile(ctx, db.CreateProfileParams{
		ID:           id.String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		r.logger.Debug().Err(err).Str("email", email).Msg("failed to create profile")
		return nil, storeErr("create profile", err)
	}
	return r.Get(ctx, id)
}

func (r *ProfileRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, err := r.queries.GetProfile(ctx, id.String())
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	return toProfile(p)
}

// GetByEmail also returns the stored password hash for credential checks.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, string, error) {
	p, err := r.queries.GetProfileByEmail(ctx, email)
	if err != nil {
		return nil, "", storeErr("get profile by email", err)
	}
	profile, err := toProfile(p)
	if err != nil {
		return nil, "", err
	}
	return profile, p.PasswordHash, nil
}
