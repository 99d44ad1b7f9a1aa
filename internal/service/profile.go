package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"team-draft/internal/auth"
	"team-draft/internal/constants"
	"team-draft/internal/domain"
	"team-draft/internal/repository"
)

type ProfileService struct {
	repo   *repository.ProfileRepository
	tokens *auth.Tokens
	logger zerolog.Logger
}

func NewProfileService(repo *repository.ProfileRepository, tokens *auth.Tokens, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, tokens: tokens, logger: logger}
}

func (s *ProfileService) Register(ctx context.Context, in domain.RegisterInput) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.Create(ctx, in.Username, in.Email, hash)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Info().Str("email", in.Email).Msg("email already registered")
			return nil, fmt.Errorf("email %s is already registered: %w", in.Email, domain.ErrConflict)
		}
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create profile")
		return nil, err
	}

	s.logger.Info().Str("profile_id", profile.ID.String()).Msg("profile registered")
	return profile, nil
}

// Login checks the credentials and returns a signed session token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *ProfileService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	email = domain.NormalizeEmail(email)
	profile, hash, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debug().Str("email", email).Msg("login for unknown email")
		return "", nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthenticated)
	}
	if err != nil {
		return "", nil, err
	}
	if err := auth.CheckPassword(hash, password); err != nil {
		s.logger.Debug().Str("profile_id", profile.ID.String()).Msg("login with wrong password")
		return "", nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(profile.ID)
	if err != nil {
		return "", nil, err
	}
	s.logger.Info().Str("profile_id", profile.ID.String()).Msg("profile logged in")
	return token, profile, nil
}
