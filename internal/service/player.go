package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-draft/internal/constants"
	"team-draft/internal/domain"
	"team-draft/internal/repository"
)

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

func (s *PlayerService) Create(ctx context.Context, owner uuid.UUID, in domain.PlayerInput) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	main, sub, err := in.Validate()
	if err != nil {
		return nil, err
	}
	player, err := s.repo.Create(ctx, domain.Player{
		OwnerID:  owner,
		Name:     in.Name,
		LolID:    in.LolID,
		MainLane: main,
		SubLane:  sub,
		Score:    in.Score,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", owner.String()).Msg("failed to create player")
		return nil, err
	}

	s.logger.Info().
		Int64("player_id", player.ID).
		Str("main_lane", string(main)).
		Str("sub_lane", string(sub)).
		Int("score", player.Score).
		Msg("player created")
	return player, nil
}

func (s *PlayerService) List(ctx context.Context, owner uuid.UUID) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.ListByOwner(ctx, owner)
}

// Delete removes one of the caller's players. A player that already appears
// in a game record cannot be deleted.
func (s *PlayerService) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if player.OwnerID != owner {
		s.logger.Warn().Int64("player_id", id).Str("user_id", owner.String()).Msg("delete of foreign player refused")
		return fmt.Errorf("player %d belongs to another profile: %w", id, domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrFailedPrecondition) {
			s.logger.Error().Err(err).Int64("player_id", id).Msg("failed to delete player")
		}
		return err
	}

	s.logger.Info().Int64("player_id", id).Msg("player deleted")
	return nil
}
