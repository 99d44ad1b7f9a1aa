package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-draft/internal/config"
	"team-draft/internal/constants"
	"team-draft/internal/domain"
	"team-draft/internal/draft"
	"team-draft/internal/repository"
)

type TeamService struct {
	players *repository.PlayerRepository
	pools   *repository.PoolRepository
	cache   *combinationCache
	limit   int
	logger  zerolog.Logger
}

func NewTeamService(players *repository.PlayerRepository, pools *repository.PoolRepository, cfg *config.Config, logger zerolog.Logger) *TeamService {
	return &TeamService{
		players: players,
		pools:   pools,
		cache:   newCombinationCache(cfg.CombinationCacheTTL),
		limit:   cfg.CombinationLimit,
		logger:  logger,
	}
}

func (s *TeamService) Generate(ctx context.Context, user uuid.UUID, playerIDs []int64) (draft.Pairing, error) {
	return s.Reroll(ctx, user, playerIDs, 0)
}

// Reroll returns the combination at the 0-based index among the ranked
// pairings for these ten players. An out-of-range index yields the best one.
// Every player must be the caller's own or sit in a pool the caller can see.
func (s *TeamService) Reroll(ctx context.Context, user uuid.UUID, playerIDs []int64, index int) (draft.Pairing, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.GenerationTimeout)
	defer cancel()

	if len(playerIDs) != draft.PlayersPerGame {
		return draft.Pairing{}, fmt.Errorf("need %d players, got %d: %w", draft.PlayersPerGame, len(playerIDs), domain.ErrInvalidArgument)
	}
	seen := make(map[int64]bool, len(playerIDs))
	for _, id := range playerIDs {
		if seen[id] {
			return draft.Pairing{}, fmt.Errorf("player %d listed twice: %w", id, domain.ErrInvalidArgument)
		}
		seen[id] = true
	}

	found, err := s.players.ListByIDs(ctx, playerIDs)
	if err != nil {
		return draft.Pairing{}, err
	}
	if len(found) != len(playerIDs) {
		return draft.Pairing{}, fmt.Errorf("%d of %d players exist: %w", len(found), len(playerIDs), domain.ErrNotFound)
	}
	if err := s.visible(ctx, user, found); err != nil {
		return draft.Pairing{}, err
	}
	players := make([]draft.Player, 0, len(found))
	for _, p := range found {
		players = append(players, p.Draft())
	}

	combinations, hit, err := s.cache.Get(fingerprint(players), func() ([]draft.Pairing, error) {
		return draft.Combinations(players, s.limit)
	})
	if err != nil {
		if errors.Is(err, draft.ErrNeedTenPlayers) || errors.Is(err, draft.ErrDuplicatePlayer) {
			return draft.Pairing{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
		}
		s.logger.Error().Err(err).Msg("failed to generate combinations")
		return draft.Pairing{}, err
	}

	pairing, picked := draft.Pick(combinations, index)
	s.logger.Info().
		Bool("cache_hit", hit).
		Int("requested_index", index).
		Int("combination", pairing.CurrentCombination).
		Int("total", pairing.TotalCombinations).
		Int("score_difference", pairing.ScoreDifference()).
		Msg("teams generated")
	if picked != index {
		s.logger.Debug().Int("requested_index", index).Msg("combination index out of range, using first")
	}
	return pairing, nil
}

// visible refuses players that belong to another profile unless they are in
// a pool the user owns or has joined.
func (s *TeamService) visible(ctx context.Context, user uuid.UUID, players []domain.Player) error {
	var foreign []int64
	for _, p := range players {
		if p.OwnerID != user {
			foreign = append(foreign, p.ID)
		}
	}
	if len(foreign) == 0 {
		return nil
	}

	pools, err := s.pools.ListFor(ctx, user)
	if err != nil {
		return err
	}
	shared := make(map[int64]bool)
	for _, pool := range pools {
		members, err := s.pools.Players(ctx, pool.ID)
		if err != nil {
			return err
		}
		for _, p := range members {
			shared[p.ID] = true
		}
	}
	for _, id := range foreign {
		if !shared[id] {
			s.logger.Warn().Int64("player_id", id).Str("user_id", user.String()).Msg("team generation refused")
			return fmt.Errorf("player %d is not visible to this profile: %w", id, domain.ErrForbidden)
		}
	}
	return nil
}

// Swap exchanges two slots of a pairing the client already holds.
func (s *TeamService) Swap(p draft.Pairing, a, b draft.SlotRef) (draft.Pairing, error) {
	if err := p.Validate(); err != nil {
		return draft.Pairing{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	out, err := p.Swap(a, b)
	if err != nil {
		return draft.Pairing{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	s.logger.Debug().Str("from", a.String()).Str("to", b.String()).Int("score_difference", out.ScoreDifference()).Msg("players swapped")
	return out, nil
}
