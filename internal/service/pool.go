package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"team-draft/internal/constants"
	"team-draft/internal/domain"
	"team-draft/internal/repository"
)

const poolLoadConcurrency = 4

type PoolService struct {
	pools   *repository.PoolRepository
	players *repository.PlayerRepository
	logger  zerolog.Logger
}

func NewPoolService(pools *repository.PoolRepository, players *repository.PlayerRepository, logger zerolog.Logger) *PoolService {
	return &PoolService{pools: pools, players: players, logger: logger}
}

func (s *PoolService) Create(ctx context.Context, owner uuid.UUID, in domain.PoolInput) (*domain.PoolDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if len(in.PlayerIDs) > 0 {
		found, err := s.players.ListByIDs(ctx, in.PlayerIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(in.PlayerIDs) {
			return nil, fmt.Errorf("%d of %d players exist: %w", len(found), len(in.PlayerIDs), domain.ErrNotFound)
		}
	}

	pool, err := s.pools.Create(ctx, owner, in.Name, in.PlayerIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", owner.String()).Msg("failed to create pool")
		return nil, err
	}
	s.logger.Info().Int64("pool_id", pool.ID).Int("players", len(in.PlayerIDs)).Msg("pool created")
	return s.detail(ctx, *pool)
}

// List returns every pool the user owns or has joined, each with its players.
func (s *PoolService) List(ctx context.Context, user uuid.UUID) ([]domain.PoolDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	pools, err := s.pools.ListFor(ctx, user)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PoolDetail, len(pools))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(poolLoadConcurrency)
	for i, p := range pools {
		i, p := i, p
		g.Go(func() error {
			players, err := s.pools.Players(gCtx, p.ID)
			if err != nil {
				return err
			}
			out[i] = domain.PoolDetail{Pool: p, Players: players}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.String()).Msg("failed to load pools")
		return nil, fmt.Errorf("failed to load pools: %w", err)
	}
	return out, nil
}

func (s *PoolService) Get(ctx context.Context, user uuid.UUID, id int64) (*domain.PoolDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	pool, err := s.accessible(ctx, user, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *pool)
}

func (s *PoolService) detail(ctx context.Context, pool domain.Pool) (*domain.PoolDetail, error) {
	out := &domain.PoolDetail{Pool: pool}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Players, err = s.pools.Players(gCtx, pool.ID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Members, err = s.pools.Members(gCtx, pool.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("pool_id", pool.ID).Msg("failed to load pool detail")
		return nil, fmt.Errorf("failed to load pool %d: %w", pool.ID, err)
	}
	return out, nil
}

// accessible loads the pool and checks that user owns it or is a member.
func (s *PoolService) accessible(ctx context.Context, user uuid.UUID, id int64) (*domain.Pool, error) {
	pool, err := s.pools.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pool.OwnerID == user {
		return pool, nil
	}
	member, err := s.pools.IsMember(ctx, id, user)
	if err != nil {
		return nil, err
	}
	if !member {
		s.logger.Warn().Int64("pool_id", id).Str("user_id", user.String()).Msg("pool access refused")
		return nil, fmt.Errorf("pool %d: %w", id, domain.ErrForbidden)
	}
	return pool, nil
}

func (s *PoolService) owned(ctx context.Context, user uuid.UUID, id int64) (*domain.Pool, error) {
	pool, err := s.pools.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pool.OwnerID != user {
		s.logger.Warn().Int64("pool_id", id).Str("user_id", user.String()).Msg("owner-only pool operation refused")
		return nil, fmt.Errorf("only the owner may change pool %d: %w", id, domain.ErrForbidden)
	}
	return pool, nil
}

// AddPlayer creates a new player owned by the caller directly inside the pool.
func (s *PoolService) AddPlayer(ctx context.Context, user uuid.UUID, poolID int64, in domain.PlayerInput) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	main, sub, err := in.Validate()
	if err != nil {
		return nil, err
	}
	if _, err := s.accessible(ctx, user, poolID); err != nil {
		return nil, err
	}
	dup, err := s.pools.HasLolID(ctx, poolID, in.LolID, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, fmt.Errorf("lol id %q is already in pool %d: %w", in.LolID, poolID, domain.ErrConflict)
	}

	player, err := s.pools.AddNewPlayer(ctx, poolID, domain.Player{
		OwnerID:  user,
		Name:     in.Name,
		LolID:    in.LolID,
		MainLane: main,
		SubLane:  sub,
		Score:    in.Score,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("pool_id", poolID).Msg("failed to add pool player")
		return nil, err
	}
	s.logger.Info().Int64("pool_id", poolID).Int64("player_id", player.ID).Msg("player added to pool")
	return player, nil
}

func (s *PoolService) UpdatePlayer(ctx context.Context, user uuid.UUID, poolID, playerID int64, in domain.PlayerInput) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	main, sub, err := in.Validate()
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, user, poolID); err != nil {
		return nil, err
	}
	inPool, err := s.pools.HasPlayer(ctx, poolID, playerID)
	if err != nil {
		return nil, err
	}
	if !inPool {
		return nil, fmt.Errorf("player %d is not in pool %d: %w", playerID, poolID, domain.ErrNotFound)
	}
	dup, err := s.pools.HasLolID(ctx, poolID, in.LolID, playerID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, fmt.Errorf("lol id %q is already in pool %d: %w", in.LolID, poolID, domain.ErrConflict)
	}

	player, err := s.players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	player.Name = in.Name
	player.LolID = in.LolID
	player.MainLane = main
	player.SubLane = sub
	player.Score = in.Score
	if err := s.players.Update(ctx, *player); err != nil {
		s.logger.Error().Err(err).Int64("player_id", playerID).Msg("failed to update player")
		return nil, err
	}

	s.logger.Info().Int64("pool_id", poolID).Int64("player_id", playerID).Int("score", in.Score).Msg("pool player updated")
	return player, nil
}

// Join adds the user as a member. Both the id and the exact name must match,
// so a pool id alone is not enough to get in.
func (s *PoolService) Join(ctx context.Context, user uuid.UUID, poolID int64, name string) (*domain.PoolDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	pool, err := s.pools.Get(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.Name != name {
		s.logger.Debug().Int64("pool_id", poolID).Msg("join with wrong pool name")
		return nil, fmt.Errorf("pool %d named %q: %w", poolID, name, domain.ErrNotFound)
	}
	if pool.OwnerID == user {
		return nil, fmt.Errorf("already the owner of pool %d: %w", poolID, domain.ErrConflict)
	}
	if err := s.pools.AddMember(ctx, poolID, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("already a member of pool %d: %w", poolID, domain.ErrConflict)
		}
		return nil, err
	}

	s.logger.Info().Int64("pool_id", poolID).Str("user_id", user.String()).Msg("joined pool")
	return s.detail(ctx, *pool)
}

func (s *PoolService) Delete(ctx context.Context, user uuid.UUID, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.owned(ctx, user, id); err != nil {
		return err
	}
	if err := s.pools.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("pool_id", id).Msg("failed to delete pool")
		return err
	}
	s.logger.Info().Int64("pool_id", id).Msg("pool deleted")
	return nil
}

// Ranking orders the pool's players by score, highest first, ties by name,
// and summarises the score distribution.
func (s *PoolService) Ranking(ctx context.Context, user uuid.UUID, id int64) (*domain.PoolRanking, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	pool, err := s.accessible(ctx, user, id)
	if err != nil {
		return nil, err
	}
	players, err := s.pools.Players(ctx, id)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Name < players[j].Name
	})

	ranking := &domain.PoolRanking{Pool: *pool, Players: players}
	if len(players) == 0 {
		return ranking, nil
	}
	scores := make(stats.Float64Data, 0, len(players))
	for _, p := range players {
		scores = append(scores, float64(p.Score))
	}
	if ranking.MeanScore, err = scores.Mean(); err != nil {
		return nil, fmt.Errorf("mean score: %w", err)
	}
	if ranking.MedianScore, err = scores.Median(); err != nil {
		return nil, fmt.Errorf("median score: %w", err)
	}
	if ranking.StandardDeviation, err = scores.StandardDeviation(); err != nil {
		return nil, fmt.Errorf("score deviation: %w", err)
	}
	return ranking, nil
}
