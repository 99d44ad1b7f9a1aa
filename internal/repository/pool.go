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

type PoolRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPoolRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PoolRepository {
	return &PoolRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toPool(p db.Pool) domain.Pool {
	owner, err := uuid.Parse(p.OwnerID)
	if err != nil {
		owner = uuid.Nil
	}
	return domain.Pool{
		ID:        p.PoolID,
		OwnerID:   owner,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// Create inserts the pool and seeds it with playerIDs in one transaction.
func (r *PoolRepository) Create(ctx context.Context, owner uuid.UUID, name string, playerIDs []int64) (*domain.Pool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	id, err := qtx.CreatePool(ctx, db.CreatePoolParams{OwnerID: owner.String(), Name: name})
	if err != nil {
		return nil, storeErr("create pool", err)
	}
	for _, playerID := range playerIDs {
		if err := qtx.AddPoolPlayer(ctx, db.AddPoolPlayerParams{PoolID: id, PlayerID: playerID}); err != nil {
			return nil, storeErr(fmt.Sprintf("add player %d to pool", playerID), err)
		}
	}
	row, err := qtx.GetPool(ctx, id)
	if err != nil {
		return nil, storeErr("get pool", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug().Int64("pool_id", id).Int("players", len(playerIDs)).Msg("pool created")
	pool := toPool(row)
	return &pool, nil
}

func (r *PoolRepository) Get(ctx context.Context, id int64) (*domain.Pool, error) {
	row, err := r.queries.GetPool(ctx, id)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("get pool %d", id), err)
	}
	pool := toPool(row)
	return &pool, nil
}

// ListFor returns the pools a profile owns or has joined, newest first.
func (r *PoolRepository) ListFor(ctx context.Context, profile uuid.UUID) ([]domain.Pool, error) {
	rows, err := r.queries.ListPoolsForProfile(ctx, profile.String())
	if err != nil {
		return nil, storeErr("list pools", err)
	}
	pools := make([]domain.Pool, 0, len(rows))
	for _, p := range rows {
		pools = append(pools, toPool(p))
	}
	return pools, nil
}

func (r *PoolRepository) Delete(ctx context.Context, id int64) error {
	return storeErr("delete pool", r.queries.DeletePool(ctx, id))
}

func (r *PoolRepository) Players(ctx context.Context, poolID int64) ([]domain.Player, error) {
	rows, err := r.queries.ListPoolPlayers(ctx, poolID)
	if err != nil {
		return nil, storeErr("list pool players", err)
	}
	return toPlayers(rows), nil
}

func (r *PoolRepository) Members(ctx context.Context, poolID int64) ([]domain.PoolMember, error) {
	rows, err := r.queries.ListPoolMembers(ctx, poolID)
	if err != nil {
		return nil, storeErr("list pool members", err)
	}
	members := make([]domain.PoolMember, 0, len(rows))
	for _, m := range rows {
		id, err := uuid.Parse(m.ProfileID)
		if err != nil {
			return nil, fmt.Errorf("member id %q: %w", m.ProfileID, err)
		}
		members = append(members, domain.PoolMember{ProfileID: id, Username: m.Username, JoinedAt: m.JoinedAt})
	}
	return members, nil
}

func (r *PoolRepository) IsMember(ctx context.Context, poolID int64, profile uuid.UUID) (bool, error) {
	ok, err := r.queries.IsPoolMember(ctx, db.IsPoolMemberParams{PoolID: poolID, ProfileID: profile.String()})
	return ok, storeErr("check pool member", err)
}

func (r *PoolRepository) AddMember(ctx context.Context, poolID int64, profile uuid.UUID) error {
	return storeErr("join pool", r.queries.AddPoolMember(ctx, db.AddPoolMemberParams{PoolID: poolID, ProfileID: profile.String()}))
}

func (r *PoolRepository) HasPlayer(ctx context.Context, poolID, playerID int64) (bool, error) {
	ok, err := r.queries.IsPoolPlayer(ctx, db.IsPoolPlayerParams{PoolID: poolID, PlayerID: playerID})
	return ok, storeErr("check pool player", err)
}

// HasLolID reports whether a player other than except already uses lolID in the pool.
func (r *PoolRepository) HasLolID(ctx context.Context, poolID int64, lolID string, except int64) (bool, error) {
	ok, err := r.queries.PoolHasLolID(ctx, db.PoolHasLolIDParams{PoolID: poolID, LolID: lolID, ExceptPlayer: except})
	return ok, storeErr("check pool lol id", err)
}

// AddNewPlayer creates a player and puts it in the pool atomically.
func (r *PoolRepository) AddNewPlayer(ctx context.Context, poolID int64, p domain.Player) (*domain.Player, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	id, err := qtx.CreatePlayer(ctx, db.CreatePlayerParams{
		OwnerID:  p.OwnerID.String(),
		Name:     p.Name,
		LolID:    p.LolID,
		MainLane: string(p.MainLane),
		SubLane:  string(p.SubLane),
		Score:    int64(p.Score),
	})
	if err != nil {
		return nil, storeErr("create player", err)
	}
	if err := qtx.AddPoolPlayer(ctx, db.AddPoolPlayerParams{PoolID: poolID, PlayerID: id}); err != nil {
		return nil, storeErr("add pool player", err)
	}
	row, err := qtx.GetPlayer(ctx, id)
	if err != nil {
		return nil, storeErr("get player", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	player := toPlayer(row)
	return &player, nil
}
