package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-draft/internal/db"
	"team-draft/internal/domain"
	"team-draft/internal/draft"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toPlayer(p db.Player) domain.Player {
	owner, err := uuid.Parse(p.OwnerID)
	if err != nil {
		owner = uuid.Nil
	}
	return domain.Player{
		ID:            p.PlayerID,
		OwnerID:       owner,
		Name:          p.Name,
		LolID:         p.LolID,
		MainLane:      draft.Lane(p.MainLane),
		SubLane:       draft.Lane(p.SubLane),
		Score:         int(p.Score),
		WinLossStreak: int(p.WinLossStreak),
		CreatedAt:     p.CreatedAt,
	}
}

func toPlayers(rows []db.Player) []domain.Player {
	players := make([]domain.Player, 0, len(rows))
	for _, p := range rows {
		players = append(players, toPlayer(p))
	}
	return players
}

func (r *PlayerRepository) Create(ctx context.Context, p domain.Player) (*domain.Player, error) {
	id, err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
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
	return r.Get(ctx, id)
}

func (r *PlayerRepository) Get(ctx context.Context, id int64) (*domain.Player, error) {
	p, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("get player %d", id), err)
	}
	player := toPlayer(p)
	return &player, nil
}

func (r *PlayerRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayersByOwner(ctx, owner.String())
	if err != nil {
		return nil, storeErr("list players", err)
	}
	return toPlayers(rows), nil
}

// ListByIDs returns the players that exist among ids, ordered by id. Missing
// ids are simply absent from the result.
func (r *PlayerRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayersByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr("list players by id", err)
	}
	return toPlayers(rows), nil
}

func (r *PlayerRepository) Update(ctx context.Context, p domain.Player) error {
	n, err := r.queries.UpdatePlayer(ctx, db.UpdatePlayerParams{
		Name:     p.Name,
		LolID:    p.LolID,
		MainLane: string(p.MainLane),
		SubLane:  string(p.SubLane),
		Score:    int64(p.Score),
		PlayerID: p.ID,
	})
	if err != nil {
		return storeErr("update player", err)
	}
	if n == 0 {
		return fmt.Errorf("update player %d: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the player and its pool memberships. Players that appear in
// a game record are kept so the record stays readable.
func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	games, err := qtx.CountPlayerGameRecords(ctx, id)
	if err != nil {
		return storeErr("count player games", err)
	}
	if games > 0 {
		r.logger.Debug().Int64("player_id", id).Int64("games", games).Msg("player has game records, refusing delete")
		return fmt.Errorf("player %d is in %d game records: %w", id, games, domain.ErrFailedPrecondition)
	}
	if err := qtx.DeletePlayer(ctx, id); err != nil {
		return storeErr("delete player", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
