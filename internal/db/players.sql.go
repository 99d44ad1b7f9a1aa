package db

import (
	"context"
	"database/sql"
)

const playerColumns = `player_id, owner_id, name, lol_id, main_lane, sub_lane, score, win_loss_streak, created_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (Player, error) {
	var i Player
	err := row.Scan(
		&i.PlayerID,
		&i.OwnerID,
		&i.Name,
		&i.LolID,
		&i.MainLane,
		&i.SubLane,
		&i.Score,
		&i.WinLossStreak,
		&i.CreatedAt,
	)
	return i, err
}

func scanPlayers(rows *sql.Rows) ([]Player, error) {
	defer rows.Close()
	var items []Player
	for rows.Next() {
		i, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createPlayer = `-- name: CreatePlayer :execlastid
INSERT INTO players (owner_id, name, lol_id, main_lane, sub_lane, score)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreatePlayerParams struct {
	OwnerID  string
	Name     string
	LolID    string
	MainLane string
	SubLane  string
	Score    int64
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createPlayer,
		arg.OwnerID,
		arg.Name,
		arg.LolID,
		arg.MainLane,
		arg.SubLane,
		arg.Score,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getPlayer = `-- name: GetPlayer :one
SELECT ` + playerColumns + ` FROM players
WHERE player_id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, playerID int64) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayer, playerID))
}

const listPlayersByOwner = `-- name: ListPlayersByOwner :many
SELECT ` + playerColumns + ` FROM players
WHERE owner_id = ?
ORDER BY player_id
`

func (q *Queries) ListPlayersByOwner(ctx context.Context, ownerID string) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayersByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	return scanPlayers(rows)
}

const listPlayersByIDs = `-- name: ListPlayersByIDs :many
SELECT ` + playerColumns + ` FROM players
WHERE player_id IN (/*SLICE:ids*/?)
ORDER BY player_id
`

func (q *Queries) ListPlayersByIDs(ctx context.Context, ids []int64) ([]Player, error) {
	query, args := expandIDs(listPlayersByIDs, ids)
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPlayers(rows)
}

const updatePlayer = `-- name: UpdatePlayer :execrows
UPDATE players
SET name = ?, lol_id = ?, main_lane = ?, sub_lane = ?, score = ?
WHERE player_id = ?
`

type UpdatePlayerParams struct {
	Name     string
	LolID    string
	MainLane string
	SubLane  string
	Score    int64
	PlayerID int64
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePlayer,
		arg.Name,
		arg.LolID,
		arg.MainLane,
		arg.SubLane,
		arg.Score,
		arg.PlayerID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updatePlayerScore = `-- name: UpdatePlayerScore :exec
UPDATE players
SET score = ?, win_loss_streak = ?
WHERE player_id = ?
`

type UpdatePlayerScoreParams struct {
	Score         int64
	WinLossStreak int64
	PlayerID      int64
}

func (q *Queries) UpdatePlayerScore(ctx context.Context, arg UpdatePlayerScoreParams) error {
	_, err := q.db.ExecContext(ctx, updatePlayerScore, arg.Score, arg.WinLossStreak, arg.PlayerID)
	return err
}

const deletePlayer = `-- name: DeletePlayer :exec
DELETE FROM players
WHERE player_id = ?
`

func (q *Queries) DeletePlayer(ctx context.Context, playerID int64) error {
	_, err := q.db.ExecContext(ctx, deletePlayer, playerID)
	return err
}

const countPlayerGameRecords = `-- name: CountPlayerGameRecords :one
SELECT COUNT(*) FROM player_game_records
WHERE player_id = ?
`

func (q *Queries) CountPlayerGameRecords(ctx context.Context, playerID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPlayerGameRecords, playerID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
