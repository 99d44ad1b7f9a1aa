package db

import (
	"context"
	"time"
)

const createPool = `-- name: CreatePool :execlastid
INSERT INTO pools (owner_id, name)
VALUES (?, ?)
`

type CreatePoolParams struct {
	OwnerID string
	Name    string
}

func (q *Queries) CreatePool(ctx context.Context, arg CreatePoolParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createPool, arg.OwnerID, arg.Name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getPool = `-- name: GetPool :one
SELECT pool_id, owner_id, name, created_at FROM pools
WHERE pool_id = ?
`

func (q *Queries) GetPool(ctx context.Context, poolID int64) (Pool, error) {
	row := q.db.QueryRowContext(ctx, getPool, poolID)
	var i Pool
	err := row.Scan(
		&i.PoolID,
		&i.OwnerID,
		&i.Name,
		&i.CreatedAt,
	)
	return i, err
}

const listPoolsForProfile = `-- name: ListPoolsForProfile :many
SELECT p.pool_id, p.owner_id, p.name, p.created_at FROM pools p
WHERE p.owner_id = ?1
   OR EXISTS (SELECT 1 FROM pool_members m WHERE m.pool_id = p.pool_id AND m.profile_id = ?1)
ORDER BY p.created_at DESC, p.pool_id DESC
`

func (q *Queries) ListPoolsForProfile(ctx context.Context, profileID string) ([]Pool, error) {
	rows, err := q.db.QueryContext(ctx, listPoolsForProfile, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Pool
	for rows.Next() {
		var i Pool
		if err := rows.Scan(
			&i.PoolID,
			&i.OwnerID,
			&i.Name,
			&i.CreatedAt,
		); err != nil {
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

const deletePool = `-- name: DeletePool :exec
DELETE FROM pools
WHERE pool_id = ?
`

func (q *Queries) DeletePool(ctx context.Context, poolID int64) error {
	_, err := q.db.ExecContext(ctx, deletePool, poolID)
	return err
}

const addPoolPlayer = `-- name: AddPoolPlayer :exec
INSERT OR IGNORE INTO pool_players (pool_id, player_id)
VALUES (?, ?)
`

type AddPoolPlayerParams struct {
	PoolID   int64
	PlayerID int64
}

func (q *Queries) AddPoolPlayer(ctx context.Context, arg AddPoolPlayerParams) error {
	_, err := q.db.ExecContext(ctx, addPoolPlayer, arg.PoolID, arg.PlayerID)
	return err
}

const listPoolPlayers = `-- name: ListPoolPlayers :many
SELECT pl.player_id, pl.owner_id, pl.name, pl.lol_id, pl.main_lane, pl.sub_lane, pl.score, pl.win_loss_streak, pl.created_at
FROM players pl
JOIN pool_players pp ON pp.player_id = pl.player_id
WHERE pp.pool_id = ?
ORDER BY pl.player_id
`

func (q *Queries) ListPoolPlayers(ctx context.Context, poolID int64) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPoolPlayers, poolID)
	if err != nil {
		return nil, err
	}
	return scanPlayers(rows)
}

const isPoolPlayer = `-- name: IsPoolPlayer :one
SELECT EXISTS (SELECT 1 FROM pool_players WHERE pool_id = ? AND player_id = ?)
`

type IsPoolPlayerParams struct {
	PoolID   int64
	PlayerID int64
}

func (q *Queries) IsPoolPlayer(ctx context.Context, arg IsPoolPlayerParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, isPoolPlayer, arg.PoolID, arg.PlayerID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const poolHasLolID = `-- name: PoolHasLolID :one
SELECT EXISTS (
    SELECT 1 FROM pool_players pp
    JOIN players pl ON pl.player_id = pp.player_id
    WHERE pp.pool_id = ? AND pl.lol_id = ? AND pl.player_id != ?
)
`

type PoolHasLolIDParams struct {
	PoolID       int64
	LolID        string
	ExceptPlayer int64
}

func (q *Queries) PoolHasLolID(ctx context.Context, arg PoolHasLolIDParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, poolHasLolID, arg.PoolID, arg.LolID, arg.ExceptPlayer)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const addPoolMember = `-- name: AddPoolMember :exec
INSERT INTO pool_members (pool_id, profile_id)
VALUES (?, ?)
`

type AddPoolMemberParams struct {
	PoolID    int64
	ProfileID string
}

func (q *Queries) AddPoolMember(ctx context.Context, arg AddPoolMemberParams) error {
	_, err := q.db.ExecContext(ctx, addPoolMember, arg.PoolID, arg.ProfileID)
	return err
}

const isPoolMember = `-- name: IsPoolMember :one
SELECT EXISTS (SELECT 1 FROM pool_members WHERE pool_id = ? AND profile_id = ?)
`

type IsPoolMemberParams struct {
	PoolID    int64
	ProfileID string
}

func (q *Queries) IsPoolMember(ctx context.Context, arg IsPoolMemberParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, isPoolMember, arg.PoolID, arg.ProfileID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listPoolMembers = `-- name: ListPoolMembers :many
SELECT m.profile_id, pr.username, m.joined_at
FROM pool_members m
JOIN profiles pr ON pr.id = m.profile_id
WHERE m.pool_id = ?
ORDER BY m.joined_at, pr.username
`

type ListPoolMembersRow struct {
	ProfileID string
	Username  string
	JoinedAt  time.Time
}

func (q *Queries) ListPoolMembers(ctx context.Context, poolID int64) ([]ListPoolMembersRow, error) {
	rows, err := q.db.QueryContext(ctx, listPoolMembers, poolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListPoolMembersRow
	for rows.Next() {
		var i ListPoolMembersRow
		if err := rows.Scan(&i.ProfileID, &i.Username, &i.JoinedAt); err != nil {
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
