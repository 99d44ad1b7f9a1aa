package db

import (
	"context"
)

const gameRecordColumns = `game_id, user_id, team1_won, team1_kills, team2_kills, team1_gold, team2_gold, is_applied, created_at`

func scanGameRecord(row interface{ Scan(...interface{}) error }) (GameRecord, error) {
	var i GameRecord
	err := row.Scan(
		&i.GameID,
		&i.UserID,
		&i.Team1Won,
		&i.Team1Kills,
		&i.Team2Kills,
		&i.Team1Gold,
		&i.Team2Gold,
		&i.IsApplied,
		&i.CreatedAt,
	)
	return i, err
}

const createGameRecord = `-- name: CreateGameRecord :execlastid
INSERT INTO game_records (user_id, team1_won, team1_kills, team2_kills, team1_gold, team2_gold)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateGameRecordParams struct {
	UserID     string
	Team1Won   bool
	Team1Kills int64
	Team2Kills int64
	Team1Gold  int64
	Team2Gold  int64
}

func (q *Queries) CreateGameRecord(ctx context.Context, arg CreateGameRecordParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createGameRecord,
		arg.UserID,
		arg.Team1Won,
		arg.Team1Kills,
		arg.Team2Kills,
		arg.Team1Gold,
		arg.Team2Gold,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getGameRecord = `-- name: GetGameRecord :one
SELECT ` + gameRecordColumns + ` FROM game_records
WHERE game_id = ?
`

func (q *Queries) GetGameRecord(ctx context.Context, gameID int64) (GameRecord, error) {
	return scanGameRecord(q.db.QueryRowContext(ctx, getGameRecord, gameID))
}

const listGameRecordsByUser = `-- name: ListGameRecordsByUser :many
SELECT ` + gameRecordColumns + ` FROM game_records
WHERE user_id = ?
ORDER BY created_at DESC, game_id DESC
`

func (q *Queries) ListGameRecordsByUser(ctx context.Context, userID string) ([]GameRecord, error) {
	rows, err := q.db.QueryContext(ctx, listGameRecordsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GameRecord
	for rows.Next() {
		i, err := scanGameRecord(rows)
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

const updateGameRecord = `-- name: UpdateGameRecord :exec
UPDATE game_records
SET team1_won = ?, team1_kills = ?, team2_kills = ?, team1_gold = ?, team2_gold = ?, is_applied = FALSE
WHERE game_id = ?
`

type UpdateGameRecordParams struct {
	Team1Won   bool
	Team1Kills int64
	Team2Kills int64
	Team1Gold  int64
	Team2Gold  int64
	GameID     int64
}

func (q *Queries) UpdateGameRecord(ctx context.Context, arg UpdateGameRecordParams) error {
	_, err := q.db.ExecContext(ctx, updateGameRecord,
		arg.Team1Won,
		arg.Team1Kills,
		arg.Team2Kills,
		arg.Team1Gold,
		arg.Team2Gold,
		arg.GameID,
	)
	return err
}

const setGameRecordApplied = `-- name: SetGameRecordApplied :execrows
UPDATE game_records
SET is_applied = ?1
WHERE game_id = ?2 AND is_applied = NOT ?1
`

type SetGameRecordAppliedParams struct {
	IsApplied bool
	GameID    int64
}

// SetGameRecordApplied flips the applied flag and reports 0 rows when the
// record was already in the requested state.
func (q *Queries) SetGameRecordApplied(ctx context.Context, arg SetGameRecordAppliedParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setGameRecordApplied, arg.IsApplied, arg.GameID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteGameRecord = `-- name: DeleteGameRecord :exec
DELETE FROM game_records
WHERE game_id = ?
`

func (q *Queries) DeleteGameRecord(ctx context.Context, gameID int64) error {
	_, err := q.db.ExecContext(ctx, deleteGameRecord, gameID)
	return err
}

const createPlayerGameRecord = `-- name: CreatePlayerGameRecord :exec
INSERT INTO player_game_records (
    record_id, game_id, player_id, team_number, assigned_position, kills, deaths, assists, cs
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreatePlayerGameRecordParams struct {
	RecordID         string
	GameID           int64
	PlayerID         int64
	TeamNumber       int64
	AssignedPosition string
	Kills            int64
	Deaths           int64
	Assists          int64
	Cs               int64
}

func (q *Queries) CreatePlayerGameRecord(ctx context.Context, arg CreatePlayerGameRecordParams) error {
	_, err := q.db.ExecContext(ctx, createPlayerGameRecord,
		arg.RecordID,
		arg.GameID,
		arg.PlayerID,
		arg.TeamNumber,
		arg.AssignedPosition,
		arg.Kills,
		arg.Deaths,
		arg.Assists,
		arg.Cs,
	)
	return err
}

const listPlayerGameRecords = `-- name: ListPlayerGameRecords :many
SELECT record_id, game_id, player_id, team_number, assigned_position, kills, deaths, assists, cs,
       score_at_game, streak_at_game, applied_delta
FROM player_game_records
WHERE game_id = ?
ORDER BY team_number,
    CASE assigned_position
        WHEN 'TOP' THEN 1 WHEN 'JGL' THEN 2 WHEN 'MID' THEN 3 WHEN 'ADC' THEN 4 ELSE 5
    END
`

func (q *Queries) ListPlayerGameRecords(ctx context.Context, gameID int64) ([]PlayerGameRecord, error) {
	rows, err := q.db.QueryContext(ctx, listPlayerGameRecords, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PlayerGameRecord
	for rows.Next() {
		var i PlayerGameRecord
		if err := rows.Scan(
			&i.RecordID,
			&i.GameID,
			&i.PlayerID,
			&i.TeamNumber,
			&i.AssignedPosition,
			&i.Kills,
			&i.Deaths,
			&i.Assists,
			&i.Cs,
			&i.ScoreAtGame,
			&i.StreakAtGame,
			&i.AppliedDelta,
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

const deletePlayerGameRecords = `-- name: DeletePlayerGameRecords :exec
DELETE FROM player_game_records
WHERE game_id = ?
`

func (q *Queries) DeletePlayerGameRecords(ctx context.Context, gameID int64) error {
	_, err := q.db.ExecContext(ctx, deletePlayerGameRecords, gameID)
	return err
}

const setPlayerGameRecordResult = `-- name: SetPlayerGameRecordResult :exec
UPDATE player_game_records
SET score_at_game = ?, streak_at_game = ?, applied_delta = ?
WHERE record_id = ?
`

type SetPlayerGameRecordResultParams struct {
	ScoreAtGame  *int64
	StreakAtGame *int64
	AppliedDelta *int64
	RecordID     string
}

func (q *Queries) SetPlayerGameRecordResult(ctx context.Context, arg SetPlayerGameRecordResultParams) error {
	_, err := q.db.ExecContext(ctx, setPlayerGameRecordResult,
		arg.ScoreAtGame,
		arg.StreakAtGame,
		arg.AppliedDelta,
		arg.RecordID,
	)
	return err
}
