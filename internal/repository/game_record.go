package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"team-draft/internal/db"
	"team-draft/internal/domain"
	"team-draft/internal/draft"
)

type GameRecordRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewGameRecordRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *GameRecordRepository {
	return &GameRecordRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toGameRecord(g db.GameRecord) domain.GameRecord {
	user, err := uuid.Parse(g.UserID)
	if err != nil {
		user = uuid.Nil
	}
	return domain.GameRecord{
		ID:         g.GameID,
		UserID:     user,
		Team1Won:   g.Team1Won,
		Team1Kills: int(g.Team1Kills),
		Team2Kills: int(g.Team2Kills),
		Team1Gold:  int(g.Team1Gold),
		Team2Gold:  int(g.Team2Gold),
		Applied:    g.IsApplied,
		CreatedAt:  g.CreatedAt,
	}
}

func toPlayerLine(l db.PlayerGameRecord) domain.PlayerLine {
	return domain.PlayerLine{
		RecordID:     l.RecordID,
		PlayerID:     l.PlayerID,
		Team:         int(l.TeamNumber),
		Lane:         draft.Lane(l.AssignedPosition),
		Kills:        int(l.Kills),
		Deaths:       int(l.Deaths),
		Assists:      int(l.Assists),
		CS:           int(l.Cs),
		ScoreAtGame:  intPtr(l.ScoreAtGame),
		StreakAtGame: intPtr(l.StreakAtGame),
		AppliedDelta: intPtr(l.AppliedDelta),
	}
}

func insertLines(ctx context.Context, qtx *db.Queries, gameID int64, lines []domain.PlayerLine) error {
	for _, l := range lines {
		recordID, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate record id: %w", err)
		}
		err = qtx.CreatePlayerGameRecord(ctx, db.CreatePlayerGameRecordParams{
			RecordID:         recordID,
			GameID:           gameID,
			PlayerID:         l.PlayerID,
			TeamNumber:       int64(l.Team),
			AssignedPosition: string(l.Lane),
			Kills:            int64(l.Kills),
			Deaths:           int64(l.Deaths),
			Assists:          int64(l.Assists),
			Cs:               int64(l.CS),
		})
		if err != nil {
			return storeErr(fmt.Sprintf("insert line for player %d", l.PlayerID), err)
		}
	}
	return nil
}

// writeScores stores each change on the player and on the line that produced it.
func writeScores(ctx context.Context, qtx *db.Queries, changes []domain.ScoreChange) error {
	for _, c := range changes {
		err := qtx.UpdatePlayerScore(ctx, db.UpdatePlayerScoreParams{
			Score:         int64(c.NewScore),
			WinLossStreak: int64(c.NewStreak),
			PlayerID:      c.PlayerID,
		})
		if err != nil {
			return storeErr(fmt.Sprintf("update score of player %d", c.PlayerID), err)
		}
		err = qtx.SetPlayerGameRecordResult(ctx, db.SetPlayerGameRecordResultParams{
			ScoreAtGame:  int64Ptr(c.ScoreAtGame),
			StreakAtGame: int64Ptr(c.StreakAtGame),
			AppliedDelta: int64Ptr(c.Delta),
			RecordID:     c.RecordID,
		})
		if err != nil {
			return storeErr(fmt.Sprintf("update line %s", c.RecordID), err)
		}
	}
	return nil
}

func (r *GameRecordRepository) Create(ctx context.Context, rec domain.GameRecord) (*domain.GameRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	gameID, err := qtx.CreateGameRecord(ctx, db.CreateGameRecordParams{
		UserID:     rec.UserID.String(),
		Team1Won:   rec.Team1Won,
		Team1Kills: int64(rec.Team1Kills),
		Team2Kills: int64(rec.Team2Kills),
		Team1Gold:  int64(rec.Team1Gold),
		Team2Gold:  int64(rec.Team2Gold),
	})
	if err != nil {
		return nil, storeErr("create game record", err)
	}
	if err := insertLines(ctx, qtx, gameID, rec.Lines); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug().Int64("game_id", gameID).Int("lines", len(rec.Lines)).Msg("game record created")
	return r.Get(ctx, gameID)
}

func (r *GameRecordRepository) load(ctx context.Context, q *db.Queries, row db.GameRecord) (*domain.GameRecord, error) {
	rec := toGameRecord(row)
	lines, err := q.ListPlayerGameRecords(ctx, row.GameID)
	if err != nil {
		return nil, storeErr("list game lines", err)
	}
	rec.Lines = make([]domain.PlayerLine, 0, len(lines))
	for _, l := range lines {
		rec.Lines = append(rec.Lines, toPlayerLine(l))
	}
	return &rec, nil
}

func (r *GameRecordRepository) Get(ctx context.Context, id int64) (*domain.GameRecord, error) {
	row, err := r.queries.GetGameRecord(ctx, id)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("get game record %d", id), err)
	}
	return r.load(ctx, r.queries, row)
}

// ListByUser returns the user's games newest first, lines included.
func (r *GameRecordRepository) ListByUser(ctx context.Context, user uuid.UUID) ([]domain.GameRecord, error) {
	rows, err := r.queries.ListGameRecordsByUser(ctx, user.String())
	if err != nil {
		return nil, storeErr("list game records", err)
	}
	records := make([]domain.GameRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := r.load(ctx, r.queries, row)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// Replace overwrites the game's result and lines. reverse undoes the game's
// applied scores first; the record always ends up unapplied.
func (r *GameRecordRepository) Replace(ctx context.Context, rec domain.GameRecord, reverse []domain.ScoreChange) (*domain.GameRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := writeScores(ctx, qtx, reverse); err != nil {
		return nil, err
	}
	err = qtx.UpdateGameRecord(ctx, db.UpdateGameRecordParams{
		Team1Won:   rec.Team1Won,
		Team1Kills: int64(rec.Team1Kills),
		Team2Kills: int64(rec.Team2Kills),
		Team1Gold:  int64(rec.Team1Gold),
		Team2Gold:  int64(rec.Team2Gold),
		GameID:     rec.ID,
	})
	if err != nil {
		return nil, storeErr("update game record", err)
	}
	if err := qtx.DeletePlayerGameRecords(ctx, rec.ID); err != nil {
		return nil, storeErr("clear game lines", err)
	}
	if err := insertLines(ctx, qtx, rec.ID, rec.Lines); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug().Int64("game_id", rec.ID).Int("reversed", len(reverse)).Msg("game record replaced")
	return r.Get(ctx, rec.ID)
}

func (r *GameRecordRepository) setApplied(ctx context.Context, gameID int64, applied bool, changes []domain.ScoreChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	n, err := qtx.SetGameRecordApplied(ctx, db.SetGameRecordAppliedParams{IsApplied: applied, GameID: gameID})
	if err != nil {
		return storeErr("set game applied", err)
	}
	if n == 0 {
		if applied {
			return fmt.Errorf("game %d is already applied: %w", gameID, domain.ErrFailedPrecondition)
		}
		return fmt.Errorf("game %d is not applied: %w", gameID, domain.ErrFailedPrecondition)
	}
	if err := writeScores(ctx, qtx, changes); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Apply marks the game applied and writes the new scores. It fails with
// ErrFailedPrecondition if the game was applied already.
func (r *GameRecordRepository) Apply(ctx context.Context, gameID int64, changes []domain.ScoreChange) error {
	return r.setApplied(ctx, gameID, true, changes)
}

// Cancel is the inverse of Apply.
func (r *GameRecordRepository) Cancel(ctx context.Context, gameID int64, changes []domain.ScoreChange) error {
	return r.setApplied(ctx, gameID, false, changes)
}

func (r *GameRecordRepository) Delete(ctx context.Context, id int64) error {
	return storeErr("delete game record", r.queries.DeleteGameRecord(ctx, id))
}
