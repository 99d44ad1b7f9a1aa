package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-draft/internal/constants"
	"team-draft/internal/domain"
	"team-draft/internal/repository"
	"team-draft/internal/scoring"
)

type GameRecordService struct {
	games   *repository.GameRecordRepository
	players *repository.PlayerRepository
	model   scoring.Model
	logger  zerolog.Logger

	// scoreMu serialises every read-modify-write of player scores.
	scoreMu sync.Mutex
}

func NewGameRecordService(games *repository.GameRecordRepository, players *repository.PlayerRepository, model scoring.Model, logger zerolog.Logger) *GameRecordService {
	return &GameRecordService{games: games, players: players, model: model, logger: logger}
}

func (s *GameRecordService) Create(ctx context.Context, user uuid.UUID, in domain.GameRecordInput) (*domain.GameRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	lines, err := in.Validate()
	if err != nil {
		return nil, err
	}
	if _, err := s.loadPlayers(ctx, lines); err != nil {
		return nil, err
	}

	rec, err := s.games.Create(ctx, domain.GameRecord{
		UserID:     user,
		Team1Won:   in.Team1Won,
		Team1Kills: in.Team1Kills,
		Team2Kills: in.Team2Kills,
		Team1Gold:  in.Team1Gold,
		Team2Gold:  in.Team2Gold,
		Lines:      lines,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.String()).Msg("failed to create game record")
		return nil, err
	}
	s.logger.Info().Int64("game_id", rec.ID).Bool("team1_won", rec.Team1Won).Msg("game record created")
	return rec, nil
}

func (s *GameRecordService) List(ctx context.Context, user uuid.UUID) ([]domain.GameRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.games.ListByUser(ctx, user)
}

// Get returns the record with each line's score outcome under the configured
// model. Applied games are evaluated from the scores stored when they were
// applied, so the figures match what was written.
func (s *GameRecordService) Get(ctx context.Context, user uuid.UUID, id int64) (*domain.GameRecordDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rec, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	players, err := s.loadPlayers(ctx, rec.Lines)
	if err != nil {
		return nil, err
	}

	results := s.model.Evaluate(toScoringGame(rec, players))
	detail := &domain.GameRecordDetail{GameRecord: *rec, Model: s.model.Name()}
	for i, l := range rec.Lines {
		r := results[i]
		detail.Results = append(detail.Results, domain.LineResult{
			PlayerLine:  l,
			PlayerName:  players[l.PlayerID].Name,
			BeforeScore: r.Before,
			AfterScore:  r.After,
			ScoreChange: r.Change,
			StreakBonus: r.StreakBonus,
		})
	}
	return detail, nil
}

// Update replaces the game's result and lines. An applied game is reverted
// first and comes back unapplied.
func (s *GameRecordService) Update(ctx context.Context, user uuid.UUID, id int64, in domain.GameRecordInput) (*domain.GameRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	lines, err := in.Validate()
	if err != nil {
		return nil, err
	}
	if _, err := s.loadPlayers(ctx, lines); err != nil {
		return nil, err
	}

	s.scoreMu.Lock()
	defer s.scoreMu.Unlock()

	rec, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	var reverse []domain.ScoreChange
	if rec.Applied {
		players, err := s.loadPlayers(ctx, rec.Lines)
		if err != nil {
			return nil, err
		}
		reverse = reversal(rec, players)
	}

	updated, err := s.games.Replace(ctx, domain.GameRecord{
		ID:         id,
		UserID:     user,
		Team1Won:   in.Team1Won,
		Team1Kills: in.Team1Kills,
		Team2Kills: in.Team2Kills,
		Team1Gold:  in.Team1Gold,
		Team2Gold:  in.Team2Gold,
		Lines:      lines,
	}, reverse)
	if err != nil {
		s.logger.Error().Err(err).Int64("game_id", id).Msg("failed to update game record")
		return nil, err
	}
	s.logger.Info().Int64("game_id", id).Bool("was_applied", rec.Applied).Msg("game record updated")
	return updated, nil
}

// Apply writes the game's score changes to its players. All lines are
// evaluated against the scores the players had before this game.
func (s *GameRecordService) Apply(ctx context.Context, user uuid.UUID, id int64) (*domain.GameRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.scoreMu.Lock()
	defer s.scoreMu.Unlock()

	rec, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if rec.Applied {
		return nil, fmt.Errorf("game %d is already applied: %w", id, domain.ErrFailedPrecondition)
	}
	players, err := s.loadPlayers(ctx, rec.Lines)
	if err != nil {
		return nil, err
	}

	results := s.model.Evaluate(toScoringGame(rec, players))
	changes := make([]domain.ScoreChange, 0, len(results))
	for i, r := range results {
		l := rec.Lines[i]
		before, streak, delta := r.Before, players[l.PlayerID].WinLossStreak, r.After-r.Before
		changes = append(changes, domain.ScoreChange{
			RecordID:     l.RecordID,
			PlayerID:     l.PlayerID,
			NewScore:     r.After,
			NewStreak:    r.NextStreak,
			ScoreAtGame:  &before,
			StreakAtGame: &streak,
			Delta:        &delta,
		})
		s.logger.Debug().
			Int64("game_id", id).
			Int64("player_id", l.PlayerID).
			Int("before", r.Before).
			Int("after", r.After).
			Int("streak_bonus", r.StreakBonus).
			Msg("score change")
	}
	if err := s.games.Apply(ctx, id, changes); err != nil {
		s.logger.Error().Err(err).Int64("game_id", id).Msg("failed to apply game record")
		return nil, err
	}

	s.logger.Info().Int64("game_id", id).Str("model", s.model.Name()).Msg("game record applied")
	return s.games.Get(ctx, id)
}

// Cancel reverts an applied game: each player loses the delta the game gave
// them (never going below zero) and gets their pre-game streak back.
func (s *GameRecordService) Cancel(ctx context.Context, user uuid.UUID, id int64) (*domain.GameRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.scoreMu.Lock()
	defer s.scoreMu.Unlock()

	rec, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if !rec.Applied {
		return nil, fmt.Errorf("game %d is not applied: %w", id, domain.ErrFailedPrecondition)
	}
	players, err := s.loadPlayers(ctx, rec.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.games.Cancel(ctx, id, reversal(rec, players)); err != nil {
		s.logger.Error().Err(err).Int64("game_id", id).Msg("failed to cancel game record")
		return nil, err
	}

	s.logger.Info().Int64("game_id", id).Msg("game record cancelled")
	return s.games.Get(ctx, id)
}

// Delete removes the record. Scores it applied stay as they are.
func (s *GameRecordService) Delete(ctx context.Context, user uuid.UUID, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rec, err := s.owned(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.games.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("game_id", id).Msg("failed to delete game record")
		return err
	}
	s.logger.Info().Int64("game_id", id).Bool("was_applied", rec.Applied).Msg("game record deleted")
	return nil
}

// Simulate evaluates every line of every game the user recorded, newest game first.
func (s *GameRecordService) Simulate(ctx context.Context, user uuid.UUID) ([]domain.SimulatedScore, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	records, err := s.games.ListByUser(ctx, user)
	if err != nil {
		return nil, err
	}

	var out []domain.SimulatedScore
	for i := range records {
		rec := &records[i]
		players, err := s.loadPlayers(ctx, rec.Lines)
		if err != nil {
			return nil, err
		}
		for j, r := range s.model.Evaluate(toScoringGame(rec, players)) {
			l := rec.Lines[j]
			out = append(out, domain.SimulatedScore{
				GameID:      rec.ID,
				PlayerID:    l.PlayerID,
				PlayerName:  players[l.PlayerID].Name,
				Team:        l.Team,
				Lane:        l.Lane,
				Won:         rec.Won(l.Team),
				Kills:       l.Kills,
				Deaths:      l.Deaths,
				Assists:     l.Assists,
				CS:          l.CS,
				BeforeScore: r.Before,
				AfterScore:  r.After,
				ScoreChange: r.Change,
				StreakBonus: r.StreakBonus,
				PlayedAt:    rec.CreatedAt,
			})
		}
	}
	s.logger.Debug().Str("user_id", user.String()).Int("games", len(records)).Int("lines", len(out)).Msg("scores simulated")
	return out, nil
}

func (s *GameRecordService) owned(ctx context.Context, user uuid.UUID, id int64) (*domain.GameRecord, error) {
	rec, err := s.games.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != user {
		s.logger.Warn().Int64("game_id", id).Str("user_id", user.String()).Msg("game record access refused")
		return nil, fmt.Errorf("game %d belongs to another profile: %w", id, domain.ErrForbidden)
	}
	return rec, nil
}

func (s *GameRecordService) loadPlayers(ctx context.Context, lines []domain.PlayerLine) (map[int64]domain.Player, error) {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.PlayerID)
	}
	found, err := s.players.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Player, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("player %d: %w", id, domain.ErrNotFound)
		}
	}
	return byID, nil
}

// toScoringGame pairs each line with the score and streak going into the
// game: the stored values once applied, the players' current ones otherwise.
func toScoringGame(rec *domain.GameRecord, players map[int64]domain.Player) scoring.Game {
	g := scoring.Game{
		Team1Won:   rec.Team1Won,
		Team1Kills: rec.Team1Kills,
		Team2Kills: rec.Team2Kills,
		Team1Gold:  rec.Team1Gold,
		Team2Gold:  rec.Team2Gold,
		Lines:      make([]scoring.Line, 0, len(rec.Lines)),
	}
	for _, l := range rec.Lines {
		p := players[l.PlayerID]
		score, streak := p.Score, p.WinLossStreak
		if rec.Applied && l.ScoreAtGame != nil {
			score = *l.ScoreAtGame
		}
		if rec.Applied && l.StreakAtGame != nil {
			streak = *l.StreakAtGame
		}
		g.Lines = append(g.Lines, scoring.Line{
			PlayerID: l.PlayerID,
			Team:     l.Team,
			Lane:     l.Lane,
			Kills:    l.Kills,
			Deaths:   l.Deaths,
			Assists:  l.Assists,
			CS:       l.CS,
			Score:    score,
			Streak:   streak,
		})
	}
	return g
}

// reversal builds the changes that undo an applied game.
func reversal(rec *domain.GameRecord, players map[int64]domain.Player) []domain.ScoreChange {
	changes := make([]domain.ScoreChange, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		p := players[l.PlayerID]
		score, streak := p.Score, p.WinLossStreak
		if l.AppliedDelta != nil {
			score = max(0, score-*l.AppliedDelta)
		}
		if l.StreakAtGame != nil {
			streak = *l.StreakAtGame
		}
		changes = append(changes, domain.ScoreChange{
			RecordID:  l.RecordID,
			PlayerID:  l.PlayerID,
			NewScore:  score,
			NewStreak: streak,
		})
	}
	return changes
}
