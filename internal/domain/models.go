package domain

import (
	"time"

	"github.com/google/uuid"

	"team-draft/internal/draft"
)

type Profile struct {
	ID        uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
}

type Player struct {
	ID            int64
	OwnerID       uuid.UUID
	Name          string
	LolID         string
	MainLane      draft.Lane
	SubLane       draft.Lane
	Score         int
	WinLossStreak int
	CreatedAt     time.Time
}

func (p Player) Draft() draft.Player {
	return draft.Player{
		ID:       p.ID,
		Name:     p.Name,
		GameID:   p.LolID,
		Score:    p.Score,
		MainLane: p.MainLane,
		SubLane:  p.SubLane,
	}
}

type Pool struct {
	ID        int64
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}

type PoolMember struct {
	ProfileID uuid.UUID
	Username  string
	JoinedAt  time.Time
}

type PoolDetail struct {
	Pool
	Players []Player
	Members []PoolMember
}

// PoolRanking lists a pool's players best first with the spread of their scores.
type PoolRanking struct {
	Pool              Pool
	Players           []Player
	MeanScore         float64
	MedianScore       float64
	StandardDeviation float64
}

type GameRecord struct {
	ID         int64
	UserID     uuid.UUID
	Team1Won   bool
	Team1Kills int
	Team2Kills int
	Team1Gold  int
	Team2Gold  int
	Applied    bool
	CreatedAt  time.Time
	Lines      []PlayerLine
}

// PlayerLine is one player's stats in a game. ScoreAtGame, StreakAtGame and
// AppliedDelta are set only while the game is applied.
type PlayerLine struct {
	RecordID     string
	PlayerID     int64
	Team         int
	Lane         draft.Lane
	Kills        int
	Deaths       int
	Assists      int
	CS           int
	ScoreAtGame  *int
	StreakAtGame *int
	AppliedDelta *int
}

func (g GameRecord) Won(team int) bool {
	return (team == 1) == g.Team1Won
}

type LineResult struct {
	PlayerLine
	PlayerName  string
	BeforeScore int
	AfterScore  int
	ScoreChange int
	StreakBonus int
}

type GameRecordDetail struct {
	GameRecord
	Model   string
	Results []LineResult
}

type SimulatedScore struct {
	GameID      int64
	PlayerID    int64
	PlayerName  string
	Team        int
	Lane        draft.Lane
	Won         bool
	Kills       int
	Deaths      int
	Assists     int
	CS          int
	BeforeScore int
	AfterScore  int
	ScoreChange int
	StreakBonus int
	PlayedAt    time.Time
}

// ScoreChange is a write to a player's score and streak together with what
// to record on the line that caused it.
type ScoreChange struct {
	RecordID     string
	PlayerID     int64
	NewScore     int
	NewStreak    int
	ScoreAtGame  *int
	StreakAtGame *int
	Delta        *int
}
