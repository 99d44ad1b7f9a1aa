package db

import (
	"time"
)

type GameRecord struct {
	GameID     int64
	UserID     string
	Team1Won   bool
	Team1Kills int64
	Team2Kills int64
	Team1Gold  int64
	Team2Gold  int64
	IsApplied  bool
	CreatedAt  time.Time
}

type Player struct {
	PlayerID      int64
	OwnerID       string
	Name          string
	LolID         string
	MainLane      string
	SubLane       string
	Score         int64
	WinLossStreak int64
	CreatedAt     time.Time
}

type PlayerGameRecord struct {
	RecordID         string
	GameID           int64
	PlayerID         int64
	TeamNumber       int64
	AssignedPosition string
	Kills            int64
	Deaths           int64
	Assists          int64
	Cs               int64
	ScoreAtGame      *int64
	StreakAtGame     *int64
	AppliedDelta     *int64
}

type Pool struct {
	PoolID    int64
	OwnerID   string
	Name      string
	CreatedAt time.Time
}

type Profile struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
