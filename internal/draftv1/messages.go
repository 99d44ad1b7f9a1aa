package draftv1

import "time"

type Empty struct{}

type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

type Player struct {
	PlayerID      int64     `json:"playerId"`
	OwnerID       string    `json:"ownerId"`
	Name          string    `json:"name"`
	LolID         string    `json:"lolId"`
	MainLane      string    `json:"mainLane"`
	SubLane       string    `json:"subLane"`
	Score         int       `json:"score"`
	WinLossStreak int       `json:"winLossStreak"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PlayerInput struct {
	Name     string `json:"name"`
	LolID    string `json:"lolId"`
	MainLane string `json:"mainLane"`
	SubLane  string `json:"subLane"`
	Score    int    `json:"score"`
}

type ListPlayersResponse struct {
	Players []Player `json:"players"`
}

type PlayerIDRequest struct {
	PlayerID int64 `json:"playerId"`
}

type PoolMember struct {
	ProfileID string    `json:"profileId"`
	Username  string    `json:"username"`
	JoinedAt  time.Time `json:"joinedAt"`
}

type Pool struct {
	PoolID       int64        `json:"poolId"`
	OwnerID      string       `json:"ownerId"`
	Name         string       `json:"name"`
	CreatedAt    time.Time    `json:"createdAt"`
	Players      []Player     `json:"players"`
	PlayersCount int          `json:"playersCount"`
	Members      []PoolMember `json:"members,omitempty"`
}

type CreatePoolRequest struct {
	Name      string  `json:"name"`
	PlayerIDs []int64 `json:"playerIds"`
}

type ListPoolsResponse struct {
	Pools []Pool `json:"pools"`
}

type PoolIDRequest struct {
	PoolID int64 `json:"poolId"`
}

type AddPoolPlayerRequest struct {
	PoolID int64       `json:"poolId"`
	Player PlayerInput `json:"player"`
}

type UpdatePoolPlayerRequest struct {
	PoolID   int64       `json:"poolId"`
	PlayerID int64       `json:"playerId"`
	Player   PlayerInput `json:"player"`
}

type JoinPoolRequest struct {
	PoolID   int64  `json:"poolId"`
	PoolName string `json:"poolName"`
}

type PoolRanking struct {
	PoolID            int64    `json:"poolId"`
	Name              string   `json:"name"`
	Players           []Player `json:"players"`
	MeanScore         float64  `json:"meanScore"`
	MedianScore       float64  `json:"medianScore"`
	StandardDeviation float64  `json:"standardDeviation"`
}

type GenerateTeamsRequest struct {
	PlayerIDs []int64 `json:"playerIds"`
}

type RerollTeamsRequest struct {
	PlayerIDs        []int64 `json:"playerIds"`
	CombinationIndex int     `json:"combinationIndex"`
}

type SlotRef struct {
	TeamNumber int    `json:"teamNumber"`
	Position   string `json:"position"`
}

type SwapPlayersRequest struct {
	Pairing Pairing `json:"pairing"`
	From    SlotRef `json:"from"`
	To      SlotRef `json:"to"`
}

type PlayerGameRecordInput struct {
	PlayerID         int64  `json:"playerId"`
	TeamNumber       int    `json:"teamNumber"`
	AssignedPosition string `json:"assignedPosition"`
	Kills            int    `json:"kills"`
	Deaths           int    `json:"deaths"`
	Assists          int    `json:"assists"`
	CS               int    `json:"cs"`
}

type GameRecordRequest struct {
	Team1Won      bool                    `json:"team1Won"`
	Team1Kills    int                     `json:"team1Kills"`
	Team2Kills    int                     `json:"team2Kills"`
	Team1Gold     int                     `json:"team1Gold"`
	Team2Gold     int                     `json:"team2Gold"`
	PlayerRecords []PlayerGameRecordInput `json:"playerRecords"`
}

type UpdateGameRecordRequest struct {
	GameID int64 `json:"gameId"`
	GameRecordRequest
}

type GameIDRequest struct {
	GameID int64 `json:"gameId"`
}

// PlayerGameRecord is one line of a game. The score fields are filled only
// by GetGameRecord.
type PlayerGameRecord struct {
	RecordID            string `json:"recordId"`
	PlayerID            int64  `json:"playerId"`
	PlayerName          string `json:"playerName,omitempty"`
	TeamNumber          int    `json:"teamNumber"`
	AssignedPosition    string `json:"assignedPosition"`
	Kills               int    `json:"kills"`
	Deaths              int    `json:"deaths"`
	Assists             int    `json:"assists"`
	CS                  int    `json:"cs"`
	WinLossStreakAtGame *int   `json:"winLossStreakAtGame,omitempty"`
	AppliedDelta        *int   `json:"appliedDelta,omitempty"`
	BeforeScore         *int   `json:"beforeScore,omitempty"`
	AfterScore          *int   `json:"afterScore,omitempty"`
	ScoreChange         *int   `json:"scoreChange,omitempty"`
	StreakBonus         *int   `json:"streakBonus,omitempty"`
}

type GameRecord struct {
	GameID        int64              `json:"gameId"`
	Team1Won      bool               `json:"team1Won"`
	Team1Kills    int                `json:"team1Kills"`
	Team2Kills    int                `json:"team2Kills"`
	Team1Gold     int                `json:"team1Gold"`
	Team2Gold     int                `json:"team2Gold"`
	IsApplied     bool               `json:"isApplied"`
	CreatedAt     time.Time          `json:"createdAt"`
	ScoreModel    string             `json:"scoreModel,omitempty"`
	PlayerRecords []PlayerGameRecord `json:"playerRecords"`
}

type ListGameRecordsResponse struct {
	GameRecords []GameRecord `json:"gameRecords"`
}

type SimulatedScore struct {
	GameID           int64     `json:"gameId"`
	PlayerID         int64     `json:"playerId"`
	PlayerName       string    `json:"playerName"`
	TeamNumber       int       `json:"teamNumber"`
	AssignedPosition string    `json:"assignedPosition"`
	IsWinner         bool      `json:"isWinner"`
	Kills            int       `json:"kills"`
	Deaths           int       `json:"deaths"`
	Assists          int       `json:"assists"`
	CS               int       `json:"cs"`
	BeforeScore      int       `json:"beforeScore"`
	AfterScore       int       `json:"afterScore"`
	ScoreChange      int       `json:"scoreChange"`
	StreakBonus      int       `json:"streakBonus"`
	PlayedAt         time.Time `json:"playedAt"`
}

type SimulateScoresResponse struct {
	Scores []SimulatedScore `json:"scores"`
}
