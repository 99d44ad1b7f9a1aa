package domain

import (
	"fmt"
	"net/mail"
	"strings"

	"team-draft/internal/constants"
	"team-draft/internal/draft"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (in *RegisterInput) Validate() error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
	if in.Username == "" || len(in.Username) > constants.MaxNameLength {
		return invalid("username must be 1-%d characters", constants.MaxNameLength)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return invalid("email %q is not valid", in.Email)
	}
	if len(in.Password) < constants.MinPasswordLen {
		return invalid("password must be at least %d characters", constants.MinPasswordLen)
	}
	return nil
}

type PlayerInput struct {
	Name     string
	LolID    string
	MainLane string
	SubLane  string
	Score    int
}

// Validate trims the text fields and returns the parsed lanes.
func (in *PlayerInput) Validate() (main, sub draft.Lane, err error) {
	in.Name = strings.TrimSpace(in.Name)
	in.LolID = strings.TrimSpace(in.LolID)
	if in.Name == "" || len(in.Name) > constants.MaxNameLength {
		return "", "", invalid("name must be 1-%d characters", constants.MaxNameLength)
	}
	if in.LolID == "" {
		return "", "", invalid("lol id is required")
	}
	var ok bool
	if main, ok = draft.ParseLane(in.MainLane); !ok {
		return "", "", invalid("main lane %q is not a lane", in.MainLane)
	}
	if sub, ok = draft.ParseLane(in.SubLane); !ok {
		return "", "", invalid("sub lane %q is not a lane", in.SubLane)
	}
	if main == sub {
		return "", "", invalid("main and sub lane must differ")
	}
	if in.Score < constants.MinPlayerScore || in.Score > constants.MaxPlayerScore {
		return "", "", invalid("score must be between %d and %d", constants.MinPlayerScore, constants.MaxPlayerScore)
	}
	return main, sub, nil
}

type PoolInput struct {
	Name      string
	PlayerIDs []int64
}

func (in *PoolInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > constants.MaxNameLength {
		return invalid("pool name must be 1-%d characters", constants.MaxNameLength)
	}
	seen := make(map[int64]bool, len(in.PlayerIDs))
	for _, id := range in.PlayerIDs {
		if seen[id] {
			return invalid("player %d listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

type LineInput struct {
	PlayerID int64
	Team     int
	Lane     string
	Kills    int
	Deaths   int
	Assists  int
	CS       int
}

type GameRecordInput struct {
	Team1Won   bool
	Team1Kills int
	Team2Kills int
	Team1Gold  int
	Team2Gold  int
	Lines      []LineInput
}

// Validate checks the game is a full 5v5 with every lane covered once per
// team, and returns the lines in storage form.
func (in GameRecordInput) Validate() ([]PlayerLine, error) {
	if in.Team1Kills < 0 || in.Team2Kills < 0 || in.Team1Gold < 0 || in.Team2Gold < 0 {
		return nil, invalid("team kills and gold must not be negative")
	}
	if len(in.Lines) != draft.PlayersPerGame {
		return nil, invalid("a game needs %d player lines, got %d", draft.PlayersPerGame, len(in.Lines))
	}

	type seat struct {
		team int
		lane draft.Lane
	}
	seats := make(map[seat]bool, draft.PlayersPerGame)
	players := make(map[int64]bool, draft.PlayersPerGame)
	lines := make([]PlayerLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.Team != 1 && l.Team != 2 {
			return nil, invalid("team number %d", l.Team)
		}
		lane, ok := draft.ParseLane(l.Lane)
		if !ok {
			return nil, invalid("lane %q is not a lane", l.Lane)
		}
		if seats[seat{l.Team, lane}] {
			return nil, invalid("team %d has two %s players", l.Team, lane)
		}
		if players[l.PlayerID] {
			return nil, invalid("player %d appears twice", l.PlayerID)
		}
		if l.Kills < 0 || l.Deaths < 0 || l.Assists < 0 || l.CS < 0 {
			return nil, invalid("player %d has negative stats", l.PlayerID)
		}
		seats[seat{l.Team, lane}] = true
		players[l.PlayerID] = true
		lines = append(lines, PlayerLine{
			PlayerID: l.PlayerID,
			Team:     l.Team,
			Lane:     lane,
			Kills:    l.Kills,
			Deaths:   l.Deaths,
			Assists:  l.Assists,
			CS:       l.CS,
		})
	}
	return lines, nil
}
