package scoring

import (
	"fmt"

	"team-draft/internal/draft"
)

const (
	ModelLedger  = "ledger"
	ModelPreview = "preview"
)

// Line is one player's stat line in a finished game, together with the
// player's score and streak going into that game.
type Line struct {
	PlayerID int64
	Team     int
	Lane     draft.Lane
	Kills    int
	Deaths   int
	Assists  int
	CS       int
	Score    int
	Streak   int
}

type Game struct {
	Team1Won   bool
	Team1Kills int
	Team2Kills int
	Team1Gold  int
	Team2Gold  int
	Lines      []Line
}

// Result is the outcome for one line. Change already includes StreakBonus.
type Result struct {
	PlayerID    int64
	Performance int
	StreakBonus int
	Change      int
	Before      int
	After       int
	NextStreak  int
}

// Model turns a finished game into per-player score changes. Every line is
// evaluated against the pre-game scores carried on the lines.
type Model interface {
	Name() string
	Evaluate(g Game) []Result
}

func ByName(name string) (Model, error) {
	switch name {
	case ModelLedger, "":
		return Ledger{}, nil
	case ModelPreview:
		return Preview{}, nil
	default:
		return nil, fmt.Errorf("unknown score model %q", name)
	}
}

func (g Game) won(l Line) bool {
	return (l.Team == 1) == g.Team1Won
}

func (g Game) teamStats(team int) (kills, gold, oppKills, oppGold int) {
	if team == 1 {
		return g.Team1Kills, g.Team1Gold, g.Team2Kills, g.Team2Gold
	}
	return g.Team2Kills, g.Team2Gold, g.Team1Kills, g.Team1Gold
}

// opponent finds the line playing the same lane on the other team.
func (g Game) opponent(l Line) (Line, bool) {
	for _, o := range g.Lines {
		if o.Lane == l.Lane && o.Team != l.Team {
			return o, true
		}
	}
	return Line{}, false
}

func (l Line) kda() float64 {
	if l.Deaths == 0 {
		return float64(l.Kills + l.Assists)
	}
	return float64(l.Kills+l.Assists) / float64(l.Deaths)
}

func evaluate(g Game, perf func(Line, bool) int, bonus func(int, bool) int) []Result {
	out := make([]Result, 0, len(g.Lines))
	for _, l := range g.Lines {
		won := g.won(l)
		p := clamp(perf(l, won), won)
		b := bonus(l.Streak, won)
		out = append(out, Result{
			PlayerID:    l.PlayerID,
			Performance: p,
			StreakBonus: b,
			Change:      p + b,
			Before:      l.Score,
			After:       max(0, l.Score+p+b),
			NextStreak:  NextStreak(l.Streak, won),
		})
	}
	return out
}

func clamp(total int, won bool) int {
	if won {
		return min(75, max(10, total))
	}
	return min(-10, max(-75, total))
}

// ratio is max/max(min,1), the shape every head-to-head term uses.
func ratio(a, b float64) float64 {
	return max(a, b) / max(min(a, b), 1)
}

func signed(v int, positive bool) int {
	if positive {
		return v
	}
	return -v
}
