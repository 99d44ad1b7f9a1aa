package draftv1

import (
	"fmt"

	"team-draft/internal/draft"
)

type TeamPlayer struct {
	PlayerID         int64  `json:"playerId"`
	Name             string `json:"name"`
	LolID            string `json:"lolId"`
	OriginalScore    int    `json:"originalScore"`
	AdjustedScore    int    `json:"adjustedScore"`
	AssignedPosition string `json:"assignedPosition"`
	MainLane         string `json:"mainLane"`
	SubLane          string `json:"subLane"`
	PositionType     string `json:"positionType"`
}

type Team struct {
	TeamNumber    int          `json:"teamNumber"`
	Players       []TeamPlayer `json:"players"`
	TotalScore    int          `json:"totalScore"`
	TopPlayer     *TeamPlayer  `json:"topPlayer,omitempty"`
	JunglePlayer  *TeamPlayer  `json:"junglePlayer,omitempty"`
	MidPlayer     *TeamPlayer  `json:"midPlayer,omitempty"`
	AdcPlayer     *TeamPlayer  `json:"adcPlayer,omitempty"`
	SupportPlayer *TeamPlayer  `json:"supportPlayer,omitempty"`
}

// Pairing is the response of every team generation call.
type Pairing struct {
	Team1                     Team  `json:"team1"`
	Team2                     Team  `json:"team2"`
	ScoreDifference           int   `json:"scoreDifference"`
	MainPositionCount         int   `json:"mainPositionCount"`
	MainPositionLowScoreBonus int   `json:"mainPositionLowScoreBonus"`
	CurrentCombination        int   `json:"currentCombination"`
	TotalCombinations         int   `json:"totalCombinations"`
	AvailableCombinations     []int `json:"availableCombinations"`
}

func FromPairing(p draft.Pairing) Pairing {
	return Pairing{
		Team1:                     fromTeam(p.Team1),
		Team2:                     fromTeam(p.Team2),
		ScoreDifference:           p.ScoreDifference(),
		MainPositionCount:         p.MainPositionCount,
		MainPositionLowScoreBonus: p.MainPositionLowScoreBonus,
		CurrentCombination:        p.CurrentCombination,
		TotalCombinations:         p.TotalCombinations,
		AvailableCombinations:     p.AvailableCombinations(),
	}
}

func fromTeam(t draft.Team) Team {
	out := Team{TeamNumber: t.Number, TotalScore: t.Total()}
	for _, s := range t.Slots {
		out.Players = append(out.Players, TeamPlayer{
			PlayerID:         s.Player.ID,
			Name:             s.Player.Name,
			LolID:            s.Player.GameID,
			OriginalScore:    s.Player.Score,
			AdjustedScore:    s.AdjustedScore,
			AssignedPosition: s.Lane.String(),
			MainLane:         s.Player.MainLane.String(),
			SubLane:          s.Player.SubLane.String(),
			PositionType:     string(s.Position),
		})
	}
	for i := range out.Players {
		tp := &out.Players[i]
		switch draft.Lane(tp.AssignedPosition) {
		case draft.LaneTop:
			out.TopPlayer = tp
		case draft.LaneJungle:
			out.JunglePlayer = tp
		case draft.LaneMid:
			out.MidPlayer = tp
		case draft.LaneADC:
			out.AdcPlayer = tp
		case draft.LaneSupport:
			out.SupportPlayer = tp
		}
	}
	return out
}

// ToPairing rebuilds a pairing from what a client sent back. Only the players
// and their assigned positions are trusted: adjusted scores, totals and the
// main-lane metrics are all recomputed.
func ToPairing(p Pairing) (draft.Pairing, error) {
	t1, err := toTeam(1, p.Team1)
	if err != nil {
		return draft.Pairing{}, err
	}
	t2, err := toTeam(2, p.Team2)
	if err != nil {
		return draft.Pairing{}, err
	}
	out, err := draft.NewPairing(t1, t2)
	if err != nil {
		return draft.Pairing{}, err
	}
	out.CurrentCombination = p.CurrentCombination
	out.TotalCombinations = p.TotalCombinations
	return out, nil
}

func toTeam(number int, t Team) (draft.Team, error) {
	if len(t.Players) != draft.PlayersPerTeam {
		return draft.Team{}, fmt.Errorf("team %d has %d players: %w", number, len(t.Players), draft.ErrIncompleteTeam)
	}
	seats := make(map[draft.Lane]draft.Player, draft.LaneCount)
	for _, tp := range t.Players {
		lane, ok := draft.ParseLane(tp.AssignedPosition)
		if !ok {
			return draft.Team{}, fmt.Errorf("team %d position %q: %w", number, tp.AssignedPosition, draft.ErrUnknownSlot)
		}
		if _, dup := seats[lane]; dup {
			return draft.Team{}, fmt.Errorf("team %d %s seated twice: %w", number, lane, draft.ErrIncompleteTeam)
		}
		main, _ := draft.ParseLane(tp.MainLane)
		sub, _ := draft.ParseLane(tp.SubLane)
		seats[lane] = draft.Player{
			ID:       tp.PlayerID,
			Name:     tp.Name,
			GameID:   tp.LolID,
			Score:    tp.OriginalScore,
			MainLane: main,
			SubLane:  sub,
		}
	}
	return draft.NewTeam(number, seats)
}

func ToSlotRef(r SlotRef) (draft.SlotRef, error) {
	lane, ok := draft.ParseLane(r.Position)
	if !ok || (r.TeamNumber != 1 && r.TeamNumber != 2) {
		return draft.SlotRef{}, fmt.Errorf("slot %d:%s: %w", r.TeamNumber, r.Position, draft.ErrUnknownSlot)
	}
	return draft.SlotRef{Team: r.TeamNumber, Lane: lane}, nil
}
