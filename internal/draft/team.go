package draft

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSlot     = errors.New("unknown team slot")
	ErrIncompleteTeam  = errors.New("team is missing a lane")
	ErrDuplicatePlayer = errors.New("player appears in more than one slot")
)

type Player struct {
	ID       int64
	Name     string
	GameID   string
	Score    int
	MainLane Lane
	SubLane  Lane
}

// Slot is a player seated in a lane. Position and adjusted score are derived
// from the lane, so a Slot is only built through NewSlot.
type Slot struct {
	Player        Player
	Lane          Lane
	Position      PositionType
	AdjustedScore int
}

func NewSlot(p Player, lane Lane) Slot {
	return Slot{
		Player:        p,
		Lane:          lane,
		Position:      Classify(lane, p.MainLane, p.SubLane),
		AdjustedScore: AdjustedScore(p.Score, p.MainLane, p.SubLane, lane),
	}
}

// Team holds one slot per lane, in Lanes order.
type Team struct {
	Number int
	Slots  [LaneCount]Slot
}

// NewTeam seats each player in the lane it is keyed by. Every lane must be filled.
func NewTeam(number int, seats map[Lane]Player) (Team, error) {
	t := Team{Number: number}
	for i, lane := range Lanes {
		p, ok := seats[lane]
		if !ok {
			return Team{}, fmt.Errorf("team %d %s: %w", number, lane, ErrIncompleteTeam)
		}
		t.Slots[i] = NewSlot(p, lane)
	}
	return t, nil
}

func (t Team) Slot(lane Lane) (Slot, bool) {
	i := lane.index()
	if i < 0 {
		return Slot{}, false
	}
	return t.Slots[i], true
}

// Total sums the slot scores. Each slot was rounded on its own.
func (t Team) Total() int {
	total := 0
	for _, s := range t.Slots {
		total += s.AdjustedScore
	}
	return total
}

// lowScoreBonus favours pairings that put weaker players on their main lane.
func (t Team) lowScoreBonus(highest int) int {
	bonus := 0
	for _, s := range t.Slots {
		if s.Position == PositionMain {
			bonus += highest - s.Player.Score
		}
	}
	return bonus
}

func (t Team) MainCount() int {
	n := 0
	for _, s := range t.Slots {
		if s.Position == PositionMain {
			n++
		}
	}
	return n
}

// Pairing is two teams plus the bookkeeping needed to step through the
// alternative combinations.
type Pairing struct {
	Team1                     Team
	Team2                     Team
	MainPositionCount         int
	MainPositionLowScoreBonus int
	CurrentCombination        int
	TotalCombinations         int
}

// NewPairing puts two seated teams together and computes the main-lane metrics.
func NewPairing(team1, team2 Team) (Pairing, error) {
	p := Pairing{Team1: team1, Team2: team2}
	if err := p.Validate(); err != nil {
		return Pairing{}, err
	}
	p.refreshMetrics()
	return p, nil
}

func (p Pairing) ScoreDifference() int {
	d := p.Team1.Total() - p.Team2.Total()
	if d < 0 {
		return -d
	}
	return d
}

// AvailableCombinations lists the 1-based combination numbers a client may request.
func (p Pairing) AvailableCombinations() []int {
	out := make([]int, p.TotalCombinations)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (p *Pairing) team(number int) (*Team, bool) {
	switch number {
	case 1:
		return &p.Team1, true
	case 2:
		return &p.Team2, true
	default:
		return nil, false
	}
}

// refreshMetrics recomputes the main-lane bookkeeping from the slots.
func (p *Pairing) refreshMetrics() {
	highest := 0
	for _, t := range []Team{p.Team1, p.Team2} {
		for _, s := range t.Slots {
			highest = max(highest, s.Player.Score)
		}
	}
	p.MainPositionCount = p.Team1.MainCount() + p.Team2.MainCount()
	p.MainPositionLowScoreBonus = p.Team1.lowScoreBonus(highest) + p.Team2.lowScoreBonus(highest)
}

// Validate checks that both teams are numbered 1 and 2, every slot sits in its
// own lane, and no player is seated twice.
func (p Pairing) Validate() error {
	if p.Team1.Number != 1 || p.Team2.Number != 2 {
		return fmt.Errorf("teams numbered %d and %d: %w", p.Team1.Number, p.Team2.Number, ErrUnknownSlot)
	}
	seen := make(map[int64]bool, 2*LaneCount)
	for _, t := range []Team{p.Team1, p.Team2} {
		for i, s := range t.Slots {
			if s.Lane != Lanes[i] {
				return fmt.Errorf("team %d %s: %w", t.Number, Lanes[i], ErrIncompleteTeam)
			}
			if seen[s.Player.ID] {
				return fmt.Errorf("player %d: %w", s.Player.ID, ErrDuplicatePlayer)
			}
			seen[s.Player.ID] = true
		}
	}
	return nil
}
