package draft

import (
	"errors"
	"fmt"
	"sort"
)

const (
	PlayersPerTeam   = LaneCount
	PlayersPerGame   = 2 * PlayersPerTeam
	DefaultCombLimit = 10
)

var ErrNeedTenPlayers = errors.New("exactly 10 players are required")

// Combinations enumerates every split of ten players into two teams, seats
// each team, and returns the best limit pairings ranked by main-lane count
// (more is better), low-score bonus (more is better), then score difference.
func Combinations(players []Player, limit int) ([]Pairing, error) {
	if len(players) != PlayersPerGame {
		return nil, fmt.Errorf("got %d players: %w", len(players), ErrNeedTenPlayers)
	}
	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, fmt.Errorf("player %d: %w", sorted[i].ID, ErrDuplicatePlayer)
		}
	}
	if limit <= 0 {
		limit = DefaultCombLimit
	}

	var out []Pairing
	// Fixing the lowest id on team 1 visits each unordered split exactly once.
	forEachSubset(len(sorted)-1, PlayersPerTeam-1, func(picked []int) {
		team1 := make([]Player, 0, PlayersPerTeam)
		team2 := make([]Player, 0, PlayersPerTeam)
		team1 = append(team1, sorted[0])
		in := make([]bool, len(sorted))
		for _, idx := range picked {
			in[idx+1] = true
		}
		for i := 1; i < len(sorted); i++ {
			if in[i] {
				team1 = append(team1, sorted[i])
			} else {
				team2 = append(team2, sorted[i])
			}
		}
		p := Pairing{Team1: AssignLanes(1, team1), Team2: AssignLanes(2, team2)}
		p.refreshMetrics()
		out = append(out, p)
	})

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MainPositionCount != b.MainPositionCount {
			return a.MainPositionCount > b.MainPositionCount
		}
		if a.MainPositionLowScoreBonus != b.MainPositionLowScoreBonus {
			return a.MainPositionLowScoreBonus > b.MainPositionLowScoreBonus
		}
		return a.ScoreDifference() < b.ScoreDifference()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].CurrentCombination = i + 1
		out[i].TotalCombinations = len(out)
	}
	return out, nil
}

// Pick returns the pairing at a 0-based index, falling back to the first one
// when the index is out of range.
func Pick(combinations []Pairing, index int) (Pairing, int) {
	if index < 0 || index >= len(combinations) {
		index = 0
	}
	return combinations[index], index
}

// AssignLanes seats five players greedily: main lanes first, then secondary
// lanes, then whoever is left fills the open lanes. Within each pass the
// lowest score wins a lane, ties going to the earlier player.
func AssignLanes(number int, players []Player) Team {
	seats := make(map[Lane]Player, LaneCount)
	taken := make(map[int64]bool, len(players))

	pass := func(prefers func(Player) Lane) {
		for _, lane := range Lanes {
			if _, ok := seats[lane]; ok {
				continue
			}
			best := -1
			for i, p := range players {
				if taken[p.ID] || prefers(p) != lane {
					continue
				}
				if best < 0 || p.Score < players[best].Score {
					best = i
				}
			}
			if best >= 0 {
				seats[lane] = players[best]
				taken[players[best].ID] = true
			}
		}
	}
	pass(func(p Player) Lane { return p.MainLane })
	pass(func(p Player) Lane { return p.SubLane })

	var rest []Player
	for _, p := range players {
		if !taken[p.ID] {
			rest = append(rest, p)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Score < rest[j].Score })
	for _, p := range rest {
		for _, lane := range Lanes {
			if _, ok := seats[lane]; !ok {
				seats[lane] = p
				break
			}
		}
	}

	t := Team{Number: number}
	for i, lane := range Lanes {
		t.Slots[i] = NewSlot(seats[lane], lane)
	}
	return t
}

// forEachSubset calls fn with every k-element subset of [0, n) in
// lexicographic order. The slice is reused between calls.
func forEachSubset(n, k int, fn func([]int)) {
	idx := make([]int, 0, k)
	var rec func(start int)
	rec = func(start int) {
		if len(idx) == k {
			fn(idx)
			return
		}
		for i := start; i < n; i++ {
			idx = append(idx, i)
			rec(i + 1)
			idx = idx[:len(idx)-1]
		}
	}
	rec(0)
}
