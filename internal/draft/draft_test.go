package draft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustedScore(t *testing.T) {
	cases := []struct {
		name     string
		base     int
		assigned Lane
		want     int
		position PositionType
	}{
		{name: "primary lane keeps base", base: 500, assigned: LaneTop, want: 500, position: PositionMain},
		{name: "secondary lane", base: 500, assigned: LaneJungle, want: 400, position: PositionSub},
		{name: "fill lane", base: 500, assigned: LaneMid, want: 300, position: PositionFill},
		{name: "secondary rounds half up", base: 333, assigned: LaneJungle, want: 266, position: PositionSub},
		{name: "fill rounds up", base: 333, assigned: LaneSupport, want: 200, position: PositionFill},
		{name: "malformed lane falls back to fill", base: 500, assigned: Lane("BOT"), want: 300, position: PositionFill},
		{name: "zero base", base: 0, assigned: LaneADC, want: 0, position: PositionFill},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AdjustedScore(tc.base, LaneTop, LaneJungle, tc.assigned))
			assert.Equal(t, tc.position, Classify(tc.assigned, LaneTop, LaneJungle))
		})
	}
}

func TestAdjustedScoreIdempotent(t *testing.T) {
	for base := 0; base <= 1000; base += 37 {
		for _, lane := range Lanes {
			first := AdjustedScore(base, LaneMid, LaneSupport, lane)
			assert.Equal(t, first, AdjustedScore(base, LaneMid, LaneSupport, lane))
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3, Round(2.5))
	assert.Equal(t, -2, Round(-2.5))
	assert.Equal(t, -3, Round(-2.6))
	assert.Equal(t, 0, Round(0.49))
}

func TestParseLane(t *testing.T) {
	for in, want := range map[string]Lane{
		"TOP": LaneTop, "jungle": LaneJungle, "JGL": LaneJungle, " mid ": LaneMid,
		"adc": LaneADC, "SUPPORT": LaneSupport, "sup": LaneSupport,
	} {
		got, ok := ParseLane(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseLane("BOT")
	assert.False(t, ok)
}

func player(id int64, score int, main, sub Lane) Player {
	return Player{ID: id, Name: "p", GameID: "g", Score: score, MainLane: main, SubLane: sub}
}

// examplePairing is 2400 vs 2350 with a MAIN top laner on team 1 and a
// FILL top laner on team 2.
func examplePairing(t *testing.T) Pairing {
	t.Helper()
	team1, err := NewTeam(1, map[Lane]Player{
		LaneTop:     player(1, 500, LaneTop, LaneJungle),
		LaneJungle:  player(2, 500, LaneJungle, LaneMid),
		LaneMid:     player(3, 500, LaneMid, LaneTop),
		LaneADC:     player(4, 500, LaneADC, LaneSupport),
		LaneSupport: player(5, 400, LaneSupport, LaneADC),
	})
	require.NoError(t, err)
	team2, err := NewTeam(2, map[Lane]Player{
		LaneTop:     player(6, 500, LaneMid, LaneJungle),
		LaneJungle:  player(7, 500, LaneJungle, LaneTop),
		LaneMid:     player(8, 550, LaneMid, LaneTop),
		LaneADC:     player(9, 500, LaneADC, LaneMid),
		LaneSupport: player(10, 500, LaneSupport, LaneTop),
	})
	require.NoError(t, err)
	p := Pairing{Team1: team1, Team2: team2}
	p.refreshMetrics()
	return p
}

func TestSwapRecomputesTotals(t *testing.T) {
	p := examplePairing(t)
	require.Equal(t, 2400, p.Team1.Total())
	require.Equal(t, 2350, p.Team2.Total())
	require.Equal(t, 50, p.ScoreDifference())

	got, err := p.Swap(SlotRef{Team: 1, Lane: LaneTop}, SlotRef{Team: 2, Lane: LaneTop})
	require.NoError(t, err)

	top1, _ := got.Team1.Slot(LaneTop)
	top2, _ := got.Team2.Slot(LaneTop)
	assert.Equal(t, int64(6), top1.Player.ID)
	assert.Equal(t, PositionFill, top1.Position)
	assert.Equal(t, 300, top1.AdjustedScore)
	assert.Equal(t, int64(1), top2.Player.ID)
	assert.Equal(t, PositionMain, top2.Position)
	assert.Equal(t, 500, top2.AdjustedScore)

	assert.Equal(t, 2200, got.Team1.Total())
	assert.Equal(t, 2550, got.Team2.Total())
	assert.Equal(t, 350, got.ScoreDifference())
	assert.Equal(t, 9, got.MainPositionCount)

	// the receiver is left untouched
	assert.Equal(t, 2400, p.Team1.Total())
}

func TestSwapWithinOneTeam(t *testing.T) {
	p := examplePairing(t)
	got, err := p.Swap(SlotRef{Team: 1, Lane: LaneTop}, SlotRef{Team: 1, Lane: LaneJungle})
	require.NoError(t, err)

	top, _ := got.Team1.Slot(LaneTop)
	jgl, _ := got.Team1.Slot(LaneJungle)
	assert.Equal(t, int64(2), top.Player.ID)
	assert.Equal(t, PositionFill, top.Position)
	assert.Equal(t, 300, top.AdjustedScore)
	assert.Equal(t, int64(1), jgl.Player.ID)
	assert.Equal(t, PositionSub, jgl.Position)
	assert.Equal(t, 400, jgl.AdjustedScore)
	assert.Equal(t, 300+400+500+500+400, got.Team1.Total())
	assert.Equal(t, p.Team2, got.Team2)
	require.NoError(t, got.Validate())
}

func TestSwapRoundTrip(t *testing.T) {
	p := examplePairing(t)
	refs := []SlotRef{}
	for _, team := range []int{1, 2} {
		for _, lane := range Lanes {
			refs = append(refs, SlotRef{Team: team, Lane: lane})
		}
	}
	for _, a := range refs {
		for _, b := range refs {
			once, err := p.Swap(a, b)
			require.NoError(t, err)
			require.NoError(t, once.Validate())
			twice, err := once.Swap(a, b)
			require.NoError(t, err)
			require.Equal(t, p, twice, "%s <-> %s", a, b)
		}
	}
}

func TestSwapSameSlotIsNoop(t *testing.T) {
	p := examplePairing(t)
	got, err := p.Swap(SlotRef{Team: 2, Lane: LaneMid}, SlotRef{Team: 2, Lane: LaneMid})
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSwapUnknownSlot(t *testing.T) {
	p := examplePairing(t)
	cases := []struct {
		name string
		a, b SlotRef
	}{
		{name: "team zero", a: SlotRef{Team: 0, Lane: LaneTop}, b: SlotRef{Team: 1, Lane: LaneTop}},
		{name: "team three", a: SlotRef{Team: 1, Lane: LaneTop}, b: SlotRef{Team: 3, Lane: LaneTop}},
		{name: "bad lane", a: SlotRef{Team: 1, Lane: Lane("BOT")}, b: SlotRef{Team: 2, Lane: LaneTop}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Swap(tc.a, tc.b)
			require.ErrorIs(t, err, ErrUnknownSlot)
			assert.Equal(t, p, got)
		})
	}
}

func TestNewTeamRequiresEveryLane(t *testing.T) {
	_, err := NewTeam(1, map[Lane]Player{LaneTop: player(1, 100, LaneTop, LaneMid)})
	require.ErrorIs(t, err, ErrIncompleteTeam)
}

func TestValidateRejectsDuplicatePlayer(t *testing.T) {
	p := examplePairing(t)
	p.Team2.Slots[0] = NewSlot(p.Team1.Slots[0].Player, LaneTop)
	require.ErrorIs(t, p.Validate(), ErrDuplicatePlayer)
}

func tenPlayers() []Player {
	return []Player{
		player(10, 820, LaneTop, LaneJungle),
		player(3, 640, LaneJungle, LaneTop),
		player(7, 910, LaneMid, LaneADC),
		player(1, 450, LaneADC, LaneSupport),
		player(5, 500, LaneSupport, LaneMid),
		player(2, 700, LaneTop, LaneMid),
		player(9, 560, LaneJungle, LaneSupport),
		player(4, 300, LaneMid, LaneTop),
		player(8, 610, LaneADC, LaneJungle),
		player(6, 380, LaneSupport, LaneADC),
	}
}

func TestCombinations(t *testing.T) {
	got, err := Combinations(tenPlayers(), 10)
	require.NoError(t, err)
	require.Len(t, got, 10)

	for i, p := range got {
		require.NoError(t, p.Validate())
		assert.Equal(t, i+1, p.CurrentCombination)
		assert.Equal(t, 10, p.TotalCombinations)

		ids := map[int64]bool{}
		for _, s := range p.Team1.Slots {
			ids[s.Player.ID] = true
		}
		assert.True(t, ids[1], "lowest id is always on team 1")

		if i == 0 {
			continue
		}
		prev := got[i-1]
		if prev.MainPositionCount != p.MainPositionCount {
			assert.Greater(t, prev.MainPositionCount, p.MainPositionCount)
		} else if prev.MainPositionLowScoreBonus != p.MainPositionLowScoreBonus {
			assert.Greater(t, prev.MainPositionLowScoreBonus, p.MainPositionLowScoreBonus)
		} else {
			assert.LessOrEqual(t, prev.ScoreDifference(), p.ScoreDifference())
		}
	}

	again, err := Combinations(tenPlayers(), 10)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestCombinationsVisitsEverySplitOnce(t *testing.T) {
	got, err := Combinations(tenPlayers(), 1000)
	require.NoError(t, err)
	require.Len(t, got, 126)

	seen := map[[PlayersPerTeam]int64]bool{}
	for _, p := range got {
		var key [PlayersPerTeam]int64
		for i, s := range p.Team1.Slots {
			key[i] = s.Player.ID
		}
		// slots are in lane order, so sort the ids for a set key
		for i := 1; i < len(key); i++ {
			for j := i; j > 0 && key[j] < key[j-1]; j-- {
				key[j], key[j-1] = key[j-1], key[j]
			}
		}
		require.False(t, seen[key])
		seen[key] = true
	}
}

func TestCombinationsInputErrors(t *testing.T) {
	_, err := Combinations(tenPlayers()[:9], 10)
	require.True(t, errors.Is(err, ErrNeedTenPlayers))

	dup := tenPlayers()
	dup[9] = dup[0]
	_, err = Combinations(dup, 10)
	require.ErrorIs(t, err, ErrDuplicatePlayer)
}

func TestAssignLanes(t *testing.T) {
	team := AssignLanes(1, []Player{
		player(1, 700, LaneTop, LaneMid),
		player(2, 400, LaneTop, LaneJungle),
		player(3, 500, LaneADC, LaneSupport),
		player(4, 600, LaneADC, LaneTop),
		player(5, 550, LaneADC, LaneMid),
	})

	want := map[Lane]struct {
		id       int64
		position PositionType
	}{
		LaneTop:     {2, PositionMain},
		LaneADC:     {3, PositionMain},
		LaneMid:     {5, PositionSub},
		LaneJungle:  {4, PositionFill},
		LaneSupport: {1, PositionFill},
	}
	for lane, w := range want {
		s, ok := team.Slot(lane)
		require.True(t, ok)
		assert.Equal(t, w.id, s.Player.ID, lane)
		assert.Equal(t, w.position, s.Position, lane)
	}
}

func TestPickFallsBackToFirst(t *testing.T) {
	got, err := Combinations(tenPlayers(), 3)
	require.NoError(t, err)

	p, idx := Pick(got, 2)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 3, p.CurrentCombination)

	p, idx = Pick(got, 3)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, p.CurrentCombination)

	_, idx = Pick(got, -4)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []int{1, 2, 3}, p.AvailableCombinations())
}
