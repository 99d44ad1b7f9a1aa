package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-draft/internal/draft"
)

// topLaneGame is a team 1 win with one line per side on TOP:
// team 1 goes 5/2/5 with 200 cs, team 2 goes 2/5/3 with 150 cs.
func topLaneGame() Game {
	return Game{
		Team1Won:   true,
		Team1Kills: 20,
		Team2Kills: 10,
		Team1Gold:  60000,
		Team2Gold:  50000,
		Lines: []Line{
			{PlayerID: 1, Team: 1, Lane: draft.LaneTop, Kills: 5, Deaths: 2, Assists: 5, CS: 200, Score: 500, Streak: 3},
			{PlayerID: 2, Team: 2, Lane: draft.LaneTop, Kills: 2, Deaths: 5, Assists: 3, CS: 150, Score: 600, Streak: -3},
		},
	}
}

func TestLedgerEvaluate(t *testing.T) {
	got := Ledger{}.Evaluate(topLaneGame())
	require.Len(t, got, 2)

	assert.Equal(t, Result{
		PlayerID: 1, Performance: 58, StreakBonus: 3, Change: 61,
		Before: 500, After: 561, NextStreak: 4,
	}, got[0])
	assert.Equal(t, Result{
		PlayerID: 2, Performance: -48, StreakBonus: -3, Change: -51,
		Before: 600, After: 549, NextStreak: -4,
	}, got[1])
}

func TestPreviewEvaluate(t *testing.T) {
	got := Preview{}.Evaluate(topLaneGame())
	require.Len(t, got, 2)

	assert.Equal(t, Result{
		PlayerID: 1, Performance: 27, StreakBonus: 4, Change: 31,
		Before: 500, After: 531, NextStreak: 4,
	}, got[0])
	assert.Equal(t, Result{
		PlayerID: 2, Performance: -24, StreakBonus: -4, Change: -28,
		Before: 600, After: 572, NextStreak: -4,
	}, got[1])
}

func TestEvaluateUsesPreGameScores(t *testing.T) {
	g := topLaneGame()
	first := Ledger{}.Evaluate(g)
	// reversing the line order must not change any result
	g.Lines[0], g.Lines[1] = g.Lines[1], g.Lines[0]
	second := Ledger{}.Evaluate(g)
	assert.Equal(t, first[0], second[1])
	assert.Equal(t, first[1], second[0])
}

func TestClampAndFloor(t *testing.T) {
	g := Game{
		Team1Won: false,
		Lines: []Line{
			{PlayerID: 7, Team: 1, Lane: draft.LaneSupport, Deaths: 10, Score: 5},
		},
	}
	for _, m := range []Model{Ledger{}, Preview{}} {
		got := m.Evaluate(g)
		require.Len(t, got, 1)
		assert.LessOrEqual(t, got[0].Performance, -10, m.Name())
		assert.GreaterOrEqual(t, got[0].Performance, -75, m.Name())
		assert.Equal(t, 0, got[0].After, m.Name())
	}

	g.Team1Won = true
	for _, m := range []Model{Ledger{}, Preview{}} {
		got := m.Evaluate(g)
		assert.GreaterOrEqual(t, got[0].Performance, 10, m.Name())
		assert.LessOrEqual(t, got[0].Performance, 75, m.Name())
	}
}

func TestNextStreak(t *testing.T) {
	cases := []struct {
		streak int
		won    bool
		want   int
	}{
		{0, true, 1},
		{3, true, 4},
		{-4, true, 1},
		{0, false, -1},
		{-2, false, -3},
		{5, false, -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NextStreak(tc.streak, tc.won), "%d %v", tc.streak, tc.won)
	}
}

func TestStreakBonuses(t *testing.T) {
	cases := []struct {
		streak int
		won    bool
		tiered int
		raw    int
	}{
		{0, true, 0, 0},
		{1, true, 2, 2},
		{3, true, 3, 4},
		{5, true, 5, 6},
		{-1, true, 0, 0},
		{0, false, 0, 0},
		{-1, false, -2, -2},
		{-3, false, -3, -4},
		{-7, false, -5, -8},
		{4, false, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tiered, TieredStreakBonus(tc.streak, tc.won), "tiered %d %v", tc.streak, tc.won)
		assert.Equal(t, tc.raw, RawStreakBonus(tc.streak, tc.won), "raw %d %v", tc.streak, tc.won)
	}
}

func TestByName(t *testing.T) {
	m, err := ByName("ledger")
	require.NoError(t, err)
	assert.Equal(t, ModelLedger, m.Name())

	m, err = ByName("preview")
	require.NoError(t, err)
	assert.Equal(t, ModelPreview, m.Name())

	_, err = ByName("elo")
	require.Error(t, err)
}
