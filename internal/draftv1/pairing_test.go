package draftv1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-draft/internal/draft"
)

func bestPairing(t *testing.T) draft.Pairing {
	t.Helper()
	var players []draft.Player
	for i := 0; i < draft.PlayersPerGame; i++ {
		players = append(players, draft.Player{
			ID:       int64(100 + i),
			Name:     "p",
			GameID:   "lol",
			Score:    350 + 40*i,
			MainLane: draft.Lanes[i%5],
			SubLane:  draft.Lanes[(i+3)%5],
		})
	}
	combos, err := draft.Combinations(players, 5)
	require.NoError(t, err)
	return combos[0]
}

func TestFromPairing(t *testing.T) {
	p := bestPairing(t)
	wire := FromPairing(p)

	assert.Equal(t, p.ScoreDifference(), wire.ScoreDifference)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, wire.AvailableCombinations)
	assert.Equal(t, p.Team1.Total(), wire.Team1.TotalScore)
	require.Len(t, wire.Team2.Players, 5)

	top, _ := p.Team1.Slot(draft.LaneTop)
	require.NotNil(t, wire.Team1.TopPlayer)
	assert.Equal(t, top.Player.ID, wire.Team1.TopPlayer.PlayerID)
	assert.Equal(t, top.AdjustedScore, wire.Team1.TopPlayer.AdjustedScore)
	assert.Equal(t, string(top.Position), wire.Team1.TopPlayer.PositionType)

	b, err := json.Marshal(wire)
	require.NoError(t, err)
	for _, key := range []string{`"team1"`, `"scoreDifference"`, `"mainPositionLowScoreBonus"`, `"availableCombinations"`, `"junglePlayer"`, `"originalScore"`, `"positionType"`} {
		assert.Contains(t, string(b), key)
	}
}

func TestToPairingRecomputes(t *testing.T) {
	p := bestPairing(t)
	wire := FromPairing(p)

	// client-supplied derived values are ignored
	wire.ScoreDifference = 0
	wire.Team1.TotalScore = 1
	wire.Team1.Players[0].AdjustedScore = 9999
	wire.MainPositionCount = 0

	back, err := ToPairing(wire)
	require.NoError(t, err)
	assert.Equal(t, p.ScoreDifference(), back.ScoreDifference())
	assert.Equal(t, p.MainPositionCount, back.MainPositionCount)
	assert.Equal(t, p.MainPositionLowScoreBonus, back.MainPositionLowScoreBonus)
	assert.Equal(t, p.Team1, back.Team1)
	assert.Equal(t, p.CurrentCombination, back.CurrentCombination)
}

func TestToPairingRejects(t *testing.T) {
	cases := map[string]func(p *Pairing){
		"short team":   func(p *Pairing) { p.Team1.Players = p.Team1.Players[:4] },
		"unknown lane": func(p *Pairing) { p.Team2.Players[0].AssignedPosition = "BOT" },
		"lane twice":   func(p *Pairing) { p.Team1.Players[1].AssignedPosition = p.Team1.Players[0].AssignedPosition },
		"player twice": func(p *Pairing) { p.Team2.Players[0].PlayerID = p.Team1.Players[0].PlayerID },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			wire := FromPairing(bestPairing(t))
			mutate(&wire)
			_, err := ToPairing(wire)
			require.Error(t, err)
		})
	}
}

func TestToSlotRef(t *testing.T) {
	ref, err := ToSlotRef(SlotRef{TeamNumber: 2, Position: "support"})
	require.NoError(t, err)
	assert.Equal(t, draft.SlotRef{Team: 2, Lane: draft.LaneSupport}, ref)

	_, err = ToSlotRef(SlotRef{TeamNumber: 0, Position: "TOP"})
	require.ErrorIs(t, err, draft.ErrUnknownSlot)
}
