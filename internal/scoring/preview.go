package scoring

import "team-draft/internal/draft"

var previewLaneCoef = map[draft.Lane]float64{
	draft.LaneTop:     1.5,
	draft.LaneJungle:  1.2,
	draft.LaneMid:     1.2,
	draft.LaneADC:     1.0,
	draft.LaneSupport: 0.8,
}

// Preview is the lighter formula shown to players before a game is applied.
type Preview struct{}

func (Preview) Name() string { return ModelPreview }

func (Preview) Evaluate(g Game) []Result {
	return evaluate(g, func(l Line, won bool) int { return previewPerformance(g, l, won) }, RawStreakBonus)
}

func previewPerformance(g Game, l Line, won bool) int {
	total := 0
	if !won {
		total = -15
	}

	coef, ok := previewLaneCoef[l.Lane]
	if !ok {
		coef = 1.0
	}
	total += signed(draft.Round(l.kda()*coef), won)

	kills, gold, oppKills, oppGold := g.teamStats(l.Team)
	if oppGold == 0 {
		oppGold = 1
	}
	total += signed(draft.Round(float64(gold)/float64(oppGold)*3), won)
	total += signed(draft.Round(float64(kills-oppKills)*0.5), won)

	opp, ok := g.opponent(l)
	if !ok {
		return total
	}
	total += signed(draft.Round(ratio(float64(l.CS), float64(opp.CS))*3), l.CS > opp.CS)

	my, their := float64(l.Score), float64(opp.Score)
	switch {
	case l.Score < opp.Score:
		r := their / max(my, 1)
		if won {
			total += draft.Round(r * 5)
		} else {
			total += draft.Round(r * 2)
		}
	case l.Score > opp.Score:
		r := my / max(their, 1)
		if won {
			total -= draft.Round(r * 2)
		} else {
			total -= draft.Round(r * 5)
		}
	}
	return total
}
