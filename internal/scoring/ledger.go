package scoring

import "team-draft/internal/draft"

var ledgerLaneCoef = map[draft.Lane]float64{
	draft.LaneTop:     2.0,
	draft.LaneJungle:  1.5,
	draft.LaneMid:     1.5,
	draft.LaneADC:     1.2,
	draft.LaneSupport: 1.0,
}

// Ledger is the model that is written to player scores when a game is applied.
type Ledger struct{}

func (Ledger) Name() string { return ModelLedger }

func (Ledger) Evaluate(g Game) []Result {
	return evaluate(g, func(l Line, won bool) int { return ledgerPerformance(g, l, won) }, TieredStreakBonus)
}

func ledgerPerformance(g Game, l Line, won bool) int {
	total := signed(7, won)

	coef, ok := ledgerLaneCoef[l.Lane]
	if !ok {
		coef = 1.0
	}
	kda := l.kda()
	opp, hasOpp := g.opponent(l)
	oppKDA := 1.0
	if hasOpp {
		oppKDA = opp.kda()
	}
	if won {
		total += draft.Round(kda * coef)
	} else {
		div := kda
		if div == 0 {
			div = 1
		}
		total -= draft.Round(oppKDA / div * coef)
	}

	kills, gold, oppKills, oppGold := g.teamStats(l.Team)
	if oppGold == 0 {
		oppGold = 1
	}
	total += signed(draft.Round(float64(gold)/float64(oppGold)*5), won)
	total += signed(draft.Round(float64(kills-oppKills)*0.5), won)

	if !hasOpp {
		return total
	}
	total += signed(draft.Round(ratio(float64(l.CS), float64(opp.CS))*5), l.CS > opp.CS)
	total += signed(draft.Round(ratio(kda, oppKDA)*5), kda > oppKDA)
	if l.Score < opp.Score {
		c := ratio(float64(l.Score), float64(opp.Score))
		if won {
			total += draft.Round(c*3) - draft.Round(c*5)
		} else {
			total += draft.Round(c) - draft.Round(c*3)
		}
	}
	return total
}
