package server

import (
	"team-draft/internal/domain"
	"team-draft/internal/draftv1"
)

func toProfile(p *domain.Profile) draftv1.Profile {
	return draftv1.Profile{ID: p.ID.String(), Username: p.Username, Email: p.Email, CreatedAt: p.CreatedAt}
}

func toPlayer(p domain.Player) draftv1.Player {
	return draftv1.Player{
		PlayerID:      p.ID,
		OwnerID:       p.OwnerID.String(),
		Name:          p.Name,
		LolID:         p.LolID,
		MainLane:      p.MainLane.String(),
		SubLane:       p.SubLane.String(),
		Score:         p.Score,
		WinLossStreak: p.WinLossStreak,
		CreatedAt:     p.CreatedAt,
	}
}

func toPlayers(ps []domain.Player) []draftv1.Player {
	out := make([]draftv1.Player, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPlayer(p))
	}
	return out
}

func fromPlayerInput(in draftv1.PlayerInput) domain.PlayerInput {
	return domain.PlayerInput{Name: in.Name, LolID: in.LolID, MainLane: in.MainLane, SubLane: in.SubLane, Score: in.Score}
}

func toPool(d *domain.PoolDetail) draftv1.Pool {
	out := draftv1.Pool{
		PoolID:       d.ID,
		OwnerID:      d.OwnerID.String(),
		Name:         d.Name,
		CreatedAt:    d.CreatedAt,
		Players:      toPlayers(d.Players),
		PlayersCount: len(d.Players),
	}
	for _, m := range d.Members {
		out.Members = append(out.Members, draftv1.PoolMember{ProfileID: m.ProfileID.String(), Username: m.Username, JoinedAt: m.JoinedAt})
	}
	return out
}

func fromGameRequest(in draftv1.GameRecordRequest) domain.GameRecordInput {
	out := domain.GameRecordInput{
		Team1Won:   in.Team1Won,
		Team1Kills: in.Team1Kills,
		Team2Kills: in.Team2Kills,
		Team1Gold:  in.Team1Gold,
		Team2Gold:  in.Team2Gold,
	}
	for _, l := range in.PlayerRecords {
		out.Lines = append(out.Lines, domain.LineInput{
			PlayerID: l.PlayerID,
			Team:     l.TeamNumber,
			Lane:     l.AssignedPosition,
			Kills:    l.Kills,
			Deaths:   l.Deaths,
			Assists:  l.Assists,
			CS:       l.CS,
		})
	}
	return out
}

func toLine(l domain.PlayerLine) draftv1.PlayerGameRecord {
	return draftv1.PlayerGameRecord{
		RecordID:            l.RecordID,
		PlayerID:            l.PlayerID,
		TeamNumber:          l.Team,
		AssignedPosition:    l.Lane.String(),
		Kills:               l.Kills,
		Deaths:              l.Deaths,
		Assists:             l.Assists,
		CS:                  l.CS,
		WinLossStreakAtGame: l.StreakAtGame,
		AppliedDelta:        l.AppliedDelta,
	}
}

func toGameRecord(g *domain.GameRecord) draftv1.GameRecord {
	out := draftv1.GameRecord{
		GameID:        g.ID,
		Team1Won:      g.Team1Won,
		Team1Kills:    g.Team1Kills,
		Team2Kills:    g.Team2Kills,
		Team1Gold:     g.Team1Gold,
		Team2Gold:     g.Team2Gold,
		IsApplied:     g.Applied,
		CreatedAt:     g.CreatedAt,
		PlayerRecords: make([]draftv1.PlayerGameRecord, 0, len(g.Lines)),
	}
	for _, l := range g.Lines {
		out.PlayerRecords = append(out.PlayerRecords, toLine(l))
	}
	return out
}

func toGameDetail(d *domain.GameRecordDetail) draftv1.GameRecord {
	out := toGameRecord(&d.GameRecord)
	out.ScoreModel = d.Model
	out.PlayerRecords = out.PlayerRecords[:0]
	for _, r := range d.Results {
		r := r
		line := toLine(r.PlayerLine)
		line.PlayerName = r.PlayerName
		line.BeforeScore = &r.BeforeScore
		line.AfterScore = &r.AfterScore
		line.ScoreChange = &r.ScoreChange
		line.StreakBonus = &r.StreakBonus
		out.PlayerRecords = append(out.PlayerRecords, line)
	}
	return out
}

func toSimulated(s domain.SimulatedScore) draftv1.SimulatedScore {
	return draftv1.SimulatedScore{
		GameID:           s.GameID,
		PlayerID:         s.PlayerID,
		PlayerName:       s.PlayerName,
		TeamNumber:       s.Team,
		AssignedPosition: s.Lane.String(),
		IsWinner:         s.Won,
		Kills:            s.Kills,
		Deaths:           s.Deaths,
		Assists:          s.Assists,
		CS:               s.CS,
		BeforeScore:      s.BeforeScore,
		AfterScore:       s.AfterScore,
		ScoreChange:      s.ScoreChange,
		StreakBonus:      s.StreakBonus,
		PlayedAt:         s.PlayedAt,
	}
}
