package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-draft/internal/database"
	"team-draft/internal/db"
	"team-draft/internal/domain"
	"team-draft/internal/draft"
)

type repos struct {
	profiles *ProfileRepository
	players  *PlayerRepository
	pools    *PoolRepository
	games    *GameRecordRepository
}

func newRepos(t *testing.T) repos {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	log := zerolog.Nop()
	return repos{
		profiles: NewProfileRepository(sqlDB, q, log),
		players:  NewPlayerRepository(sqlDB, q, log),
		pools:    NewPoolRepository(sqlDB, q, log),
		games:    NewGameRecordRepository(sqlDB, q, log),
	}
}

func (r repos) profile(t *testing.T, email string) *domain.Profile {
	t.Helper()
	p, err := r.profiles.Create(context.Background(), "user", email, "hash")
	require.NoError(t, err)
	return p
}

func (r repos) tenPlayers(t *testing.T, owner uuid.UUID) []domain.Player {
	t.Helper()
	var out []domain.Player
	for i := 0; i < 10; i++ {
		p, err := r.players.Create(context.Background(), domain.Player{
			OwnerID:  owner,
			Name:     "player",
			LolID:    uuid.NewString(),
			MainLane: draft.Lanes[i%5],
			SubLane:  draft.Lanes[(i+1)%5],
			Score:    400 + 10*i,
		})
		require.NoError(t, err)
		out = append(out, *p)
	}
	return out
}

func gameFor(owner uuid.UUID, players []domain.Player) domain.GameRecord {
	rec := domain.GameRecord{UserID: owner, Team1Won: true, Team1Kills: 20, Team2Kills: 10, Team1Gold: 60000, Team2Gold: 50000}
	for i, p := range players {
		rec.Lines = append(rec.Lines, domain.PlayerLine{
			PlayerID: p.ID, Team: 1 + i/5, Lane: draft.Lanes[i%5], Kills: 3, Deaths: 2, Assists: 4, CS: 180,
		})
	}
	return rec
}

func TestProfileRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	p := r.profile(t, "a@test.io")
	got, hash, err := r.profiles.GetByEmail(ctx, "a@test.io")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "hash", hash)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = r.profiles.Create(ctx, "other", "a@test.io", "hash")
	require.ErrorIs(t, err, domain.ErrConflict)

	_, _, err = r.profiles.GetByEmail(ctx, "missing@test.io")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlayerRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	owner := r.profile(t, "a@test.io")

	players := r.tenPlayers(t, owner.ID)
	listed, err := r.players.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 10)
	assert.Equal(t, 0, listed[0].WinLossStreak)

	some, err := r.players.ListByIDs(ctx, []int64{players[3].ID, players[1].ID, 9999})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, players[1].ID, some[0].ID)

	none, err := r.players.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	p := players[0]
	p.Score = 777
	require.NoError(t, r.players.Update(ctx, p))
	got, err := r.players.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 777, got.Score)

	_, err = r.games.Create(ctx, gameFor(owner.ID, players))
	require.NoError(t, err)
	require.ErrorIs(t, r.players.Delete(ctx, p.ID), domain.ErrFailedPrecondition)

	extra, err := r.players.Create(ctx, domain.Player{OwnerID: owner.ID, Name: "x", LolID: "x", MainLane: draft.LaneTop, SubLane: draft.LaneMid, Score: 1})
	require.NoError(t, err)
	require.NoError(t, r.players.Delete(ctx, extra.ID))
	_, err = r.players.Get(ctx, extra.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPoolRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	owner := r.profile(t, "owner@test.io")
	member := r.profile(t, "member@test.io")
	players := r.tenPlayers(t, owner.ID)

	pool, err := r.pools.Create(ctx, owner.ID, "friday", []int64{players[0].ID, players[1].ID})
	require.NoError(t, err)

	inPool, err := r.pools.Players(ctx, pool.ID)
	require.NoError(t, err)
	assert.Len(t, inPool, 2)

	require.NoError(t, r.pools.AddMember(ctx, pool.ID, member.ID))
	require.ErrorIs(t, r.pools.AddMember(ctx, pool.ID, member.ID), domain.ErrConflict)

	ok, err := r.pools.IsMember(ctx, pool.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	listed, err := r.pools.ListFor(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "friday", listed[0].Name)

	members, err := r.pools.Members(ctx, pool.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, member.ID, members[0].ProfileID)

	dup, err := r.pools.HasLolID(ctx, pool.ID, players[0].LolID, 0)
	require.NoError(t, err)
	assert.True(t, dup)
	dup, err = r.pools.HasLolID(ctx, pool.ID, players[0].LolID, players[0].ID)
	require.NoError(t, err)
	assert.False(t, dup)

	added, err := r.pools.AddNewPlayer(ctx, pool.ID, domain.Player{OwnerID: member.ID, Name: "new", LolID: "new#kr", MainLane: draft.LaneADC, SubLane: draft.LaneSupport, Score: 500})
	require.NoError(t, err)
	has, err := r.pools.HasPlayer(ctx, pool.ID, added.ID)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, r.pools.Delete(ctx, pool.ID))
	_, err = r.pools.Get(ctx, pool.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.players.Get(ctx, players[0].ID)
	require.NoError(t, err, "players survive their pool")
}

func TestGameRecordApplyCancel(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	owner := r.profile(t, "a@test.io")
	players := r.tenPlayers(t, owner.ID)

	rec, err := r.games.Create(ctx, gameFor(owner.ID, players))
	require.NoError(t, err)
	require.Len(t, rec.Lines, 10)
	assert.False(t, rec.Applied)
	assert.Equal(t, draft.LaneTop, rec.Lines[0].Lane)
	assert.NotEmpty(t, rec.Lines[0].RecordID)

	line := rec.Lines[0]
	score, streak, delta := 400, 0, 25
	apply := []domain.ScoreChange{{
		RecordID: line.RecordID, PlayerID: line.PlayerID, NewScore: 425, NewStreak: 1,
		ScoreAtGame: &score, StreakAtGame: &streak, Delta: &delta,
	}}
	require.NoError(t, r.games.Apply(ctx, rec.ID, apply))
	require.ErrorIs(t, r.games.Apply(ctx, rec.ID, apply), domain.ErrFailedPrecondition)

	got, err := r.games.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Applied)
	require.NotNil(t, got.Lines[0].AppliedDelta)
	assert.Equal(t, 25, *got.Lines[0].AppliedDelta)
	p, err := r.players.Get(ctx, line.PlayerID)
	require.NoError(t, err)
	assert.Equal(t, 425, p.Score)
	assert.Equal(t, 1, p.WinLossStreak)

	cancel := []domain.ScoreChange{{RecordID: line.RecordID, PlayerID: line.PlayerID, NewScore: 400, NewStreak: 0}}
	require.NoError(t, r.games.Cancel(ctx, rec.ID, cancel))
	require.ErrorIs(t, r.games.Cancel(ctx, rec.ID, cancel), domain.ErrFailedPrecondition)

	got, err = r.games.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, got.Applied)
	assert.Nil(t, got.Lines[0].AppliedDelta)

	list, err := r.games.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, r.games.Delete(ctx, rec.ID))
	_, err = r.games.Get(ctx, rec.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGameRecordReplace(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	owner := r.profile(t, "a@test.io")
	players := r.tenPlayers(t, owner.ID)

	rec, err := r.games.Create(ctx, gameFor(owner.ID, players))
	require.NoError(t, err)
	require.NoError(t, r.games.Apply(ctx, rec.ID, nil))

	updated := gameFor(owner.ID, players)
	updated.ID = rec.ID
	updated.Team1Won = false
	updated.Lines[0].Kills = 11
	got, err := r.games.Replace(ctx, updated, nil)
	require.NoError(t, err)
	assert.False(t, got.Applied)
	assert.False(t, got.Team1Won)
	assert.Equal(t, 11, got.Lines[0].Kills)
	assert.NotEqual(t, rec.Lines[0].RecordID, got.Lines[0].RecordID)
}
