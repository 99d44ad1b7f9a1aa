package server

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-draft/internal/auth"
	"team-draft/internal/config"
	"team-draft/internal/database"
	"team-draft/internal/db"
	"team-draft/internal/domain"
	"team-draft/internal/draft"
	"team-draft/internal/draftv1"
	"team-draft/internal/repository"
	"team-draft/internal/scoring"
	"team-draft/internal/service"
)

type harness struct {
	srv   *httptest.Server
	token string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := zerolog.Nop()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "server.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{
		JWTSecret:           "server-secret",
		TokenTTL:            time.Hour,
		ScoreModel:          scoring.ModelLedger,
		CombinationLimit:    10,
		CombinationCacheTTL: time.Minute,
	}
	q := db.New(sqlDB)
	playerRepo := repository.NewPlayerRepository(sqlDB, q, log)
	poolRepo := repository.NewPoolRepository(sqlDB, q, log)
	tokens := auth.NewTokens(cfg)

	s := NewDraftServer(
		service.NewProfileService(repository.NewProfileRepository(sqlDB, q, log), tokens, log),
		service.NewPlayerService(playerRepo, log),
		service.NewPoolService(poolRepo, playerRepo, log),
		service.NewTeamService(playerRepo, poolRepo, cfg, log),
		service.NewGameRecordService(repository.NewGameRecordRepository(sqlDB, q, log), playerRepo, scoring.Ledger{}, log),
		tokens,
		log,
	)
	path, handler := s.Handler()
	assert.Equal(t, "/teamdraft.v1.TeamDraftService/", path)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &harness{srv: srv}
}

func call[Req, Res any](h *harness, procedure string, msg *Req) (*Res, error) {
	client := connect.NewClient[Req, Res](h.srv.Client(), h.srv.URL+procedure, connect.WithCodec(Codec()))
	req := connect.NewRequest(msg)
	if h.token != "" {
		req.Header().Set("Authorization", "Bearer "+h.token)
	}
	resp, err := client.CallUnary(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (h *harness) login(t *testing.T, email string) {
	t.Helper()
	_, err := call[draftv1.RegisterRequest, draftv1.Profile](h, draftv1.RegisterProcedure, &draftv1.RegisterRequest{
		Username: "caster", Email: email, Password: "password123",
	})
	require.NoError(t, err)
	resp, err := call[draftv1.LoginRequest, draftv1.LoginResponse](h, draftv1.LoginProcedure, &draftv1.LoginRequest{
		Email: email, Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	h.token = resp.Token
}

func (h *harness) roster(t *testing.T) []int64 {
	t.Helper()
	var ids []int64
	for i := 0; i < draft.PlayersPerGame; i++ {
		p, err := call[draftv1.PlayerInput, draftv1.Player](h, draftv1.CreatePlayerProcedure, &draftv1.PlayerInput{
			Name:     fmt.Sprintf("p%d", i),
			LolID:    fmt.Sprintf("lol%d", i),
			MainLane: string(draft.Lanes[i%5]),
			SubLane:  string(draft.Lanes[(i+1)%5]),
			Score:    400 + 25*i,
		})
		require.NoError(t, err)
		ids = append(ids, p.PlayerID)
	}
	return ids
}

func TestRequiresToken(t *testing.T) {
	h := newHarness(t)

	_, err := call[draftv1.Empty, draftv1.ListPlayersResponse](h, draftv1.ListPlayersProcedure, &draftv1.Empty{})
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	h.token = "not-a-token"
	_, err = call[draftv1.Empty, draftv1.ListPlayersResponse](h, draftv1.ListPlayersProcedure, &draftv1.Empty{})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	h.token = ""
	_, err = call[draftv1.LoginRequest, draftv1.LoginResponse](h, draftv1.LoginProcedure, &draftv1.LoginRequest{Email: "x@y.io", Password: "password123"})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestErrorCodes(t *testing.T) {
	h := newHarness(t)
	h.login(t, "codes@test.io")

	_, err := call[draftv1.PlayerInput, draftv1.Player](h, draftv1.CreatePlayerProcedure, &draftv1.PlayerInput{
		Name: "x", LolID: "x", MainLane: "TOP", SubLane: "TOP", Score: 500,
	})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = call[draftv1.PoolIDRequest, draftv1.Pool](h, draftv1.GetPoolProcedure, &draftv1.PoolIDRequest{PoolID: 999})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = call[draftv1.RegisterRequest, draftv1.Profile](h, draftv1.RegisterProcedure, &draftv1.RegisterRequest{
		Username: "again", Email: "codes@test.io", Password: "password123",
	})
	assert.Equal(t, connect.CodeAlreadyExists, connect.CodeOf(err))

	_, err = call[draftv1.GenerateTeamsRequest, draftv1.Pairing](h, draftv1.GenerateTeamsProcedure, &draftv1.GenerateTeamsRequest{PlayerIDs: []int64{1, 2, 3}})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestToConnectError(t *testing.T) {
	cases := []struct {
		err  error
		want connect.Code
	}{
		{fmt.Errorf("pool 3: %w", domain.ErrNotFound), connect.CodeNotFound},
		{domain.ErrForbidden, connect.CodePermissionDenied},
		{domain.ErrInvalidArgument, connect.CodeInvalidArgument},
		{domain.ErrConflict, connect.CodeAlreadyExists},
		{domain.ErrUnauthenticated, connect.CodeUnauthenticated},
		{domain.ErrFailedPrecondition, connect.CodeFailedPrecondition},
		{errors.New("disk on fire"), connect.CodeInternal},
	}
	for _, tc := range cases {
		got := toConnectError(zerolog.Nop(), "/x", tc.err)
		assert.Equal(t, tc.want, connect.CodeOf(got), tc.err.Error())
	}
	assert.NotContains(t, toConnectError(zerolog.Nop(), "/x", errors.New("disk on fire")).Error(), "disk")
}

func TestTeamProcedures(t *testing.T) {
	h := newHarness(t)
	h.login(t, "teams@test.io")
	ids := h.roster(t)

	best, err := call[draftv1.GenerateTeamsRequest, draftv1.Pairing](h, draftv1.GenerateTeamsProcedure, &draftv1.GenerateTeamsRequest{PlayerIDs: ids})
	require.NoError(t, err)
	assert.Equal(t, 1, best.CurrentCombination)
	assert.Equal(t, 10, best.TotalCombinations)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, best.AvailableCombinations)
	require.Len(t, best.Team1.Players, 5)
	require.Len(t, best.Team2.Players, 5)
	require.NotNil(t, best.Team1.TopPlayer)
	assert.Equal(t, "TOP", best.Team1.TopPlayer.AssignedPosition)

	seen := map[int64]bool{}
	for _, p := range append(best.Team1.Players, best.Team2.Players...) {
		seen[p.PlayerID] = true
	}
	assert.Len(t, seen, 10)

	third, err := call[draftv1.RerollTeamsRequest, draftv1.Pairing](h, draftv1.RerollTeamsProcedure, &draftv1.RerollTeamsRequest{PlayerIDs: ids, CombinationIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, third.CurrentCombination)

	swapped, err := call[draftv1.SwapPlayersRequest, draftv1.Pairing](h, draftv1.SwapPlayersProcedure, &draftv1.SwapPlayersRequest{
		Pairing: *best,
		From:    draftv1.SlotRef{TeamNumber: 1, Position: "TOP"},
		To:      draftv1.SlotRef{TeamNumber: 2, Position: "MID"},
	})
	require.NoError(t, err)
	assert.Equal(t, best.Team1.TopPlayer.PlayerID, swapped.Team2.MidPlayer.PlayerID)
	assert.Equal(t, best.Team2.MidPlayer.PlayerID, swapped.Team1.TopPlayer.PlayerID)
	assert.Equal(t, abs(swapped.Team1.TotalScore-swapped.Team2.TotalScore), swapped.ScoreDifference)

	back, err := call[draftv1.SwapPlayersRequest, draftv1.Pairing](h, draftv1.SwapPlayersProcedure, &draftv1.SwapPlayersRequest{
		Pairing: *swapped,
		From:    draftv1.SlotRef{TeamNumber: 1, Position: "TOP"},
		To:      draftv1.SlotRef{TeamNumber: 2, Position: "MID"},
	})
	require.NoError(t, err)
	assert.Equal(t, best.ScoreDifference, back.ScoreDifference)
	assert.Equal(t, best.MainPositionCount, back.MainPositionCount)

	_, err = call[draftv1.SwapPlayersRequest, draftv1.Pairing](h, draftv1.SwapPlayersProcedure, &draftv1.SwapPlayersRequest{
		Pairing: *best,
		From:    draftv1.SlotRef{TeamNumber: 3, Position: "TOP"},
		To:      draftv1.SlotRef{TeamNumber: 2, Position: "MID"},
	})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func abs(d int) int {
	if d < 0 {
		return -d
	}
	return d
}

func TestGameProcedures(t *testing.T) {
	h := newHarness(t)
	h.login(t, "games@test.io")
	ids := h.roster(t)

	req := draftv1.GameRecordRequest{Team1Won: true, Team1Kills: 20, Team2Kills: 10, Team1Gold: 60000, Team2Gold: 50000}
	for i, id := range ids {
		req.PlayerRecords = append(req.PlayerRecords, draftv1.PlayerGameRecordInput{
			PlayerID:         id,
			TeamNumber:       i/5 + 1,
			AssignedPosition: string(draft.Lanes[i%5]),
			Kills:            i, Deaths: 2, Assists: 3, CS: 100 + i,
		})
	}
	created, err := call[draftv1.GameRecordRequest, draftv1.GameRecord](h, draftv1.CreateGameProcedure, &req)
	require.NoError(t, err)
	assert.False(t, created.IsApplied)
	assert.Len(t, created.PlayerRecords, 10)

	detail, err := call[draftv1.GameIDRequest, draftv1.GameRecord](h, draftv1.GetGameProcedure, &draftv1.GameIDRequest{GameID: created.GameID})
	require.NoError(t, err)
	assert.Equal(t, scoring.ModelLedger, detail.ScoreModel)
	for _, l := range detail.PlayerRecords {
		require.NotNil(t, l.ScoreChange)
		assert.NotEmpty(t, l.PlayerName)
	}

	applied, err := call[draftv1.GameIDRequest, draftv1.GameRecord](h, draftv1.ApplyGameProcedure, &draftv1.GameIDRequest{GameID: created.GameID})
	require.NoError(t, err)
	assert.True(t, applied.IsApplied)

	_, err = call[draftv1.GameIDRequest, draftv1.GameRecord](h, draftv1.ApplyGameProcedure, &draftv1.GameIDRequest{GameID: created.GameID})
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	list, err := call[draftv1.Empty, draftv1.ListGameRecordsResponse](h, draftv1.ListGamesProcedure, &draftv1.Empty{})
	require.NoError(t, err)
	require.Len(t, list.GameRecords, 1)

	sims, err := call[draftv1.Empty, draftv1.SimulateScoresResponse](h, draftv1.SimulateScoresProcedure, &draftv1.Empty{})
	require.NoError(t, err)
	assert.Len(t, sims.Scores, 10)

	_, err = call[draftv1.GameIDRequest, draftv1.GameRecord](h, draftv1.CancelGameProcedure, &draftv1.GameIDRequest{GameID: created.GameID})
	require.NoError(t, err)
	_, err = call[draftv1.GameIDRequest, draftv1.Empty](h, draftv1.DeleteGameProcedure, &draftv1.GameIDRequest{GameID: created.GameID})
	require.NoError(t, err)
	_, err = call[draftv1.GameIDRequest, draftv1.GameRecord](h, draftv1.GetGameProcedure, &draftv1.GameIDRequest{GameID: created.GameID})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
