package server

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-draft/internal/auth"
	"team-draft/internal/domain"
	"team-draft/internal/draftv1"
	"team-draft/internal/service"
)

type DraftServer struct {
	profileSvc *service.ProfileService
	playerSvc  *service.PlayerService
	poolSvc    *service.PoolService
	teamSvc    *service.TeamService
	gameSvc    *service.GameRecordService
	tokens     *auth.Tokens
	logger     zerolog.Logger
}

func NewDraftServer(
	profileSvc *service.ProfileService,
	playerSvc *service.PlayerService,
	poolSvc *service.PoolService,
	teamSvc *service.TeamService,
	gameSvc *service.GameRecordService,
	tokens *auth.Tokens,
	logger zerolog.Logger,
) *DraftServer {
	return &DraftServer{
		profileSvc: profileSvc,
		playerSvc:  playerSvc,
		poolSvc:    poolSvc,
		teamSvc:    teamSvc,
		gameSvc:    gameSvc,
		tokens:     tokens,
		logger:     logger,
	}
}

// Handler returns the path prefix and handler serving every procedure of the
// service. Register and Login are the only calls that skip authentication.
func (s *DraftServer) Handler() (string, http.Handler) {
	opts := []connect.HandlerOption{
		connect.WithCodec(Codec()),
		connect.WithInterceptors(auth.NewInterceptor(s.tokens, draftv1.PublicProcedures...)),
	}
	mux := http.NewServeMux()
	handle := func(procedure string, h http.Handler) { mux.Handle(procedure, h) }

	handle(draftv1.RegisterProcedure, connect.NewUnaryHandler(draftv1.RegisterProcedure, s.Register, opts...))
	handle(draftv1.LoginProcedure, connect.NewUnaryHandler(draftv1.LoginProcedure, s.Login, opts...))
	handle(draftv1.CreatePlayerProcedure, connect.NewUnaryHandler(draftv1.CreatePlayerProcedure, s.CreatePlayer, opts...))
	handle(draftv1.ListPlayersProcedure, connect.NewUnaryHandler(draftv1.ListPlayersProcedure, s.ListPlayers, opts...))
	handle(draftv1.DeletePlayerProcedure, connect.NewUnaryHandler(draftv1.DeletePlayerProcedure, s.DeletePlayer, opts...))
	handle(draftv1.CreatePoolProcedure, connect.NewUnaryHandler(draftv1.CreatePoolProcedure, s.CreatePool, opts...))
	handle(draftv1.ListPoolsProcedure, connect.NewUnaryHandler(draftv1.ListPoolsProcedure, s.ListPools, opts...))
	handle(draftv1.GetPoolProcedure, connect.NewUnaryHandler(draftv1.GetPoolProcedure, s.GetPool, opts...))
	handle(draftv1.AddPoolPlayerProcedure, connect.NewUnaryHandler(draftv1.AddPoolPlayerProcedure, s.AddPoolPlayer, opts...))
	handle(draftv1.UpdatePoolPlayerProcedure, connect.NewUnaryHandler(draftv1.UpdatePoolPlayerProcedure, s.UpdatePoolPlayer, opts...))
	handle(draftv1.JoinPoolProcedure, connect.NewUnaryHandler(draftv1.JoinPoolProcedure, s.JoinPool, opts...))
	handle(draftv1.DeletePoolProcedure, connect.NewUnaryHandler(draftv1.DeletePoolProcedure, s.DeletePool, opts...))
	handle(draftv1.GetPoolRankingProcedure, connect.NewUnaryHandler(draftv1.GetPoolRankingProcedure, s.GetPoolRanking, opts...))
	handle(draftv1.GenerateTeamsProcedure, connect.NewUnaryHandler(draftv1.GenerateTeamsProcedure, s.GenerateTeams, opts...))
	handle(draftv1.RerollTeamsProcedure, connect.NewUnaryHandler(draftv1.RerollTeamsProcedure, s.RerollTeams, opts...))
	handle(draftv1.SwapPlayersProcedure, connect.NewUnaryHandler(draftv1.SwapPlayersProcedure, s.SwapPlayers, opts...))
	handle(draftv1.CreateGameProcedure, connect.NewUnaryHandler(draftv1.CreateGameProcedure, s.CreateGameRecord, opts...))
	handle(draftv1.ListGamesProcedure, connect.NewUnaryHandler(draftv1.ListGamesProcedure, s.ListGameRecords, opts...))
	handle(draftv1.GetGameProcedure, connect.NewUnaryHandler(draftv1.GetGameProcedure, s.GetGameRecord, opts...))
	handle(draftv1.UpdateGameProcedure, connect.NewUnaryHandler(draftv1.UpdateGameProcedure, s.UpdateGameRecord, opts...))
	handle(draftv1.ApplyGameProcedure, connect.NewUnaryHandler(draftv1.ApplyGameProcedure, s.ApplyGameRecord, opts...))
	handle(draftv1.CancelGameProcedure, connect.NewUnaryHandler(draftv1.CancelGameProcedure, s.CancelGameRecord, opts...))
	handle(draftv1.DeleteGameProcedure, connect.NewUnaryHandler(draftv1.DeleteGameProcedure, s.DeleteGameRecord, opts...))
	handle(draftv1.SimulateScoresProcedure, connect.NewUnaryHandler(draftv1.SimulateScoresProcedure, s.SimulateScores, opts...))

	return "/" + draftv1.ServiceName + "/", mux
}

// fail logs through the request logger when the request id middleware
// attached one.
func (s *DraftServer) fail(ctx context.Context, procedure string, err error) error {
	logger := s.logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		logger = *l
	}
	return toConnectError(logger, procedure, err)
}

// caller is the authenticated profile. The interceptor guarantees it for
// every non-public procedure.
func caller(ctx context.Context) (uuid.UUID, error) {
	id, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, connect.NewError(connect.CodeUnauthenticated, errors.New("no session"))
	}
	return id, nil
}

func (s *DraftServer) Register(ctx context.Context, req *connect.Request[draftv1.RegisterRequest]) (*connect.Response[draftv1.Profile], error) {
	p, err := s.profileSvc.Register(ctx, domain.RegisterInput{
		Username: req.Msg.Username,
		Email:    req.Msg.Email,
		Password: req.Msg.Password,
	})
	if err != nil {
		return nil, s.fail(ctx, draftv1.RegisterProcedure, err)
	}
	return connect.NewResponse(ptr(toProfile(p))), nil
}

func (s *DraftServer) Login(ctx context.Context, req *connect.Request[draftv1.LoginRequest]) (*connect.Response[draftv1.LoginResponse], error) {
	token, p, err := s.profileSvc.Login(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		return nil, s.fail(ctx, draftv1.LoginProcedure, err)
	}
	return connect.NewResponse(&draftv1.LoginResponse{Token: token, Profile: toProfile(p)}), nil
}

func (s *DraftServer) CreatePlayer(ctx context.Context, req *connect.Request[draftv1.PlayerInput]) (*connect.Response[draftv1.Player], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.playerSvc.Create(ctx, user, fromPlayerInput(*req.Msg))
	if err != nil {
		return nil, s.fail(ctx, draftv1.CreatePlayerProcedure, err)
	}
	return connect.NewResponse(ptr(toPlayer(*p))), nil
}

func (s *DraftServer) ListPlayers(ctx context.Context, req *connect.Request[draftv1.Empty]) (*connect.Response[draftv1.ListPlayersResponse], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.playerSvc.List(ctx, user)
	if err != nil {
		return nil, s.fail(ctx, draftv1.ListPlayersProcedure, err)
	}
	return connect.NewResponse(&draftv1.ListPlayersResponse{Players: toPlayers(players)}), nil
}

func (s *DraftServer) DeletePlayer(ctx context.Context, req *connect.Request[draftv1.PlayerIDRequest]) (*connect.Response[draftv1.Empty], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.playerSvc.Delete(ctx, user, req.Msg.PlayerID); err != nil {
		return nil, s.fail(ctx, draftv1.DeletePlayerProcedure, err)
	}
	return connect.NewResponse(&draftv1.Empty{}), nil
}

func (s *DraftServer) CreatePool(ctx context.Context, req *connect.Request[draftv1.CreatePoolRequest]) (*connect.Response[draftv1.Pool], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := s.poolSvc.Create(ctx, user, domain.PoolInput{Name: req.Msg.Name, PlayerIDs: req.Msg.PlayerIDs})
	if err != nil {
		return nil, s.fail(ctx, draftv1.CreatePoolProcedure, err)
	}
	return connect.NewResponse(ptr(toPool(pool))), nil
}

func (s *DraftServer) ListPools(ctx context.Context, req *connect.Request[draftv1.Empty]) (*connect.Response[draftv1.ListPoolsResponse], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := s.poolSvc.List(ctx, user)
	if err != nil {
		return nil, s.fail(ctx, draftv1.ListPoolsProcedure, err)
	}
	resp := &draftv1.ListPoolsResponse{Pools: make([]draftv1.Pool, 0, len(pools))}
	for i := range pools {
		resp.Pools = append(resp.Pools, toPool(&pools[i]))
	}
	return connect.NewResponse(resp), nil
}

func (s *DraftServer) GetPool(ctx context.Context, req *connect.Request[draftv1.PoolIDRequest]) (*connect.Response[draftv1.Pool], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := s.poolSvc.Get(ctx, user, req.Msg.PoolID)
	if err != nil {
		return nil, s.fail(ctx, draftv1.GetPoolProcedure, err)
	}
	return connect.NewResponse(ptr(toPool(pool))), nil
}

func (s *DraftServer) AddPoolPlayer(ctx context.Context, req *connect.Request[draftv1.AddPoolPlayerRequest]) (*connect.Response[draftv1.Player], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.poolSvc.AddPlayer(ctx, user, req.Msg.PoolID, fromPlayerInput(req.Msg.Player))
	if err != nil {
		return nil, s.fail(ctx, draftv1.AddPoolPlayerProcedure, err)
	}
	return connect.NewResponse(ptr(toPlayer(*p))), nil
}

func (s *DraftServer) UpdatePoolPlayer(ctx context.Context, req *connect.Request[draftv1.UpdatePoolPlayerRequest]) (*connect.Response[draftv1.Player], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.poolSvc.UpdatePlayer(ctx, user, req.Msg.PoolID, req.Msg.PlayerID, fromPlayerInput(req.Msg.Player))
	if err != nil {
		return nil, s.fail(ctx, draftv1.UpdatePoolPlayerProcedure, err)
	}
	return connect.NewResponse(ptr(toPlayer(*p))), nil
}

func (s *DraftServer) JoinPool(ctx context.Context, req *connect.Request[draftv1.JoinPoolRequest]) (*connect.Response[draftv1.Pool], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := s.poolSvc.Join(ctx, user, req.Msg.PoolID, req.Msg.PoolName)
	if err != nil {
		return nil, s.fail(ctx, draftv1.JoinPoolProcedure, err)
	}
	return connect.NewResponse(ptr(toPool(pool))), nil
}

func (s *DraftServer) DeletePool(ctx context.Context, req *connect.Request[draftv1.PoolIDRequest]) (*connect.Response[draftv1.Empty], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.poolSvc.Delete(ctx, user, req.Msg.PoolID); err != nil {
		return nil, s.fail(ctx, draftv1.DeletePoolProcedure, err)
	}
	return connect.NewResponse(&draftv1.Empty{}), nil
}

func (s *DraftServer) GetPoolRanking(ctx context.Context, req *connect.Request[draftv1.PoolIDRequest]) (*connect.Response[draftv1.PoolRanking], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.poolSvc.Ranking(ctx, user, req.Msg.PoolID)
	if err != nil {
		return nil, s.fail(ctx, draftv1.GetPoolRankingProcedure, err)
	}
	return connect.NewResponse(&draftv1.PoolRanking{
		PoolID:            r.Pool.ID,
		Name:              r.Pool.Name,
		Players:           toPlayers(r.Players),
		MeanScore:         r.MeanScore,
		MedianScore:       r.MedianScore,
		StandardDeviation: r.StandardDeviation,
	}), nil
}

func (s *DraftServer) GenerateTeams(ctx context.Context, req *connect.Request[draftv1.GenerateTeamsRequest]) (*connect.Response[draftv1.Pairing], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.teamSvc.Generate(ctx, user, req.Msg.PlayerIDs)
	if err != nil {
		return nil, s.fail(ctx, draftv1.GenerateTeamsProcedure, err)
	}
	return connect.NewResponse(ptr(draftv1.FromPairing(p))), nil
}

// RerollTeams takes a 0-based index into the ranked combinations. Clients
// step forward by sending currentCombination % totalCombinations.
func (s *DraftServer) RerollTeams(ctx context.Context, req *connect.Request[draftv1.RerollTeamsRequest]) (*connect.Response[draftv1.Pairing], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.teamSvc.Reroll(ctx, user, req.Msg.PlayerIDs, req.Msg.CombinationIndex)
	if err != nil {
		return nil, s.fail(ctx, draftv1.RerollTeamsProcedure, err)
	}
	return connect.NewResponse(ptr(draftv1.FromPairing(p))), nil
}

func (s *DraftServer) SwapPlayers(ctx context.Context, req *connect.Request[draftv1.SwapPlayersRequest]) (*connect.Response[draftv1.Pairing], error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	pairing, err := draftv1.ToPairing(req.Msg.Pairing)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	from, err := draftv1.ToSlotRef(req.Msg.From)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	to, err := draftv1.ToSlotRef(req.Msg.To)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	out, err := s.teamSvc.Swap(pairing, from, to)
	if err != nil {
		return nil, s.fail(ctx, draftv1.SwapPlayersProcedure, err)
	}
	return connect.NewResponse(ptr(draftv1.FromPairing(out))), nil
}

func (s *DraftServer) CreateGameRecord(ctx context.Context, req *connect.Request[draftv1.GameRecordRequest]) (*connect.Response[draftv1.GameRecord], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.gameSvc.Create(ctx, user, fromGameRequest(*req.Msg))
	if err != nil {
		return nil, s.fail(ctx, draftv1.CreateGameProcedure, err)
	}
	return connect.NewResponse(ptr(toGameRecord(g))), nil
}

func (s *DraftServer) ListGameRecords(ctx context.Context, req *connect.Request[draftv1.Empty]) (*connect.Response[draftv1.ListGameRecordsResponse], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.gameSvc.List(ctx, user)
	if err != nil {
		return nil, s.fail(ctx, draftv1.ListGamesProcedure, err)
	}
	resp := &draftv1.ListGameRecordsResponse{GameRecords: make([]draftv1.GameRecord, 0, len(games))}
	for i := range games {
		resp.GameRecords = append(resp.GameRecords, toGameRecord(&games[i]))
	}
	return connect.NewResponse(resp), nil
}

func (s *DraftServer) GetGameRecord(ctx context.Context, req *connect.Request[draftv1.GameIDRequest]) (*connect.Response[draftv1.GameRecord], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.gameSvc.Get(ctx, user, req.Msg.GameID)
	if err != nil {
		return nil, s.fail(ctx, draftv1.GetGameProcedure, err)
	}
	return connect.NewResponse(ptr(toGameDetail(d))), nil
}

func (s *DraftServer) UpdateGameRecord(ctx context.Context, req *connect.Request[draftv1.UpdateGameRecordRequest]) (*connect.Response[draftv1.GameRecord], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.gameSvc.Update(ctx, user, req.Msg.GameID, fromGameRequest(req.Msg.GameRecordRequest))
	if err != nil {
		return nil, s.fail(ctx, draftv1.UpdateGameProcedure, err)
	}
	return connect.NewResponse(ptr(toGameRecord(g))), nil
}

func (s *DraftServer) ApplyGameRecord(ctx context.Context, req *connect.Request[draftv1.GameIDRequest]) (*connect.Response[draftv1.GameRecord], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.gameSvc.Apply(ctx, user, req.Msg.GameID)
	if err != nil {
		return nil, s.fail(ctx, draftv1.ApplyGameProcedure, err)
	}
	return connect.NewResponse(ptr(toGameRecord(g))), nil
}

func (s *DraftServer) CancelGameRecord(ctx context.Context, req *connect.Request[draftv1.GameIDRequest]) (*connect.Response[draftv1.GameRecord], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.gameSvc.Cancel(ctx, user, req.Msg.GameID)
	if err != nil {
		return nil, s.fail(ctx, draftv1.CancelGameProcedure, err)
	}
	return connect.NewResponse(ptr(toGameRecord(g))), nil
}

func (s *DraftServer) DeleteGameRecord(ctx context.Context, req *connect.Request[draftv1.GameIDRequest]) (*connect.Response[draftv1.Empty], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.gameSvc.Delete(ctx, user, req.Msg.GameID); err != nil {
		return nil, s.fail(ctx, draftv1.DeleteGameProcedure, err)
	}
	return connect.NewResponse(&draftv1.Empty{}), nil
}

func (s *DraftServer) SimulateScores(ctx context.Context, req *connect.Request[draftv1.Empty]) (*connect.Response[draftv1.SimulateScoresResponse], error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := s.gameSvc.Simulate(ctx, user)
	if err != nil {
		return nil, s.fail(ctx, draftv1.SimulateScoresProcedure, err)
	}
	resp := &draftv1.SimulateScoresResponse{Scores: make([]draftv1.SimulatedScore, 0, len(scores))}
	for _, sc := range scores {
		resp.Scores = append(resp.Scores, toSimulated(sc))
	}
	s.logger.Debug().Int("scores", len(scores)).Msg("scores simulated")
	return connect.NewResponse(resp), nil
}

func ptr[T any](v T) *T { return &v }
