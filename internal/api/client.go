// Package api is the HTTP client for the team draft service. It speaks the
// connect unary protocol with JSON bodies over fasthttp.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"team-draft/internal/config"
	"team-draft/internal/constants"
	"team-draft/internal/draftv1"
	"team-draft/internal/middleware"
)

type DraftClient struct {
	baseURL string
	client  *fasthttp.Client

	mu            sync.RWMutex
	token         string
	lastRequestID string
}

// Error is a failed call as reported by the server.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (http %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewDraftClient(cfg config.Client) *DraftClient {
	return &DraftClient{
		baseURL: cfg.APIURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

func (c *DraftClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// LastRequestID is the request id the server assigned to the latest call.
func (c *DraftClient) LastRequestID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRequestID
}

func (c *DraftClient) recordRequestID(resp *fasthttp.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id := string(resp.Header.Peek(middleware.RequestIDHeader)); id != "" {
		c.lastRequestID = id
	}
}

func (c *DraftClient) Register(ctx context.Context, in draftv1.RegisterRequest) (*draftv1.Profile, error) {
	return doRequest[draftv1.Profile](ctx, c, draftv1.RegisterProcedure, in)
}

// Login stores the returned token for subsequent calls.
func (c *DraftClient) Login(ctx context.Context, email, password string) (*draftv1.LoginResponse, error) {
	resp, err := doRequest[draftv1.LoginResponse](ctx, c, draftv1.LoginProcedure, draftv1.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp, nil
}

func (c *DraftClient) CreatePlayer(ctx context.Context, in draftv1.PlayerInput) (*draftv1.Player, error) {
	return doRequest[draftv1.Player](ctx, c, draftv1.CreatePlayerProcedure, in)
}

func (c *DraftClient) ListPlayers(ctx context.Context) (*draftv1.ListPlayersResponse, error) {
	return doRequest[draftv1.ListPlayersResponse](ctx, c, draftv1.ListPlayersProcedure, draftv1.Empty{})
}

func (c *DraftClient) ListPools(ctx context.Context) (*draftv1.ListPoolsResponse, error) {
	return doRequest[draftv1.ListPoolsResponse](ctx, c, draftv1.ListPoolsProcedure, draftv1.Empty{})
}

func (c *DraftClient) GetPool(ctx context.Context, poolID int64) (*draftv1.Pool, error) {
	return doRequest[draftv1.Pool](ctx, c, draftv1.GetPoolProcedure, draftv1.PoolIDRequest{PoolID: poolID})
}

func (c *DraftClient) GetPoolRanking(ctx context.Context, poolID int64) (*draftv1.PoolRanking, error) {
	return doRequest[draftv1.PoolRanking](ctx, c, draftv1.GetPoolRankingProcedure, draftv1.PoolIDRequest{PoolID: poolID})
}

func (c *DraftClient) GenerateTeams(ctx context.Context, playerIDs []int64) (*draftv1.Pairing, error) {
	return doRequest[draftv1.Pairing](ctx, c, draftv1.GenerateTeamsProcedure, draftv1.GenerateTeamsRequest{PlayerIDs: playerIDs})
}

// RerollTeams asks for the combination at a 0-based index.
func (c *DraftClient) RerollTeams(ctx context.Context, playerIDs []int64, index int) (*draftv1.Pairing, error) {
	return doRequest[draftv1.Pairing](ctx, c, draftv1.RerollTeamsProcedure, draftv1.RerollTeamsRequest{PlayerIDs: playerIDs, CombinationIndex: index})
}

func (c *DraftClient) SwapPlayers(ctx context.Context, in draftv1.SwapPlayersRequest) (*draftv1.Pairing, error) {
	return doRequest[draftv1.Pairing](ctx, c, draftv1.SwapPlayersProcedure, in)
}

func (c *DraftClient) CreateGameRecord(ctx context.Context, in draftv1.GameRecordRequest) (*draftv1.GameRecord, error) {
	return doRequest[draftv1.GameRecord](ctx, c, draftv1.CreateGameProcedure, in)
}

func (c *DraftClient) ApplyGameRecord(ctx context.Context, gameID int64) (*draftv1.GameRecord, error) {
	return doRequest[draftv1.GameRecord](ctx, c, draftv1.ApplyGameProcedure, draftv1.GameIDRequest{GameID: gameID})
}

func (c *DraftClient) GetGameRecord(ctx context.Context, gameID int64) (*draftv1.GameRecord, error) {
	return doRequest[draftv1.GameRecord](ctx, c, draftv1.GetGameProcedure, draftv1.GameIDRequest{GameID: gameID})
}

func (c *DraftClient) ListGameRecords(ctx context.Context) (*draftv1.ListGameRecordsResponse, error) {
	return doRequest[draftv1.ListGameRecordsResponse](ctx, c, draftv1.ListGamesProcedure, draftv1.Empty{})
}

func doRequest[T any](ctx context.Context, client *DraftClient, procedure string, body any) (*T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", procedure, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + procedure)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Connect-Protocol-Version", "1")
	client.mu.RLock()
	if client.token != "" {
		req.Header.Set("Authorization", "Bearer "+client.token)
	}
	client.mu.RUnlock()
	req.SetBody(payload)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.recordRequestID(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		apiErr := &Error{Status: resp.StatusCode(), Code: "unknown"}
		_ = json.Unmarshal(resp.Body(), apiErr)
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode %s: %w", procedure, err)
	}
	return &result, nil
}
