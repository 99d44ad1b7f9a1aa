// Package draftv1 is the wire contract of the team draft service: procedure
// names and the JSON messages exchanged over connect unary calls.
package draftv1

const ServiceName = "teamdraft.v1.TeamDraftService"

const (
	RegisterProcedure         = "/" + ServiceName + "/Register"
	LoginProcedure            = "/" + ServiceName + "/Login"
	CreatePlayerProcedure     = "/" + ServiceName + "/CreatePlayer"
	ListPlayersProcedure      = "/" + ServiceName + "/ListPlayers"
	DeletePlayerProcedure     = "/" + ServiceName + "/DeletePlayer"
	CreatePoolProcedure       = "/" + ServiceName + "/CreatePool"
	ListPoolsProcedure        = "/" + ServiceName + "/ListPools"
	GetPoolProcedure          = "/" + ServiceName + "/GetPool"
	AddPoolPlayerProcedure    = "/" + ServiceName + "/AddPoolPlayer"
	UpdatePoolPlayerProcedure = "/" + ServiceName + "/UpdatePoolPlayer"
	JoinPoolProcedure         = "/" + ServiceName + "/JoinPool"
	DeletePoolProcedure       = "/" + ServiceName + "/DeletePool"
	GetPoolRankingProcedure   = "/" + ServiceName + "/GetPoolRanking"
	GenerateTeamsProcedure    = "/" + ServiceName + "/GenerateTeams"
	RerollTeamsProcedure      = "/" + ServiceName + "/RerollTeams"
	SwapPlayersProcedure      = "/" + ServiceName + "/SwapPlayers"
	CreateGameProcedure       = "/" + ServiceName + "/CreateGameRecord"
	ListGamesProcedure        = "/" + ServiceName + "/ListGameRecords"
	GetGameProcedure          = "/" + ServiceName + "/GetGameRecord"
	UpdateGameProcedure       = "/" + ServiceName + "/UpdateGameRecord"
	ApplyGameProcedure        = "/" + ServiceName + "/ApplyGameRecord"
	CancelGameProcedure       = "/" + ServiceName + "/CancelGameRecord"
	DeleteGameProcedure       = "/" + ServiceName + "/DeleteGameRecord"
	SimulateScoresProcedure   = "/" + ServiceName + "/SimulateScores"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = []string{RegisterProcedure, LoginProcedure}
