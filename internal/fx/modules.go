package fx

import (
	"database/sql"

	"go.uber.org/fx"

	"team-draft/internal/auth"
	"team-draft/internal/config"
	"team-draft/internal/database"
	"team-draft/internal/db"
	"team-draft/internal/logger"
	"team-draft/internal/repository"
	"team-draft/internal/scoring"
	"team-draft/internal/server"
	"team-draft/internal/service"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideScoreModel(cfg *config.Config) (scoring.Model, error) {
	return scoring.ByName(cfg.ScoreModel)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewProfileRepository),
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewPoolRepository),
	fx.Provide(repository.NewGameRecordRepository),
	// auth
	fx.Provide(auth.NewTokens),
	// svc
	fx.Provide(ProvideScoreModel),
	fx.Provide(service.NewProfileService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewPoolService),
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewGameRecordService),
	// server
	fx.Provide(server.NewDraftServer),
)
