package fx

import (
	"database/sql"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/database"
	"cricket-scorer/internal/db"
	"cricket-scorer/internal/logger"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/scoring"
	"cricket-scorer/internal/server"
	"cricket-scorer/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// ProvideEngine uses the wall clock.
func ProvideEngine() *scoring.Engine {
	return scoring.NewEngine(nil)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	// scoring
	fx.Provide(ProvideEngine),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(server.NewServer),
)
