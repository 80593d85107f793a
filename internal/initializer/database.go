package initializer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wordgame-service/config"
	"wordgame-service/infra/postgres"
)

// InitDatabase opens the match history store, or returns nil when it is
// disabled or unreachable.
func InitDatabase(appConfig config.Config) *postgres.Repository {
	if !appConfig.Postgres.Enabled {
		return nil
	}
	pg := appConfig.Postgres
	connString := postgres.ConnString(pg.Host, pg.Port, pg.User, pg.Password, pg.DB, pg.SSLMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := postgres.NewRepository(ctx, connString)
	if err != nil {
		zap.L().Error("Match history disabled, PostgreSQL unreachable",
			zap.String("host", pg.Host), zap.String("db", pg.DB), zap.Error(err))
		return nil
	}
	return repo
}
