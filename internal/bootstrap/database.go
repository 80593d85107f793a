package bootstrap

import (
	"context"

	"wordgame-service/config"
	"wordgame-service/domain"
	"wordgame-service/internal/initializer"
)

type PostgresRepository interface {
	Close() error
	RecordMatch(ctx context.Context, result domain.MatchResult) error
}

// InitDatabase returns nil when match history is not configured.
func InitDatabase(config config.Config) PostgresRepository {
	if repo := initializer.InitDatabase(config); repo != nil {
		return repo
	}
	return nil
}
