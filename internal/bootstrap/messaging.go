package bootstrap

import (
	"context"

	"wordgame-service/config"
	"wordgame-service/domain"
	"wordgame-service/internal/initializer"
)

type Messaging interface {
	Close() error
	RecordMatch(ctx context.Context, result domain.MatchResult) error
}

// SetupMessaging returns nil when Kafka is not configured.
func SetupMessaging(config config.Config) Messaging {
	if p := initializer.InitMessaging(config); p != nil {
		return p
	}
	return nil
}
