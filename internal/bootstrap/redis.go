package bootstrap

import (
	"context"

	"wordgame-service/config"
	"wordgame-service/internal/initializer"
)

type RoomRedisManager interface {
	Close() error
	Publish(ctx context.Context, roomID, eventType string, data any) error
}

// InitRoomRedis returns nil when room events are not configured.
func InitRoomRedis(config config.Config) RoomRedisManager {
	if rm := initializer.InitRoomRedis(config); rm != nil {
		return rm
	}
	return nil
}
