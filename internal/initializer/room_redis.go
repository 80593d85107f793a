package initializer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wordgame-service/config"
	"wordgame-service/infra/redis"
)

// InitRoomRedis connects the room event publisher. It returns nil when Redis is
// disabled or unreachable; the game runs without it.
func InitRoomRedis(appConfig config.Config) *redis.RedisManager {
	if !appConfig.Redis.Enabled {
		return nil
	}
	address := fmt.Sprintf("%s:%s", appConfig.Redis.Host, appConfig.Redis.Port)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisManager, err := redis.NewRedisManager(ctx, address, appConfig.Redis.Password, appConfig.Redis.DB)
	if err != nil {
		zap.L().Error("Room events disabled, Redis unreachable", zap.String("addr", address), zap.Error(err))
		return nil
	}
	return redisManager
}
