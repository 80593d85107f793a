package bootstrap

import (
	"wordgame-service/config"
	httpHandler "wordgame-service/internal/api/http/handler"
	"wordgame-service/internal/api/game"
	"wordgame-service/internal/api/session"
	wsHandler "wordgame-service/internal/api/ws/handler"
	"wordgame-service/internal/initializer"
)

// SetupGame builds the room registry and the game service on top of the hub.
// Nil sinks are skipped.
func SetupGame(config config.Config, hub *session.Hub, roomRedis RoomRedisManager, postgresRepository PostgresRepository, kafka Messaging) *game.Service {
	var opts []game.Option
	if roomRedis != nil {
		opts = append(opts, game.WithEventPublisher(roomRedis))
	}
	if postgresRepository != nil {
		opts = append(opts, game.WithMatchRecorder(postgresRepository))
	}
	if kafka != nil {
		opts = append(opts, game.WithMatchRecorder(kafka))
	}

	gameConfig := game.Config{
		BoardSize:     config.Game.BoardSize,
		MatchDuration: config.Game.MatchDuration,
		TickInterval:  config.Game.TickInterval,
		RoomGrace:     config.Game.RoomGracePeriod,
		SweepInterval: config.Game.SweepInterval,
	}
	return game.NewService(gameConfig, game.NewRoomManager(), hub, initializer.InitWords(config), opts...)
}

func SetupSessionHandler(config config.Config, hub *session.Hub, service *game.Service) *session.Handler {
	return session.NewHandler(session.Config{
		SendBuffer:    config.Game.SendBuffer,
		MaxNameLength: config.Game.MaxNameLength,
		RatePerSecond: config.RateLimit.PerSecond,
		RateBurst:     config.RateLimit.Burst,
	}, hub, service)
}

func SetupHTTPHandlers(service *game.Service) map[string]interface{} {
	getRoomsHandler := httpHandler.NewGetRoomsHandler(service)
	getRoomHandler := httpHandler.NewGetRoomHandler(service)

	return map[string]interface{}{
		"get-rooms": getRoomsHandler,
		"get-room":  getRoomHandler,
	}
}

func SetupWSHandlers(config config.Config, sessionHandler *session.Handler) map[string]interface{} {
	gameHandler := wsHandler.NewWebSocketGameHandler(sessionHandler, config.Game.MaxLineLength, config.Game.WriteTimeout)

	return map[string]interface{}{
		"game-connect": gameHandler,
	}
}
