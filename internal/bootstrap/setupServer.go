package bootstrap

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"wordgame-service/config"
	httpGameHandler "wordgame-service/internal/api/http/handler"
	wsHandler "wordgame-service/internal/api/ws/handler"
	"wordgame-service/internal/handler"
	"wordgame-service/internal/server"
)

// SetupServer builds the HTTP listener. ctx bounds the WebSocket game sessions.
func SetupServer(ctx context.Context, config config.Config, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}) *fiber.App {
	serverConfig := server.Config{
		Port:         config.HTTP.Port,
		IdleTimeout:  config.HTTP.IdleTimeout,
		ReadTimeout:  config.HTTP.ReadTimeout,
		WriteTimeout: config.HTTP.WriteTimeout,
	}

	app := server.NewFiberApp(serverConfig)

	getRoomsHandler := httpHandlers["get-rooms"].(*httpGameHandler.GetRoomsHandler)
	getRoomHandler := httpHandlers["get-room"].(*httpGameHandler.GetRoomHandler)

	app.Get("/rooms", handler.HandleBasic[httpGameHandler.GetRoomsRequest, httpGameHandler.GetRoomsResponse](getRoomsHandler))
	app.Get("/rooms/:room_id", handler.HandleBasic[httpGameHandler.GetRoomRequest, httpGameHandler.GetRoomResponse](getRoomHandler))

	wsRoute := app.Group("/ws", handler.UpgradeOnly)
	gameHandler := wsHandlers["game-connect"].(*wsHandler.WebSocketGameHandler)
	wsRoute.Get("/game", handler.HandleWithFiberWS[wsHandler.WebSocketGameRequest](ctx, gameHandler))

	return app
}
