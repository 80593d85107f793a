package bootstrap

import (
	"context"
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"wordgame-service/config"
	"wordgame-service/internal/api/game"
	"wordgame-service/internal/api/session"
	"wordgame-service/pkg/graceful"
)

type App struct {
	config         config.Config
	postgresRepo   PostgresRepository
	roomRedis      RoomRedisManager
	kafka          Messaging
	hub            *session.Hub
	gameService    *game.Service
	sessionHandler *session.Handler
	tcpServer      *session.Server
	fiberApp       *fiber.App
	httpHandlers   map[string]interface{}
	wsHandlers     map[string]interface{}

	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(config config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	a.postgresRepo = InitDatabase(a.config)
	a.roomRedis = InitRoomRedis(a.config)
	a.kafka = SetupMessaging(a.config)
	a.hub = session.NewHub()
	a.gameService = SetupGame(a.config, a.hub, a.roomRedis, a.postgresRepo, a.kafka)
	a.sessionHandler = SetupSessionHandler(a.config, a.hub, a.gameService)
	a.tcpServer = session.NewServer(a.sessionHandler, a.config.Game.MaxLineLength, a.config.Game.WriteTimeout)
	if a.config.HTTP.Enabled {
		a.httpHandlers = SetupHTTPHandlers(a.gameService)
		a.wsHandlers = SetupWSHandlers(a.config, a.sessionHandler)
		a.fiberApp = SetupServer(a.ctx, a.config, a.httpHandlers, a.wsHandlers)
	}
}

// Start runs the listeners and the room sweeper, then blocks until a shutdown
// signal or a listener failure.
func (a *App) Start() {
	addr := net.JoinHostPort(a.config.Server.Host, a.config.Server.Port)
	go func() {
		if err := a.tcpServer.ListenAndServe(a.ctx, addr); err != nil {
			zap.L().Error("Failed to start game server", zap.String("addr", addr), zap.Error(err))
			a.cancel()
		}
	}()
	zap.L().Info("Game server started", zap.String("addr", addr))

	if a.fiberApp != nil {
		go func() {
			port := a.config.HTTP.Port
			if err := a.fiberApp.Listen(":" + port); err != nil {
				zap.L().Error("Failed to start HTTP server", zap.Error(err))
				a.cancel()
			}
		}()
		zap.L().Info("HTTP server started on port", zap.String("port", a.config.HTTP.Port))
	}

	go a.gameService.RunCleanup(a.ctx)

	graceful.WaitForShutdown(a.ctx, a.config.Server.ShutdownTimeout, a.shutdownSteps()...)
}

// shutdownSteps stops intake first, then the game, then the sinks it feeds.
func (a *App) shutdownSteps() []graceful.Shutdowner {
	steps := []graceful.Shutdowner{
		graceful.ShutdownFunc(func(ctx context.Context) error {
			a.cancel()
			return waitContext(ctx, a.tcpServer.Wait)
		}),
	}
	if a.fiberApp != nil {
		steps = append(steps, graceful.ShutdownFunc(a.fiberApp.ShutdownWithContext))
	}
	steps = append(steps, graceful.ShutdownFunc(func(ctx context.Context) error {
		return waitContext(ctx, a.gameService.Close)
	}))

	type closer struct {
		name string
		c    interface{ Close() error }
	}
	var closers []closer
	if a.roomRedis != nil {
		closers = append(closers, closer{"redis", a.roomRedis})
	}
	if a.postgresRepo != nil {
		closers = append(closers, closer{"postgres", a.postgresRepo})
	}
	if a.kafka != nil {
		closers = append(closers, closer{"kafka", a.kafka})
	}
	for _, cl := range closers {
		steps = append(steps, graceful.ShutdownFunc(func(context.Context) error {
			if err := cl.c.Close(); err != nil {
				return fmt.Errorf("close %s: %w", cl.name, err)
			}
			return nil
		}))
	}
	return steps
}

// waitContext runs wait and returns early with ctx's error if it does not
// finish in time.
func waitContext(ctx context.Context, wait func()) error {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

