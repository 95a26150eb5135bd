package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defaults, err := defaultSettings(conf.Game)
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(redisStorage, conf.Game.TTL)
	gameRepo := repository.NewGameRepository(redisStorage, conf.Game.TTL)
	gameManager := usecase.NewGameManager(logger, playerRepo, gameRepo, defaults)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.Start(ctx, logger, conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		wsErrCh <- wsServer.Start(ctx, conf.SocketPort)
	}()

	return awaitServers(ctx, cancel, log, httpErrCh, wsErrCh)
}

// awaitServers blocks until ctx is done or a server fails, then stops the other
// server and waits for both, so storage is closed only after they are down.
func awaitServers(ctx context.Context, cancel context.CancelFunc, log *slog.Logger, httpErrCh, wsErrCh <-chan error) error {
	var runErr error

	select {
	case err := <-httpErrCh:
		httpErrCh = nil
		runErr = wrapServerErr("HTTP", err)
	case err := <-wsErrCh:
		wsErrCh = nil
		runErr = wrapServerErr("WebSocket", err)
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	cancel()

	if httpErrCh != nil {
		runErr = errors.Join(runErr, wrapServerErr("HTTP", <-httpErrCh))
	}

	if wsErrCh != nil {
		runErr = errors.Join(runErr, wrapServerErr("WebSocket", <-wsErrCh))
	}

	log.Info("servers stopped")

	return runErr
}

func wrapServerErr(name string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s server error: %w", name, err)
}

func defaultSettings(conf config.Game) (entity.Settings, error) {
	x, err := entity.ParseControl(conf.DefaultX)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("default-x: %w", err)
	}

	o, err := entity.ParseControl(conf.DefaultO)
	if err != nil {
		return entity.Settings{}, fmt.Errorf("default-o: %w", err)
	}

	return entity.Settings{X: x, O: o}, nil
}
