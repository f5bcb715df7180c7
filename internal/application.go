package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/config"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/service"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-arcade/transport/rest"
	"github.com/rocketscienceinc/tictactoe-arcade/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// SignalContext is canceled on SIGINT or SIGTERM.
func SignalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// RunApp - runs the game server until ctx is canceled or the HTTP server fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	clock := quartz.NewReal()
	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.SessionTTL)

	newSession := func() websocket.Session {
		return usecase.NewGameManager(logger, gameRepo, service.NewBotService(nil), clock, conf.Game.ComputerDelay)
	}

	wsServer := websocket.New(logger, newSession, clock, websocket.Options{
		FrameInterval:  conf.Field.FrameInterval(),
		Particles:      conf.Field.Particles,
		RateLimit:      rate.Limit(conf.Field.RateLimit),
		Burst:          max(int(conf.Field.RateLimit), 1),
		AllowedOrigins: conf.CORSOrigins,
	})

	httpServer := rest.New(ctx, logger, conf.HTTPPort, rest.NewRouter(wsServer, conf.CORSOrigins))

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(httpServer.Start)
	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
