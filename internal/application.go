package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/rest"
)

var (
	ErrAddrNotFound       = errors.New("redis address string is empty")
	ErrUnknownStorageType = errors.New("unknown storage type")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := SignalContext(logger)
	defer cancel()

	gameManager, closeStorage, err := NewGameManager(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	// run HTTP server
	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.New(logger, gameManager).Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// SignalContext - canceled on SIGINT or SIGTERM.
func SignalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}

// NewGameManager - wires storage, bot and scores. The returned func closes the storage.
func NewGameManager(ctx context.Context, logger *slog.Logger, conf *config.Config) (*usecase.GameManager, func() error, error) {
	gameRepo, scoreRepo, closeStorage, err := newRepositories(ctx, conf)
	if err != nil {
		return nil, nil, err
	}

	botService := service.NewBotService(logger, nil)
	scoreService := service.NewScoreService(scoreRepo)

	gameManager, err := usecase.NewGameManager(logger, gameRepo, botService, scoreService,
		entity.Mark(conf.Bot.Mark), conf.Bot.ThinkDelay)
	if err != nil {
		_ = closeStorage()
		return nil, nil, fmt.Errorf("could not create game manager: %w", err)
	}

	return gameManager, closeStorage, nil
}

func newRepositories(ctx context.Context, conf *config.Config) (repository.GameRepository, repository.ScoreRepository, func() error, error) {
	switch conf.Storage {
	case config.MemoryStorage:
		return repository.NewMemoryGameRepository(), repository.NewMemoryScoreRepository(), func() error { return nil }, nil
	case config.RedisStorage:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(redisStorage), repository.NewScoreRepository(redisStorage), redisStorage.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorageType, conf.Storage)
	}
}
