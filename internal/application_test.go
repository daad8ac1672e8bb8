package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

func testConfig(storage, botMark string) *config.Config {
	return &config.Config{
		Storage: storage,
		Bot: config.Bot{
			Mark:       botMark,
			ThinkDelay: time.Millisecond,
		},
	}
}

func TestNewGameManager(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("Memory storage", func(t *testing.T) {
		// Given: a config with memory storage and the bot playing X
		conf := testConfig(config.MemoryStorage, "X")

		// When: the manager is wired
		manager, closeStorage, err := NewGameManager(ctx, logger, conf)
		require.NoError(t, err)
		defer func() { require.NoError(t, closeStorage()) }()

		// Then: a bot game starts with the bot's first move
		game, err := manager.NewGame(ctx, entity.BotMode, entity.ImpossibleDifficulty)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		_, _, err := NewGameManager(ctx, logger, testConfig("sqlite", "O"))

		require.ErrorIs(t, err, ErrUnknownStorageType)
	})

	t.Run("Invalid bot mark", func(t *testing.T) {
		_, _, err := NewGameManager(ctx, logger, testConfig(config.MemoryStorage, "Z"))

		require.ErrorIs(t, err, usecase.ErrInvalidBotMark)
	})
}
