package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// memoryGame keeps games in process, used when no redis is configured.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Game),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := *game
	if game.WinPattern != nil {
		pattern := *game.WinPattern
		stored.WinPattern = &pattern
	}

	that.games[game.ID] = stored

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	if game.WinPattern != nil {
		pattern := *game.WinPattern
		game.WinPattern = &pattern
	}

	return &game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

type memoryScore struct {
	mu     sync.RWMutex
	scores entity.ScoreTally
}

func NewMemoryScoreRepository() ScoreRepository {
	return &memoryScore{}
}

func (that *memoryScore) Get(_ context.Context) (entity.ScoreTally, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.scores, nil
}

func (that *memoryScore) Save(_ context.Context, scores entity.ScoreTally) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores = scores

	return nil
}

func (that *memoryScore) Increment(_ context.Context, outcome entity.Outcome) (entity.ScoreTally, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.scores.Add(outcome) {
		return that.scores, fmt.Errorf("%w: %s", apperror.ErrGameNotFinished, outcome.Result)
	}

	return that.scores, nil
}
