package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var (
	ErrInvalidBotMark = errors.New("bot mark must be X or O")
	ErrNotBotGame     = errors.New("game is not played against the bot")
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	ChooseMove(board entity.Board, difficulty entity.Difficulty, botMark, opponentMark entity.Mark) (int, error)
}

type scoreService interface {
	Scores(ctx context.Context) (entity.ScoreTally, error)
	Record(ctx context.Context, outcome entity.Outcome) (entity.ScoreTally, error)
	Clear(ctx context.Context) (entity.ScoreTally, error)
}

// GameManager drives games: it alternates turns, lets the bot answer and keeps the score.
type GameManager struct {
	logger *slog.Logger

	gameRepo     gameRepo
	botService   botService
	scoreService scoreService

	locks *gameLocks

	botMark    entity.Mark
	thinkDelay time.Duration
}

func NewGameManager(
	logger *slog.Logger,
	gameRepo gameRepo,
	botService botService,
	scoreService scoreService,
	botMark entity.Mark,
	thinkDelay time.Duration,
) (*GameManager, error) {
	if !botMark.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBotMark, botMark)
	}

	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:     gameRepo,
		botService:   botService,
		scoreService: scoreService,

		locks: newGameLocks(),

		botMark:    botMark,
		thinkDelay: thinkDelay,
	}, nil
}

// NewGame - starts a game. If the bot plays X it makes the first move right away.
func (that *GameManager) NewGame(ctx context.Context, mode string, difficulty entity.Difficulty) (*entity.Game, error) {
	if _, err := entity.ParseMode(mode); err != nil {
		return nil, err
	}

	if mode == entity.BotMode {
		if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
			return nil, err
		}
	}

	game := entity.NewGame(uuid.NewString(), mode, difficulty, that.botMark)

	if err := that.playBot(ctx, game); err != nil {
		return nil, err
	}

	if err := that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "gameID", game.ID, "mode", mode, "difficulty", game.Difficulty)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human move on cell and, in bot mode, the bot's answer.
// Turns on the same game run one at a time.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsBotTurn() {
		return game, apperror.ErrNotYourTurn
	}

	if err = tictactoe.MakeTurn(game, game.Turn, cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.playBot(ctx, game); err != nil {
		return nil, err
	}

	if err = that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Reset - a fresh board with the same mode and difficulty.
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.Game, error) {
	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	return that.restart(ctx, game)
}

// SetDifficulty - changing the difficulty restarts the game.
func (that *GameManager) SetDifficulty(ctx context.Context, id string, difficulty entity.Difficulty) (*entity.Game, error) {
	if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
		return nil, err
	}

	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if !game.IsWithBot() {
		return nil, fmt.Errorf("%w: game id %s", ErrNotBotGame, id)
	}

	game.Difficulty = difficulty

	return that.restart(ctx, game)
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) Scores(ctx context.Context) (entity.ScoreTally, error) {
	scores, err := that.scoreService.Scores(ctx)
	if err != nil {
		return entity.ScoreTally{}, fmt.Errorf("failed to load scores: %w", err)
	}

	return scores, nil
}

func (that *GameManager) ClearScores(ctx context.Context) (entity.ScoreTally, error) {
	scores, err := that.scoreService.Clear(ctx)
	if err != nil {
		return entity.ScoreTally{}, fmt.Errorf("failed to clear scores: %w", err)
	}

	that.logger.Info("scores cleared")

	return scores, nil
}

func (that *GameManager) restart(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	game.Reset()

	if err := that.playBot(ctx, game); err != nil {
		return nil, err
	}

	if err := that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// playBot - lets the bot move when it's its turn.
func (that *GameManager) playBot(ctx context.Context, game *entity.Game) error {
	if !game.IsBotTurn() {
		return nil
	}

	if err := that.think(ctx); err != nil {
		return fmt.Errorf("bot interrupted: %w", err)
	}

	cell, err := that.botService.ChooseMove(game.Board, game.Difficulty, game.BotMark, game.HumanMark())
	if err != nil {
		return fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = tictactoe.MakeTurn(game, game.BotMark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// think - waits before the bot move, it never changes the move itself.
func (that *GameManager) think(ctx context.Context) error {
	if that.thinkDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// saveGame - stores the game, then records the score if this save finished it.
// A failed save records nothing, so a retried finishing move is counted once.
func (that *GameManager) saveGame(ctx context.Context, game *entity.Game) error {
	if err := that.updateGame(ctx, game); err != nil {
		return err
	}

	return that.finishTurn(ctx, game)
}

// finishTurn - records the score of a finished game.
func (that *GameManager) finishTurn(ctx context.Context, game *entity.Game) error {
	if !game.IsFinished() {
		return nil
	}

	scores, err := that.scoreService.Record(ctx, game.Outcome())
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}

	that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner,
		"x", scores.X, "o", scores.O, "ties", scores.Ties)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
