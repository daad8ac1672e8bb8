package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var (
	ErrBoardTerminal = errors.New("board has no moves left to choose from")
	ErrInvalidMarks  = errors.New("bot and opponent marks must be X and O")
)

// Randomizer - source of randomness for the bot, *rand.Rand satisfies it.
type Randomizer interface {
	Float64() float64
	Intn(n int) int
}

type BotService interface {
	ChooseMove(board entity.Board, difficulty entity.Difficulty, botMark, opponentMark entity.Mark) (int, error)
}

type botService struct {
	logger *slog.Logger
	random Randomizer
}

// NewBotService - random may be nil, then the shared math/rand source is used.
func NewBotService(logger *slog.Logger, random Randomizer) BotService {
	if random == nil {
		random = sharedRandom{}
	}

	return &botService{
		logger: logger.With("component", "bot"),
		random: random,
	}
}

// ChooseMove - picks a cell for botMark. With probability set by difficulty it plays
// the searched move, otherwise any legal move at random.
func (that *botService) ChooseMove(board entity.Board, difficulty entity.Difficulty, botMark, opponentMark entity.Mark) (int, error) {
	cell, _, err := that.chooseMove(board, difficulty, botMark, opponentMark)
	return cell, err
}

func (that *botService) chooseMove(board entity.Board, difficulty entity.Difficulty, botMark, opponentMark entity.Mark) (int, bool, error) {
	if !botMark.IsValid() || opponentMark != botMark.Opponent() {
		return 0, false, fmt.Errorf("%w: bot %q, opponent %q", ErrInvalidMarks, botMark, opponentMark)
	}

	if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
		return 0, false, err
	}

	if outcome := tictactoe.Evaluate(board); outcome.IsTerminal() {
		return 0, false, fmt.Errorf("%w: %s", ErrBoardTerminal, outcome.Result)
	}

	if that.random.Float64() < difficulty.SearchProbability() {
		cell := bestMove(board, botMark, opponentMark)
		that.logger.Debug("bot played searched move", "cell", cell, "difficulty", difficulty)

		return cell, true, nil
	}

	availableCells := tictactoe.LegalMoves(board)
	cell := availableCells[that.random.Intn(len(availableCells))]
	that.logger.Debug("bot played random move", "cell", cell, "difficulty", difficulty)

	return cell, false, nil
}

type sharedRandom struct{}

func (sharedRandom) Float64() float64 {
	return rand.Float64() //nolint: gosec // it's ok
}

func (sharedRandom) Intn(n int) int {
	return rand.Intn(n) //nolint: gosec // it's ok
}
