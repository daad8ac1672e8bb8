package service

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

// fixedRandom - returns the same draw every time and records Intn bounds.
type fixedRandom struct {
	float     float64
	intn      int
	intnCalls []int
}

func (that *fixedRandom) Float64() float64 {
	return that.float
}

func (that *fixedRandom) Intn(n int) int {
	that.intnCalls = append(that.intnCalls, n)
	return that.intn % n
}

func newTestBot(random Randomizer) *botService {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewBotService(logger, random).(*botService)
}

func TestBotService_ChooseMove_Preconditions(t *testing.T) {
	bot := newTestBot(&fixedRandom{})

	t.Run("Won board is rejected", func(t *testing.T) {
		board := entity.Board{
			x, x, x,
			o, o, e,
			e, e, e,
		}

		_, err := bot.ChooseMove(board, entity.ImpossibleDifficulty, o, x)

		require.ErrorIs(t, err, ErrBoardTerminal)
	})

	t.Run("Full board is rejected", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			o, x, o,
			o, x, o,
		}

		_, err := bot.ChooseMove(board, entity.EasyDifficulty, o, x)

		require.ErrorIs(t, err, ErrBoardTerminal)
	})

	t.Run("Marks must be distinct players", func(t *testing.T) {
		for _, marks := range [][2]entity.Mark{{x, x}, {e, o}, {o, e}, {entity.PlayerTie, x}} {
			_, err := bot.ChooseMove(entity.Board{}, entity.EasyDifficulty, marks[0], marks[1])
			require.ErrorIs(t, err, ErrInvalidMarks)
		}
	})

	t.Run("Unknown difficulty is rejected", func(t *testing.T) {
		// Given: a random source that would otherwise pick a cell
		random := &fixedRandom{float: 0.99}
		bot := newTestBot(random)

		// When: the stored difficulty is not one of the tiers
		for _, difficulty := range []entity.Difficulty{"", "nightmare", "Hard"} {
			_, err := bot.ChooseMove(entity.Board{}, difficulty, o, x)

			// Then: no move is played
			require.ErrorIs(t, err, entity.ErrUnknownDifficulty)
		}
		assert.Empty(t, random.intnCalls)
	})
}

func TestBotService_ChooseMove_Difficulty(t *testing.T) {
	// Given: a board where the searched move (win at 5) is never the random pick
	board := entity.Board{
		x, e, x,
		o, o, e,
		e, e, x,
	}

	tests := []struct {
		name       string
		difficulty entity.Difficulty
		draw       float64
		searched   bool
	}{
		{"easy never searches", entity.EasyDifficulty, 0, false},
		{"medium searches below one half", entity.MediumDifficulty, 0.49, true},
		{"medium plays random from one half", entity.MediumDifficulty, 0.5, false},
		{"hard searches below 0.8", entity.HardDifficulty, 0.79, true},
		{"hard plays random from 0.8", entity.HardDifficulty, 0.8, false},
		{"impossible always searches", entity.ImpossibleDifficulty, 0.999999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			random := &fixedRandom{float: tt.draw, intn: 0}
			bot := newTestBot(random)

			// When: the bot chooses a move
			cell, searched, err := bot.chooseMove(board, tt.difficulty, o, x)

			// Then: the branch follows the draw
			require.NoError(t, err)
			assert.Equal(t, tt.searched, searched)
			if tt.searched {
				assert.Equal(t, 5, cell)
				assert.Empty(t, random.intnCalls)
			} else {
				assert.Equal(t, 1, cell)
				assert.Equal(t, []int{4}, random.intnCalls)
			}
		})
	}
}

func TestBotService_ChooseMove_RandomPicksLegalCell(t *testing.T) {
	// Given: a randomizer that picks the third legal move
	board := entity.Board{
		x, e, o,
		e, x, e,
		o, e, e,
	}
	random := &fixedRandom{float: 0.3, intn: 2}
	bot := newTestBot(random)

	// When: the bot plays on easy
	cell, err := bot.ChooseMove(board, entity.EasyDifficulty, o, x)

	// Then: the third empty cell is returned
	require.NoError(t, err)
	assert.Equal(t, 5, cell)
	assert.Equal(t, []int{5}, random.intnCalls)
}

func TestBotService_ChooseMove_SearchRate(t *testing.T) {
	board := entity.Board{
		x, o, x,
		e, o, e,
		e, x, e,
	}

	tests := []struct {
		difficulty entity.Difficulty
		rate       float64
	}{
		{entity.EasyDifficulty, 0},
		{entity.MediumDifficulty, 0.5},
		{entity.HardDifficulty, 0.8},
		{entity.ImpossibleDifficulty, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			// Given: a seeded source
			bot := newTestBot(rand.New(rand.NewSource(42))) //nolint: gosec // it's ok

			// When: many moves are chosen
			const trials = 5000
			searched := 0
			for range trials {
				cell, usedSearch, err := bot.chooseMove(board, tt.difficulty, o, x)
				require.NoError(t, err)
				require.Contains(t, tictactoe.LegalMoves(board), cell)
				if usedSearch {
					searched++
				}
			}

			// Then: the share of searched moves converges to the difficulty rate
			assert.InDelta(t, tt.rate, float64(searched)/trials, 0.03)
		})
	}
}

func TestBotService_ChooseMove_SharedRandom(t *testing.T) {
	// Given: a bot without an injected source
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	bot := NewBotService(logger, nil)

	// When: it plays on an open board
	cell, err := bot.ChooseMove(entity.Board{x}, entity.MediumDifficulty, o, x)

	// Then: it returns a legal cell
	require.NoError(t, err)
	assert.Contains(t, tictactoe.LegalMoves(entity.Board{x}), cell)
}

func TestBotService_OptimalSelfPlayTies(t *testing.T) {
	bot := newTestBot(&fixedRandom{float: 0})

	for _, opening := range []int{-1, 0, 1, 2, 3, 4, 5, 6, 7, 8} {
		// Given: an empty board, optionally with a forced first move for X
		var board entity.Board
		turn := x
		if opening >= 0 {
			board[opening] = x
			turn = o
		}

		// When: both sides play the impossible bot until the game ends
		outcome := tictactoe.Evaluate(board)
		for !outcome.IsTerminal() {
			cell, err := bot.ChooseMove(board, entity.ImpossibleDifficulty, turn, turn.Opponent())
			require.NoError(t, err)

			board, err = tictactoe.ApplyMove(board, cell, turn)
			require.NoError(t, err)

			turn = turn.Opponent()
			outcome = tictactoe.Evaluate(board)
		}

		// Then: nobody loses
		assert.Equal(t, entity.Tie, outcome.Result, "opening %d: %v", opening, board)
	}
}

func TestBotService_OptimalNeverLosesToRandom(t *testing.T) {
	bot := newTestBot(&fixedRandom{float: 0})
	opponent := rand.New(rand.NewSource(7)) //nolint: gosec // it's ok

	for game := range 100 {
		var board entity.Board
		botMark := []entity.Mark{x, o}[game%2]
		turn := x

		outcome := tictactoe.Evaluate(board)
		for !outcome.IsTerminal() {
			var cell int
			if turn == botMark {
				var err error
				cell, err = bot.ChooseMove(board, entity.ImpossibleDifficulty, botMark, botMark.Opponent())
				require.NoError(t, err)
			} else {
				moves := tictactoe.LegalMoves(board)
				cell = moves[opponent.Intn(len(moves))]
			}

			var err error
			board, err = tictactoe.ApplyMove(board, cell, turn)
			require.NoError(t, err)

			turn = turn.Opponent()
			outcome = tictactoe.Evaluate(board)
		}

		assert.NotEqual(t, botMark.Opponent(), outcome.Winner, "game %d: %v", game, board)
	}
}
