package service

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// winScore - score of a win found right at the root placement.
const winScore = 10

// minimax runs an exhaustive search over one mutable board.
// Every place is paired with an undo before the next sibling is explored.
type minimax struct {
	board    *entity.Board
	bot      entity.Mark
	opponent entity.Mark
}

// bestMove returns the lowest cell among the highest scores.
// The board is copied, so the caller's board is never touched.
func bestMove(board entity.Board, botMark, opponentMark entity.Mark) int {
	search := &minimax{board: &board, bot: botMark, opponent: opponentMark}

	bestScore, move := math.MinInt, -1
	for cell := range search.board {
		if !search.place(cell, botMark) {
			continue
		}

		score := search.score(0, false)
		search.undo(cell)

		if score > bestScore {
			bestScore, move = score, cell
		}
	}

	return move
}

// score - faster wins and slower losses score further from zero.
func (that *minimax) score(depth int, maximizing bool) int {
	if tictactoe.HasWon(that.board, that.bot) {
		return winScore - depth
	}

	if tictactoe.HasWon(that.board, that.opponent) {
		return depth - winScore
	}

	if that.board.IsFull() {
		return 0
	}

	mark, best := that.opponent, math.MaxInt
	if maximizing {
		mark, best = that.bot, math.MinInt
	}

	for cell := range that.board {
		if !that.place(cell, mark) {
			continue
		}

		score := that.score(depth+1, !maximizing)
		that.undo(cell)

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

func (that *minimax) place(cell int, mark entity.Mark) bool {
	if that.board[cell] != entity.EmptyCell {
		return false
	}

	that.board[cell] = mark

	return true
}

func (that *minimax) undo(cell int) {
	that.board[cell] = entity.EmptyCell
}
