package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// ApplyMove - returns a copy of the board with the mark placed on cell. The given board is not modified.
func ApplyMove(board entity.Board, cell int, mark entity.Mark) (entity.Board, error) {
	if err := validateMove(&board, cell, mark); err != nil {
		return board, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	board[cell] = mark

	return board, nil
}

// Evaluate - checks the board for a winner and then for a tie.
// When several patterns are complete the first one in scan order is reported.
func Evaluate(board entity.Board) entity.Outcome {
	for _, pattern := range entity.WinPatterns {
		a, b, c := board[pattern[0]], board[pattern[1]], board[pattern[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Outcome{Result: entity.Win, Winner: a, Pattern: pattern}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return entity.Outcome{Result: entity.InProgress}
	}

	return entity.Outcome{Result: entity.Tie}
}

// LegalMoves - indexes of empty cells in ascending order.
func LegalMoves(board entity.Board) []int {
	moves := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

// HasWon - checks if mark fills any win pattern.
func HasWon(board *entity.Board, mark entity.Mark) bool {
	for _, pattern := range entity.WinPatterns {
		if board[pattern[0]] == mark && board[pattern[1]] == mark && board[pattern[2]] == mark {
			return true
		}
	}

	return false
}

// validateMove - checks if the move is valid.
func validateMove(board *entity.Board, cell int, mark entity.Mark) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}
