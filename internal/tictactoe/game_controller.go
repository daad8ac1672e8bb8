package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// MakeTurn - places the player's mark and moves the game to its next state.
func MakeTurn(gameInstance *entity.Game, player entity.Mark, cell int) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if gameInstance.Turn != player {
		return apperror.ErrNotYourTurn
	}

	board, err := ApplyMove(gameInstance.Board, cell, player)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board = board
	updateGameStatus(gameInstance, player)

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, player entity.Mark) {
	switch outcome := Evaluate(gameInstance.Board); outcome.Result {
	case entity.Win:
		pattern := outcome.Pattern
		gameInstance.Winner = outcome.Winner
		gameInstance.WinPattern = &pattern
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = entity.EmptyCell
	case entity.Tie:
		gameInstance.Winner = entity.PlayerTie
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = entity.EmptyCell
	default:
		gameInstance.Turn = player.Opponent()
	}
}
