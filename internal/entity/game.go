package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	PvPMode = "pvp"
	BotMode = "bot"
)

var (
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrUnknownMode       = errors.New("unknown game mode")
)

type Game struct {
	ID         string      `json:"id"`
	Board      Board       `json:"board"`
	Turn       Mark        `json:"player_turn"`
	Mode       string      `json:"mode"`
	Difficulty Difficulty  `json:"difficulty,omitempty"`
	BotMark    Mark        `json:"bot_mark,omitempty"`
	Status     string      `json:"status"`
	Winner     Mark        `json:"winner"`
	WinPattern *WinPattern `json:"win_pattern,omitempty"`
}

// NewGame - X always moves first. botMark is ignored outside of bot mode.
func NewGame(id, mode string, difficulty Difficulty, botMark Mark) *Game {
	game := &Game{
		ID:     id,
		Mode:   mode,
		Turn:   PlayerX,
		Status: StatusOngoing,
	}

	if mode == BotMode {
		game.Difficulty = difficulty
		game.BotMark = botMark
	}

	return game
}

func ParseMode(value string) (string, error) {
	switch value {
	case PvPMode, BotMode:
		return value, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

// Reset clears the board and keeps mode, difficulty and bot mark.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Status = StatusOngoing
	that.Winner = EmptyCell
	that.WinPattern = nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWithBot() bool {
	return that.Mode == BotMode
}

func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsOngoing() && that.Turn == that.BotMark
}

// HumanMark - the mark played by the human in bot mode.
func (that *Game) HumanMark() Mark {
	return that.BotMark.Opponent()
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Outcome rebuilds the outcome stored on a finished game.
func (that *Game) Outcome() Outcome {
	if !that.IsFinished() {
		return Outcome{Result: InProgress}
	}

	if that.Winner == PlayerTie {
		return Outcome{Result: Tie}
	}

	outcome := Outcome{Result: Win, Winner: that.Winner}
	if that.WinPattern != nil {
		outcome.Pattern = *that.WinPattern
	}

	return outcome
}
