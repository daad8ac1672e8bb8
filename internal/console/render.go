package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	colorX   = "#E06C75"
	colorO   = "#61AFEF"
	colorDim = "#5C6370"
)

const rowSeparator = "---+---+---"

// Renderer draws games and scores, colors depend on the output profile.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(out *termenv.Output) *Renderer {
	return &Renderer{out: out}
}

// Board - empty cells show the 1-based number used to play them.
func (that *Renderer) Board(game *entity.Game) string {
	winning := make(map[int]bool, 3)
	if game.WinPattern != nil {
		for _, cell := range game.WinPattern {
			winning[cell] = true
		}
	}

	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString(rowSeparator + "\n")
		}

		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cell := row*3 + col
			cells[col] = " " + that.cell(game.Board[cell], cell, winning[cell]) + " "
		}

		sb.WriteString(strings.Join(cells, "|") + "\n")
	}

	return sb.String()
}

func (that *Renderer) Status(game *entity.Game) string {
	switch {
	case game.IsFinished() && game.Winner == entity.PlayerTie:
		return "It's a Tie!"
	case game.IsFinished():
		return that.out.String(fmt.Sprintf("%s Wins!", playerName(game, game.Winner))).Bold().String()
	default:
		return fmt.Sprintf("%s's Turn", playerName(game, game.Turn))
	}
}

func (that *Renderer) Scores(scores entity.ScoreTally) string {
	return fmt.Sprintf("%s: %d  %s: %d  Ties: %d",
		that.mark(entity.PlayerX), scores.X,
		that.mark(entity.PlayerO), scores.O,
		scores.Ties,
	)
}

func (that *Renderer) Error(err error) string {
	return that.out.String("error: " + err.Error()).Foreground(that.out.Color(colorX)).String()
}

func (that *Renderer) cell(mark entity.Mark, index int, winning bool) string {
	if mark == entity.EmptyCell {
		return that.out.String(strconv.Itoa(index + 1)).Foreground(that.out.Color(colorDim)).String()
	}

	style := that.out.String(string(mark)).Foreground(that.markColor(mark)).Bold()
	if winning {
		style = style.Reverse()
	}

	return style.String()
}

func (that *Renderer) mark(mark entity.Mark) string {
	return that.out.String(string(mark)).Foreground(that.markColor(mark)).String()
}

func (that *Renderer) markColor(mark entity.Mark) termenv.Color {
	if mark == entity.PlayerX {
		return that.out.Color(colorX)
	}

	return that.out.Color(colorO)
}

func playerName(game *entity.Game, mark entity.Mark) string {
	if game.IsWithBot() && mark == game.BotMark {
		return "Computer"
	}

	return "Player " + string(mark)
}
