package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

func newPlainOutput(buf *bytes.Buffer) *termenv.Output {
	return termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii))
}

func runConsole(t *testing.T, input string) (string, repository.ScoreRepository) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	scores := repository.NewMemoryScoreRepository()
	manager, err := usecase.NewGameManager(logger,
		repository.NewMemoryGameRepository(),
		service.NewBotService(logger, nil),
		service.NewScoreService(scores),
		entity.PlayerO, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	c := New(logger, manager, strings.NewReader(input), newPlainOutput(&buf), entity.ImpossibleDifficulty)

	require.NoError(t, c.Run(context.Background()))

	return buf.String(), scores
}

func TestRenderer_Board(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewRenderer(newPlainOutput(&buf))

	pattern := entity.WinPattern{0, 4, 8}
	game := &entity.Game{
		Board: entity.Board{
			entity.PlayerX, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.PlayerX, entity.PlayerO,
			entity.EmptyCell, entity.EmptyCell, entity.PlayerX,
		},
		WinPattern: &pattern,
	}

	expected := " X | O | 3 \n" +
		"---+---+---\n" +
		" 4 | X | O \n" +
		"---+---+---\n" +
		" 7 | 8 | X \n"

	assert.Equal(t, expected, renderer.Board(game))
}

func TestRenderer_Status(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewRenderer(newPlainOutput(&buf))

	tests := []struct {
		name   string
		game   *entity.Game
		status string
	}{
		{"human turn", &entity.Game{Status: entity.StatusOngoing, Turn: entity.PlayerX}, "Player X's Turn"},
		{"bot wins", &entity.Game{Status: entity.StatusFinished, Mode: entity.BotMode, BotMark: entity.PlayerO, Winner: entity.PlayerO}, "Computer Wins!"},
		{"pvp win", &entity.Game{Status: entity.StatusFinished, Mode: entity.PvPMode, Winner: entity.PlayerO}, "Player O Wins!"},
		{"tie", &entity.Game{Status: entity.StatusFinished, Winner: entity.PlayerTie}, "It's a Tie!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, renderer.Status(tt.game))
		})
	}
}

func TestRenderer_ScoresAndError(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewRenderer(newPlainOutput(&buf))

	assert.Equal(t, "X: 1  O: 2  Ties: 3", renderer.Scores(entity.ScoreTally{X: 1, O: 2, Ties: 3}))
	assert.Equal(t, "error: boom", renderer.Error(errors.New("boom")))
}

func TestConsole_Run(t *testing.T) {
	t.Run("Bot answers and bad input is reported", func(t *testing.T) {
		// When: the human plays a corner, repeats it and types garbage
		output, _ := runConsole(t, "1\n1\nfoo\nquit\n")

		// Then: the bot took the center and both mistakes were shown
		assert.Contains(t, output, " X | 2 | 3 \n---+---+---\n 4 | O | 6 ")
		assert.Contains(t, output, "error: failed make turn")
		assert.Contains(t, output, "error: unknown command")
	})

	t.Run("PvP game updates the scores", func(t *testing.T) {
		// When: X wins the top row in a two player game
		output, scores := runConsole(t, "mode pvp\n1\n4\n2\n5\n3\nscores\n")

		// Then: the win is shown and stored
		assert.Contains(t, output, "Player X Wins!")
		assert.Contains(t, output, "X: 1  O: 0  Ties: 0")

		tally, err := scores.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.ScoreTally{X: 1}, tally)
	})

	t.Run("Clear and help", func(t *testing.T) {
		output, _ := runConsole(t, "help\nclear\ndifficulty nightmare\ndifficulty easy\nnew\n")

		assert.Contains(t, output, "commands:")
		assert.Contains(t, output, "X: 0  O: 0  Ties: 0")
		assert.Contains(t, output, "unknown difficulty")
	})
}
