package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const helpText = `commands:
  1-9                 play a cell
  new                 start over with the same settings
  mode pvp|bot        switch between two players and the computer
  difficulty <level>  easy, medium, hard or impossible
  scores              show the score tally
  clear               reset the score tally
  help                show this text
  quit                leave the game`

var errUnknownCommand = errors.New("unknown command, type help")

type gameManager interface {
	NewGame(ctx context.Context, mode string, difficulty entity.Difficulty) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	Reset(ctx context.Context, id string) (*entity.Game, error)
	SetDifficulty(ctx context.Context, id string, difficulty entity.Difficulty) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	Scores(ctx context.Context) (entity.ScoreTally, error)
	ClearScores(ctx context.Context) (entity.ScoreTally, error)
}

// Console plays one game at a time in a terminal.
type Console struct {
	logger   *slog.Logger
	manager  gameManager
	renderer *Renderer

	in  io.Reader
	out *termenv.Output

	game       *entity.Game
	difficulty entity.Difficulty
}

func New(logger *slog.Logger, manager gameManager, in io.Reader, out *termenv.Output, difficulty entity.Difficulty) *Console {
	return &Console{
		logger:     logger.With("component", "console"),
		manager:    manager,
		renderer:   NewRenderer(out),
		in:         in,
		out:        out,
		difficulty: difficulty,
	}
}

// Run - reads commands until quit, end of input or ctx is canceled.
func (that *Console) Run(ctx context.Context) error {
	game, err := that.manager.NewGame(ctx, entity.BotMode, that.difficulty)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.game = game

	if err = that.printScores(ctx); err != nil {
		return err
	}

	that.printGame()

	scanner := bufio.NewScanner(that.in)
	for {
		that.printf("> ")

		if !scanner.Scan() {
			if err = scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			return nil
		}

		if ctx.Err() != nil {
			return nil
		}

		quit, err := that.handle(ctx, strings.Fields(scanner.Text()))
		if quit {
			return nil
		}

		if err != nil {
			that.logger.Debug("command failed", "error", err)
			that.printf("%s\n", that.renderer.Error(err))
		}
	}
}

func (that *Console) handle(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	switch command := strings.ToLower(args[0]); command {
	case "quit", "exit":
		return true, nil
	case "help":
		that.printf("%s\n", helpText)
		return false, nil
	case "scores":
		return false, that.printScores(ctx)
	case "clear":
		scores, err := that.manager.ClearScores(ctx)
		if err != nil {
			return false, err
		}

		that.printf("%s\n", that.renderer.Scores(scores))

		return false, nil
	case "new":
		return false, that.update(that.manager.Reset(ctx, that.game.ID))
	case "mode":
		if len(args) < 2 {
			return false, errUnknownCommand
		}

		mode, err := entity.ParseMode(args[1])
		if err != nil {
			return false, err
		}

		previousID := that.game.ID
		if err = that.update(that.manager.NewGame(ctx, mode, that.difficulty)); err != nil {
			return false, err
		}

		return false, that.manager.DeleteGame(ctx, previousID)
	case "difficulty":
		if len(args) < 2 {
			return false, errUnknownCommand
		}

		difficulty, err := entity.ParseDifficulty(strings.ToLower(args[1]))
		if err != nil {
			return false, err
		}

		that.difficulty = difficulty
		if !that.game.IsWithBot() {
			return false, nil
		}

		return false, that.update(that.manager.SetDifficulty(ctx, that.game.ID, difficulty))
	default:
		cell, err := strconv.Atoi(command)
		if err != nil {
			return false, errUnknownCommand
		}

		return false, that.play(ctx, cell-1)
	}
}

func (that *Console) play(ctx context.Context, cell int) error {
	if that.game.IsWithBot() && that.game.IsOngoing() {
		that.printf("Computer is thinking...\n")
	}

	if err := that.update(that.manager.MakeTurn(ctx, that.game.ID, cell)); err != nil {
		return err
	}

	if that.game.IsFinished() {
		return that.printScores(ctx)
	}

	return nil
}

func (that *Console) update(game *entity.Game, err error) error {
	if err != nil {
		return err
	}

	that.game = game
	that.printGame()

	return nil
}

func (that *Console) printGame() {
	that.printf("\n%s\n%s\n", that.renderer.Board(that.game), that.renderer.Status(that.game))
}

func (that *Console) printScores(ctx context.Context) error {
	scores, err := that.manager.Scores(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	that.printf("%s\n", that.renderer.Scores(scores))

	return nil
}

func (that *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}
