package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type ScoreService interface {
	Scores(ctx context.Context) (entity.ScoreTally, error)
	Record(ctx context.Context, outcome entity.Outcome) (entity.ScoreTally, error)
	Clear(ctx context.Context) (entity.ScoreTally, error)
}

type scoreRepo interface {
	Get(ctx context.Context) (entity.ScoreTally, error)
	Save(ctx context.Context, scores entity.ScoreTally) error
	Increment(ctx context.Context, outcome entity.Outcome) (entity.ScoreTally, error)
}

type scoreService struct {
	scoreRepo scoreRepo
}

func NewScoreService(scoreRepo scoreRepo) ScoreService {
	return &scoreService{
		scoreRepo: scoreRepo,
	}
}

func (that *scoreService) Scores(ctx context.Context) (entity.ScoreTally, error) {
	scores, err := that.scoreRepo.Get(ctx)
	if err != nil {
		return entity.ScoreTally{}, fmt.Errorf("failed to get scores: %w", err)
	}

	return scores, nil
}

// Record - adds a finished game to the tally, the increment is a single storage call.
func (that *scoreService) Record(ctx context.Context, outcome entity.Outcome) (entity.ScoreTally, error) {
	if !outcome.IsTerminal() {
		return entity.ScoreTally{}, fmt.Errorf("%w: %s", apperror.ErrGameNotFinished, outcome.Result)
	}

	scores, err := that.scoreRepo.Increment(ctx, outcome)
	if err != nil {
		return entity.ScoreTally{}, fmt.Errorf("failed to record score: %w", err)
	}

	return scores, nil
}

func (that *scoreService) Clear(ctx context.Context) (entity.ScoreTally, error) {
	if err := that.scoreRepo.Save(ctx, entity.ScoreTally{}); err != nil {
		return entity.ScoreTally{}, fmt.Errorf("failed to clear scores: %w", err)
	}

	return entity.ScoreTally{}, nil
}
