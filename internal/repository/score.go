package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// ScoresKey - the single hash holding the score tally.
const ScoresKey = "tictactoe:scores"

const (
	scoreFieldX    = "x"
	scoreFieldO    = "o"
	scoreFieldTies = "ties"
)

type ScoreRepository interface {
	Get(ctx context.Context) (entity.ScoreTally, error)
	Save(ctx context.Context, scores entity.ScoreTally) error
	// Increment adds one finished game to the tally atomically and returns the new tally.
	Increment(ctx context.Context, outcome entity.Outcome) (entity.ScoreTally, error)
}

type dbScore struct {
	client *redis.Client
}

// dbScoreTally - hash layout of the tally.
type dbScoreTally struct {
	X    int `redis:"x"`
	O    int `redis:"o"`
	Ties int `redis:"ties"`
}

func (that dbScoreTally) toEntity() entity.ScoreTally {
	return entity.ScoreTally{X: that.X, O: that.O, Ties: that.Ties}
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

// Get - a missing hash is an empty tally.
func (that *dbScore) Get(ctx context.Context) (entity.ScoreTally, error) {
	var scores dbScoreTally
	if err := that.client.HGetAll(ctx, ScoresKey).Scan(&scores); err != nil {
		return entity.ScoreTally{}, fmt.Errorf("failed to get scores: %w", err)
	}

	return scores.toEntity(), nil
}

func (that *dbScore) Save(ctx context.Context, scores entity.ScoreTally) error {
	err := that.client.HSet(ctx, ScoresKey,
		scoreFieldX, scores.X,
		scoreFieldO, scores.O,
		scoreFieldTies, scores.Ties,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set scores: %w", err)
	}

	return nil
}

func (that *dbScore) Increment(ctx context.Context, outcome entity.Outcome) (entity.ScoreTally, error) {
	field, err := scoreField(outcome)
	if err != nil {
		return entity.ScoreTally{}, err
	}

	var all *redis.MapStringStringCmd
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, ScoresKey, field, 1)
		all = pipe.HGetAll(ctx, ScoresKey)

		return nil
	})
	if err != nil {
		return entity.ScoreTally{}, fmt.Errorf("failed to increment scores: %w", err)
	}

	var scores dbScoreTally
	if err = all.Scan(&scores); err != nil {
		return entity.ScoreTally{}, fmt.Errorf("failed to read scores: %w", err)
	}

	return scores.toEntity(), nil
}

func scoreField(outcome entity.Outcome) (string, error) {
	switch {
	case outcome.Result == entity.Tie:
		return scoreFieldTies, nil
	case outcome.Result == entity.Win && outcome.Winner == entity.PlayerX:
		return scoreFieldX, nil
	case outcome.Result == entity.Win && outcome.Winner == entity.PlayerO:
		return scoreFieldO, nil
	default:
		return "", fmt.Errorf("%w: %s", apperror.ErrGameNotFinished, outcome.Result)
	}
}
