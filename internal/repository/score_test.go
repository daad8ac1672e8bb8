package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
)

func TestScoreRepository_Get(t *testing.T) {
	t.Run("Missing record is an empty tally", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		// When: nothing was saved yet
		scores, err := scoreRepo.Get(ctx)

		// Then: zero counters are returned
		require.NoError(t, err)
		assert.Equal(t, entity.ScoreTally{}, scores)
	})

	t.Run("Reads the stored format", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		// Given: a tally written by another client
		require.NoError(t, st.Storage.HSet(ctx, ScoresKey, "x", 3, "o", 1, "ties", 7).Err())

		// When: the tally is loaded
		scores, err := scoreRepo.Get(ctx)

		// Then: every counter is mapped
		require.NoError(t, err)
		assert.Equal(t, entity.ScoreTally{X: 3, O: 1, Ties: 7}, scores)
	})

	t.Run("Broken record is an error", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		require.NoError(t, st.Storage.HSet(ctx, ScoresKey, "x", "many").Err())

		_, err := scoreRepo.Get(ctx)

		require.Error(t, err)
	})
}

func TestScoreRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	scoreRepo := NewScoreRepository(st.Storage)

	// When: a tally is saved
	err := scoreRepo.Save(ctx, entity.ScoreTally{X: 1, O: 2, Ties: 3})

	// Then: it is stored as a single hash
	require.NoError(t, err)

	raw, err := st.Storage.HGetAll(ctx, ScoresKey).Result()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "1", "o": "2", "ties": "3"}, raw)
}

func TestScoreRepository_Increment(t *testing.T) {
	t.Run("Concurrent increments are not lost", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		// Given: an existing tally
		require.NoError(t, scoreRepo.Save(ctx, entity.ScoreTally{X: 1, O: 1, Ties: 1}))

		// When: many games finish at once
		const games = 50

		var wg sync.WaitGroup
		for i := 0; i < games; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, err := scoreRepo.Increment(ctx, entity.Outcome{Result: entity.Win, Winner: entity.PlayerO})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		// Then: every game is counted
		scores, err := scoreRepo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ScoreTally{X: 1, O: 1 + games, Ties: 1}, scores)
	})

	t.Run("Returns the new tally", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		scores, err := scoreRepo.Increment(ctx, entity.Outcome{Result: entity.Tie})

		require.NoError(t, err)
		assert.Equal(t, entity.ScoreTally{Ties: 1}, scores)
	})

	t.Run("Unfinished outcome is rejected", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		_, err := scoreRepo.Increment(ctx, entity.Outcome{Result: entity.InProgress})

		require.ErrorIs(t, err, apperror.ErrGameNotFinished)

		exists, err := st.Storage.Exists(ctx, ScoresKey).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)
	})
}
