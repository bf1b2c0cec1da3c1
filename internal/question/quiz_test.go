package question

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

func firstPicker(int) int { return 0 }

func TestNextQuestionSkipsPrevious(t *testing.T) {
	store := newMemStore()
	science := seed(store, 1, "science", 3)
	seed(store, 2, "art", 2)
	svc := newTestService(store, firstPicker)

	q, err := svc.NextQuestion(context.Background(), 1, []int64{science[0], 999})
	require.NoError(t, err)
	assert.Equal(t, science[1], q.ID)
	assert.Equal(t, int32(1), q.Category)
}

func TestNextQuestionAllCategories(t *testing.T) {
	store := newMemStore()
	seed(store, 1, "science", 1)
	art := seed(store, 2, "art", 1)
	svc := newTestService(store, func(n int) int { return n - 1 })

	q, err := svc.NextQuestion(context.Background(), AllCategories, []int64{})
	require.NoError(t, err)
	assert.Equal(t, art[0], q.ID)
}

func TestNextQuestionExhaustsCategory(t *testing.T) {
	store := newMemStore()
	seed(store, 1, "science", 5)
	seed(store, 2, "art", 4)
	svc := newTestService(store, nil)
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.QuizDraws.WithLabelValues(metrics.QuizExhausted))

	var previous []int64
	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		q, err := svc.NextQuestion(ctx, 1, previous)
		require.NoError(t, err)
		assert.False(t, seen[q.ID], "question %d served twice", q.ID)
		seen[q.ID] = true
		previous = append(previous, q.ID)
	}

	_, err := svc.NextQuestion(ctx, 1, previous)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.QuizDraws.WithLabelValues(metrics.QuizExhausted)))
}

func TestNextQuestionEmptyCategory(t *testing.T) {
	svc := newTestService(newMemStore(), nil)
	_, err := svc.NextQuestion(context.Background(), 42, nil)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestNextQuestionStoreFailures(t *testing.T) {
	for _, method := range []string{"ListQuestionIDsByCategory", "GetQuestion"} {
		t.Run(method, func(t *testing.T) {
			store := newMemStore()
			seed(store, 1, "science", 2)
			store.fail(method)
			svc := newTestService(store, firstPicker)

			_, err := svc.NextQuestion(context.Background(), 1, nil)
			assert.ErrorIs(t, err, ErrUnprocessable)
			assert.NotErrorIs(t, err, ErrExhausted)
		})
	}
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, []int64{2, 4}, remaining([]int64{1, 2, 3, 4}, []int64{3, 1, 7}))
	assert.Empty(t, remaining([]int64{1}, []int64{1}))
	assert.Equal(t, []int64{5}, remaining([]int64{5}, nil))
}
