package question

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

// NextQuestion draws one question uniformly at random from the category (AllCategories for
// every category), skipping every id in previous. Unknown ids in previous are ignored.
// The caller accumulates previous across calls; nothing is remembered here.
func (s *Service) NextQuestion(ctx context.Context, categoryID int32, previous []int64) (Question, error) {
	var (
		ids []int64
		err error
	)
	if categoryID == AllCategories {
		ids, err = s.questions.ListIDs(ctx)
	} else {
		ids, err = s.questions.ListIDsByCategory(ctx, categoryID)
	}
	if err != nil {
		return Question{}, fail(ErrUnprocessable, "list quiz pool", err)
	}

	pool := remaining(ids, previous)
	if len(pool) == 0 {
		metrics.QuizDraws.WithLabelValues(metrics.QuizExhausted).Inc()
		return Question{}, fail(ErrExhausted, "draw quiz question", nil)
	}

	id := pool[s.pick(len(pool))]
	row, err := s.questions.Get(ctx, id)
	if err != nil {
		// deleted between the id scan and the fetch
		metrics.QuizDraws.WithLabelValues(metrics.QuizVanished).Inc()
		return Question{}, fail(ErrUnprocessable, "fetch quiz question", err)
	}

	metrics.QuizDraws.WithLabelValues(metrics.QuizServed).Inc()
	return toDomain(row), nil
}

func remaining(ids, previous []int64) []int64 {
	asked := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		asked[id] = struct{}{}
	}
	pool := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := asked[id]; !ok {
			pool = append(pool, id)
		}
	}
	return pool
}
