package question

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

var errStoreDown = errors.New("connection refused")

// memStore is an in-memory stand-in for the generated queries. Setting a method name in
// failing makes that method return errStoreDown.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	questions  map[int64]sqlcgen.Question
	categories []sqlcgen.Category
	failing    map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		nextID:    1,
		questions: map[int64]sqlcgen.Question{},
		categories: []sqlcgen.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
		},
		failing: map[string]bool{},
	}
}

func (m *memStore) add(category int32, text string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.questions[id] = sqlcgen.Question{ID: id, Question: text, Answer: "answer", Category: category, Difficulty: 1}
	return id
}

func (m *memStore) fail(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing[method] = true
}

func (m *memStore) broken(method string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failing[method]
}

func (m *memStore) sorted(keep func(sqlcgen.Question) bool) []sqlcgen.Question {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []sqlcgen.Question{}
	for _, q := range m.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) ListQuestions(ctx context.Context) ([]sqlcgen.Question, error) {
	if m.broken("ListQuestions") {
		return nil, errStoreDown
	}
	return m.sorted(func(sqlcgen.Question) bool { return true }), nil
}

func (m *memStore) ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	if m.broken("ListQuestionsByCategory") {
		return nil, errStoreDown
	}
	return m.sorted(func(q sqlcgen.Question) bool { return q.Category == category }), nil
}

var likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)

func (m *memStore) SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	if m.broken("SearchQuestions") {
		return nil, errStoreDown
	}
	needle := strings.ToLower(likeUnescaper.Replace(term))
	return m.sorted(func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (m *memStore) GetQuestion(ctx context.Context, id int64) (sqlcgen.Question, error) {
	if m.broken("GetQuestion") {
		return sqlcgen.Question{}, errStoreDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return sqlcgen.Question{}, pgx.ErrNoRows
	}
	return q, nil
}

func (m *memStore) InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	if m.broken("InsertQuestion") {
		return sqlcgen.Question{}, errStoreDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	q := sqlcgen.Question{
		ID:         m.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	m.questions[q.ID] = q
	m.nextID++
	return q, nil
}

func (m *memStore) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	if m.broken("DeleteQuestion") {
		return 0, errStoreDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[id]; !ok {
		return 0, nil
	}
	delete(m.questions, id)
	return 1, nil
}

func (m *memStore) ListQuestionIDs(ctx context.Context) ([]int64, error) {
	if m.broken("ListQuestionIDs") {
		return nil, errStoreDown
	}
	return ids(m.sorted(func(sqlcgen.Question) bool { return true })), nil
}

func (m *memStore) ListQuestionIDsByCategory(ctx context.Context, category int32) ([]int64, error) {
	if m.broken("ListQuestionIDsByCategory") {
		return nil, errStoreDown
	}
	return ids(m.sorted(func(q sqlcgen.Question) bool { return q.Category == category })), nil
}

func (m *memStore) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	if m.broken("ListCategories") {
		return nil, errStoreDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sqlcgen.Category(nil), m.categories...), nil
}

func ids(rows []sqlcgen.Question) []int64 {
	out := make([]int64, 0, len(rows))
	for _, q := range rows {
		out = append(out, q.ID)
	}
	return out
}

// newTestService wires a Service over store. A nil picker keeps the random default.
func newTestService(store *memStore, picker func(int) int) *Service {
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		ServiceOptions{Picker: picker},
	)
}

// seed adds n questions to category, each named prefix plus a letter.
func seed(store *memStore, category int32, prefix string, n int) []int64 {
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, store.add(category, prefix+" "+string(rune('A'+i%26))))
	}
	return out
}
