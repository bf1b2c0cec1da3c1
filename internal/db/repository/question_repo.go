package repository

import (
	"context"
	"fmt"
	"strings"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error)
	GetQuestion(ctx context.Context, id int64) (sqlcgen.Question, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
	ListQuestionIDs(ctx context.Context) ([]int64, error)
	ListQuestionIDsByCategory(ctx context.Context, category int32) ([]int64, error)
}

// QuestionRepository wraps sqlc queries for the questions table.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]sqlcgen.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	return rows, classify("list questions", err)
}

// ListByCategory returns the questions whose category equals category, ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	rows, err := r.store.ListQuestionsByCategory(ctx, category)
	return rows, classify("list questions by category", err)
}

// Search matches term as a literal, case-insensitive substring of the question text.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, escapeLike(term))
	return rows, classify("search questions", err)
}

// Get fetches a single question. A missing row yields ErrNotFound.
func (r *QuestionRepository) Get(ctx context.Context, id int64) (sqlcgen.Question, error) {
	row, err := r.store.GetQuestion(ctx, id)
	return row, classify("get question", err)
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	row, err := r.store.InsertQuestion(ctx, params)
	return row, classify("insert question", err)
}

// Delete removes a question. Deleting an id that matches no row yields ErrNotFound.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return classify("delete question", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete question: %w", ErrNotFound)
	}
	return nil
}

// ListIDs returns the ids of all questions.
func (r *QuestionRepository) ListIDs(ctx context.Context) ([]int64, error) {
	ids, err := r.store.ListQuestionIDs(ctx)
	return ids, classify("list question ids", err)
}

// ListIDsByCategory returns the ids of the questions in one category.
func (r *QuestionRepository) ListIDsByCategory(ctx context.Context, category int32) ([]int64, error) {
	ids, err := r.store.ListQuestionIDsByCategory(ctx, category)
	return ids, classify("list question ids by category", err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
