package question

import (
	"context"
	"math/rand/v2"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// Service implements listing, search, creation, deletion and quiz selection on top of the
// question and category repositories. It keeps no state between calls.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	pick       func(n int) int
}

type ServiceOptions struct {
	// Picker returns a uniformly distributed index in [0, n). Defaults to math/rand/v2.
	// It is called concurrently and must be safe for that.
	Picker func(n int) int
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts ServiceOptions) *Service {
	pick := opts.Picker
	if pick == nil {
		pick = rand.IntN
	}
	return &Service{
		questions:  questions,
		categories: categories,
		pick:       pick,
	}
}

// Categories maps every category id to its label.
func (s *Service) Categories(ctx context.Context) (map[int32]string, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fail(ErrNotFound, "list categories", err)
	}
	out := make(map[int32]string, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Type
	}
	return out, nil
}

// ListAll returns one page of all questions. An empty page is ErrNotFound, including
// a page past the end of a non-empty set.
func (s *Service) ListAll(ctx context.Context, page int) (Page, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return Page{}, fail(ErrNotFound, "list questions", err)
	}
	current := Paginate(page, rows)
	if len(current) == 0 {
		return Page{}, fail(ErrNotFound, "list questions", nil)
	}
	return Page{Questions: toDomainAll(current), Total: len(rows)}, nil
}

// ListByCategory returns one page of the questions in a category. Unlike ListAll an empty
// page is a valid result.
func (s *Service) ListByCategory(ctx context.Context, categoryID int32, page int) (Page, error) {
	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return Page{}, fail(ErrNotFound, "list questions by category", err)
	}
	return Page{Questions: toDomainAll(Paginate(page, rows)), Total: len(rows)}, nil
}

// Search returns one page of the questions containing term, ignoring case.
// No matches is a valid result.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return Page{}, fail(ErrNotFound, "search questions", err)
	}
	return Page{Questions: toDomainAll(Paginate(page, rows)), Total: len(rows)}, nil
}

// Listing builds the "list all questions" view: one page, the total and the category index.
func (s *Service) Listing(ctx context.Context, page int) (Listing, error) {
	current, err := s.ListAll(ctx, page)
	if err != nil {
		return Listing{}, err
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Page: current, Categories: categories}, nil
}

// Create coerces and stores a new question, then returns its id and the listing for page.
// A listing failure after a successful insert is still reported as ErrUnprocessable.
func (s *Service) Create(ctx context.Context, req CreateRequest, page int) (int64, Listing, error) {
	fields, err := req.Coerce()
	if err != nil {
		return 0, Listing{}, err
	}

	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   fields.Question,
		Answer:     fields.Answer,
		Category:   fields.Category,
		Difficulty: fields.Difficulty,
	})
	if err != nil {
		return 0, Listing{}, fail(ErrUnprocessable, "insert question", err)
	}

	listing, err := s.Listing(ctx, page)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().Err(err).Int64("created", row.ID).Msg("question stored but listing failed")
		return 0, Listing{}, fail(ErrUnprocessable, "list after insert", err)
	}
	return row.ID, listing, nil
}

// Delete removes a question and returns the listing for page. A missing id and a failed
// delete are both ErrUnprocessable; a failure rebuilding the listing keeps its own kind.
func (s *Service) Delete(ctx context.Context, id int64, page int) (Listing, error) {
	if _, err := s.questions.Get(ctx, id); err != nil {
		return Listing{}, fail(ErrUnprocessable, "find question", err)
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return Listing{}, fail(ErrUnprocessable, "delete question", err)
	}
	return s.Listing(ctx, page)
}
