package question

import sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"

// PageSize is the number of questions in every listing or search page.
const PageSize = 10

// AllCategories selects questions from every category in quiz mode.
const AllCategories int32 = 0

// Question is the public rendering of a stored question.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int32  `json:"category"`
	Difficulty int32  `json:"difficulty"`
}

// Page is one window of a result set together with the size of the whole set.
type Page struct {
	Questions []Question
	Total     int
}

// Listing is the "list all questions" view embedded in list, create and delete responses.
type Listing struct {
	Page
	Categories map[int32]string
}

// NewQuestion holds a creation payload after coercion.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

func toDomain(row sqlcgen.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func toDomainAll(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}
