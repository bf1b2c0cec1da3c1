package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submission is the decoded body of POST /questions: either a CreateRequest or a SearchRequest.
type Submission interface {
	submission()
}

// CreateRequest carries the four creation fields exactly as they appeared in the body.
// Values are coerced by Coerce, not at decode time.
type CreateRequest struct {
	Question   json.RawMessage
	Answer     json.RawMessage
	Difficulty json.RawMessage
	Category   json.RawMessage
}

// SearchRequest carries the raw searchTerm value.
type SearchRequest struct {
	SearchTerm json.RawMessage
}

func (CreateRequest) submission() {}
func (SearchRequest) submission() {}

var createKeys = [...]string{"question", "answer", "difficulty", "category"}

// DecodeSubmission classifies a POST /questions body by the keys it contains.
// All four creation keys make a CreateRequest, otherwise a searchTerm key makes a
// SearchRequest. Anything else, including a body that is not a JSON object, is ErrBadRequest.
func DecodeSubmission(body []byte) (Submission, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fail(ErrBadRequest, "decode submission", err)
	}
	if fields == nil {
		return nil, fail(ErrBadRequest, "decode submission", nil)
	}

	hasAll := true
	for _, key := range createKeys {
		if _, ok := fields[key]; !ok {
			hasAll = false
			break
		}
	}
	if hasAll {
		return CreateRequest{
			Question:   fields["question"],
			Answer:     fields["answer"],
			Difficulty: fields["difficulty"],
			Category:   fields["category"],
		}, nil
	}

	if term, ok := fields["searchTerm"]; ok {
		return SearchRequest{SearchTerm: term}, nil
	}
	return nil, fail(ErrBadRequest, "decode submission", fmt.Errorf("neither a question nor a search"))
}

// Coerce converts the raw creation fields. difficulty and category accept integers,
// integral-or-fractional numbers (truncated) and strings holding an integer.
// question and answer accept strings and null.
func (r CreateRequest) Coerce() (NewQuestion, error) {
	text, err := coerceText(r.Question)
	if err != nil {
		return NewQuestion{}, fail(ErrCoercion, "coerce question", err)
	}
	answer, err := coerceText(r.Answer)
	if err != nil {
		return NewQuestion{}, fail(ErrCoercion, "coerce answer", err)
	}
	difficulty, err := coerceInt(r.Difficulty)
	if err != nil {
		return NewQuestion{}, fail(ErrCoercion, "coerce difficulty", err)
	}
	category, err := coerceInt(r.Category)
	if err != nil {
		return NewQuestion{}, fail(ErrCoercion, "coerce category", err)
	}
	return NewQuestion{
		Question:   text,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}, nil
}

// Term returns the search term. null searches for the empty string, which matches everything.
func (r SearchRequest) Term() (string, error) {
	term, err := coerceText(r.SearchTerm)
	if err != nil {
		return "", fail(ErrNotFound, "read search term", err)
	}
	return term, nil
}

func coerceText(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("expected string, got %s", raw)
	}
	return s, nil
}

func coerceInt(raw json.RawMessage) (int32, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q: %w", s, err)
		}
		return int32(n), nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, fmt.Errorf("expected number, got %s", raw)
	}
	if n, err := num.Int64(); err == nil {
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("integer %d out of range", n)
		}
		return int32(n), nil
	}
	f, err := num.Float64()
	if err != nil {
		return 0, fmt.Errorf("invalid number %s: %w", num, err)
	}
	f = math.Trunc(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("number %s out of range", num)
	}
	return int32(f), nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// QuizRequest is the body of POST /quizzes.
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
	PreviousQuestions []int64       `json:"previous_questions" validate:"required"`
}

// QuizCategory selects the quiz pool. An id of 0 selects every category.
type QuizCategory struct {
	ID   *CategoryID `json:"id" validate:"required"`
	Type string      `json:"type"`
}

// CategoryID decodes from a JSON integer or a string holding one.
type CategoryID int32

func (c *CategoryID) UnmarshalJSON(data []byte) error {
	n, err := coerceInt(data)
	if err != nil {
		return err
	}
	*c = CategoryID(n)
	return nil
}

// DecodeQuizRequest decodes and validates a quiz body. Any malformed input is ErrBadRequest.
func DecodeQuizRequest(body []byte, validate *validator.Validate) (QuizRequest, error) {
	var req QuizRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return QuizRequest{}, fail(ErrBadRequest, "decode quiz request", err)
	}
	if err := validate.Struct(req); err != nil {
		return QuizRequest{}, fail(ErrBadRequest, "validate quiz request", err)
	}
	return req, nil
}

// Category returns the requested category, AllCategories for "all".
func (r QuizRequest) Category() int32 {
	return int32(*r.QuizCategory.ID)
}
