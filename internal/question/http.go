package question

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, validate *validator.Validate) *HTTPHandler {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return &HTTPHandler{svc: svc, validate: validate}
}

// Register mounts the trivia routes on e.
func (h *HTTPHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.GetCategories)
	e.GET("/categories/:id/questions", h.GetCategoryQuestions)
	e.GET("/questions", h.GetQuestions)
	e.POST("/questions", h.PostQuestions)
	e.DELETE("/questions/:id", h.DeleteQuestion)
	e.POST("/quizzes", h.PostQuiz)
}

type categoriesResponse struct {
	Success         bool             `json:"success"`
	Categories      map[int32]string `json:"categories"`
	TotalCategories int              `json:"total_categories"`
}

type listingResponse struct {
	Success        bool             `json:"success"`
	Questions      []Question       `json:"questions"`
	TotalQuestions int              `json:"total_questions"`
	Categories     map[int32]string `json:"categories"`
	Created        *int64           `json:"created,omitempty"`
	Deleted        *int64           `json:"deleted,omitempty"`
}

type searchResponse struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
	SearchTerm     string     `json:"search_term"`
}

type categoryQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory int32      `json:"current_category"`
}

type quizResponse struct {
	Success  bool     `json:"success"`
	Question Question `json:"question"`
}

// GetCategories handles GET /categories. An empty category table is a 404.
func (h *HTTPHandler) GetCategories(c echo.Context) error {
	categories, err := h.svc.Categories(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	if len(categories) == 0 {
		return httperrors.RespondNotFound(c)
	}
	return c.JSON(http.StatusOK, categoriesResponse{
		Success:         true,
		Categories:      categories,
		TotalCategories: len(categories),
	})
}

// GetQuestions handles GET /questions?page=N.
func (h *HTTPHandler) GetQuestions(c echo.Context) error {
	listing, err := h.svc.Listing(c.Request().Context(), ParsePage(c.QueryParam("page")))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, newListingResponse(listing))
}

// GetCategoryQuestions handles GET /categories/:id/questions?page=N.
func (h *HTTPHandler) GetCategoryQuestions(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 31)
	if err != nil {
		return httperrors.RespondNotFound(c)
	}
	categoryID := int32(id)

	page, err := h.svc.ListByCategory(c.Request().Context(), categoryID, ParsePage(c.QueryParam("page")))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       nonNil(page.Questions),
		TotalQuestions:  page.Total,
		CurrentCategory: categoryID,
	})
}

// PostQuestions handles POST /questions. The body shape selects creation or search.
func (h *HTTPHandler) PostQuestions(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return h.fail(c, fail(ErrBadRequest, "read body", err))
	}
	sub, err := DecodeSubmission(body)
	if err != nil {
		return h.fail(c, err)
	}

	ctx := c.Request().Context()
	page := ParsePage(c.QueryParam("page"))

	switch req := sub.(type) {
	case CreateRequest:
		id, listing, err := h.svc.Create(ctx, req, page)
		if err != nil {
			return h.fail(c, err)
		}
		resp := newListingResponse(listing)
		resp.Created = &id
		return c.JSON(http.StatusOK, resp)

	case SearchRequest:
		term, err := req.Term()
		if err != nil {
			return h.fail(c, err)
		}
		results, err := h.svc.Search(ctx, term, page)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(http.StatusOK, searchResponse{
			Success:        true,
			Questions:      nonNil(results.Questions),
			TotalQuestions: results.Total,
			SearchTerm:     term,
		})
	}
	return httperrors.RespondBadRequest(c)
}

// DeleteQuestion handles DELETE /questions/:id.
func (h *HTTPHandler) DeleteQuestion(c echo.Context) error {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		return httperrors.RespondNotFound(c)
	}
	id := int64(raw)

	listing, err := h.svc.Delete(c.Request().Context(), id, ParsePage(c.QueryParam("page")))
	if err != nil {
		return h.fail(c, err)
	}
	resp := newListingResponse(listing)
	resp.Deleted = &id
	return c.JSON(http.StatusOK, resp)
}

// PostQuiz handles POST /quizzes.
func (h *HTTPHandler) PostQuiz(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return h.fail(c, fail(ErrBadRequest, "read body", err))
	}
	req, err := DecodeQuizRequest(body, h.validate)
	if err != nil {
		return h.fail(c, err)
	}

	q, err := h.svc.NextQuestion(c.Request().Context(), req.Category(), req.PreviousQuestions)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, quizResponse{Success: true, Question: q})
}

func (h *HTTPHandler) fail(c echo.Context, err error) error {
	status := StatusOf(err)
	logger := logging.FromContext(c.Request().Context())
	logger.Info().Err(err).Int("status", status).Msg("request failed")
	return httperrors.RespondError(c, status)
}

// StatusOf maps a service error to its HTTP status. Errors without a known kind are 422.
// Unprocessable is checked first: a create whose follow-up listing failed carries both kinds.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}

func newListingResponse(l Listing) listingResponse {
	categories := l.Categories
	if categories == nil {
		categories = map[int32]string{}
	}
	return listingResponse{
		Success:        true,
		Questions:      nonNil(l.Questions),
		TotalQuestions: l.Total,
		Categories:     categories,
	}
}

func nonNil(qs []Question) []Question {
	if qs == nil {
		return []Question{}
	}
	return qs
}
