package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	appservices "github.com/fr0stylo/shopreviews/internal/app/services"
)

const reviewSavedMessage = "Review saved successfully"

// ReviewRoutes serves review submission and listing.
type ReviewRoutes struct {
	ingest *appservices.ReviewIngestService
}

// NewReviewRoutes constructs review routes.
func NewReviewRoutes(ingest *appservices.ReviewIngestService) *ReviewRoutes {
	return &ReviewRoutes{ingest: ingest}
}

// RegisterRoutes registers review endpoints.
func (r *ReviewRoutes) RegisterRoutes(s *echo.Echo) {
	api := s.Group("/api")
	api.POST("/reviews", r.handleSubmitReview)
	api.GET("/reviews", r.handleListReviews)
	api.GET("/products/:productId/reviews", r.handleListProductReviews)
}

type reviewCreatedResponse struct {
	Message string        `json:"message"`
	Review  domain.Review `json:"review"`
}

type reviewListResponse struct {
	Reviews []domain.Review `json:"reviews"`
}

func (r *ReviewRoutes) handleSubmitReview(c echo.Context) error {
	submission, err := bindSubmission(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Malformed request body"})
	}
	return submitReview(c, r.ingest, submission)
}

func (r *ReviewRoutes) handleListReviews(c echo.Context) error {
	reviews, err := r.ingest.ListReviews(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviewListResponse{Reviews: reviews})
}

func (r *ReviewRoutes) handleListProductReviews(c echo.Context) error {
	reviews, err := r.ingest.ListProductReviews(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviewListResponse{Reviews: reviews})
}

func submitReview(c echo.Context, ingest *appservices.ReviewIngestService, submission appservices.ReviewSubmission) error {
	review, err := ingest.SubmitReview(c.Request().Context(), submission)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, reviewCreatedResponse{Message: reviewSavedMessage, Review: review})
}

// bindSubmission reads productId, rating and comment from a form or JSON body.
// Fields missing from the body stay nil.
func bindSubmission(c echo.Context) (appservices.ReviewSubmission, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return bindJSONSubmission(c)
	}
	if _, err := c.FormParams(); err != nil {
		return appservices.ReviewSubmission{}, err
	}
	form := c.Request().PostForm
	field := func(name string) *string {
		values, ok := form[name]
		if !ok || len(values) == 0 {
			return nil
		}
		value := values[0]
		return &value
	}
	return appservices.ReviewSubmission{
		ProductID: field("productId"),
		Rating:    field("rating"),
		Comment:   field("comment"),
	}, nil
}

func bindJSONSubmission(c echo.Context) (appservices.ReviewSubmission, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return appservices.ReviewSubmission{}, err
	}
	field := func(name string) *string {
		raw, ok := body[name]
		if !ok {
			return nil
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil || value == nil {
			return nil
		}
		var text string
		switch v := value.(type) {
		case string:
			text = v
		default:
			text = strings.TrimSpace(string(raw))
		}
		return &text
	}
	return appservices.ReviewSubmission{
		ProductID: field("productId"),
		Rating:    field("rating"),
		Comment:   field("comment"),
	}, nil
}
