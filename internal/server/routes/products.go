package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/shopreviews/internal/app/domain"
	appservices "github.com/fr0stylo/shopreviews/internal/app/services"
)

// ProductRoutes serves the embedded admin product page endpoints.
type ProductRoutes struct {
	lookup *appservices.ProductLookupService
	ingest *appservices.ReviewIngestService
}

// NewProductRoutes constructs product routes.
func NewProductRoutes(lookup *appservices.ProductLookupService, ingest *appservices.ReviewIngestService) *ProductRoutes {
	return &ProductRoutes{lookup: lookup, ingest: ingest}
}

// RegisterRoutes registers product endpoints.
func (p *ProductRoutes) RegisterRoutes(s *echo.Echo) {
	app := s.Group("/app", LoadShopSession)
	app.GET("/products/:productId", p.handleGetProduct)
	app.POST("/products/:productId/reviews", p.handleSubmitProductReview)
}

type productResponse struct {
	Product domain.Product `json:"product"`
}

func (p *ProductRoutes) handleGetProduct(c echo.Context) error {
	product, err := p.lookup.LookupProduct(c.Request().Context(), GetShopSession(c), c.Param("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, productResponse{Product: product})
}

func (p *ProductRoutes) handleSubmitProductReview(c echo.Context) error {
	submission, err := bindSubmission(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Malformed request body"})
	}
	productID := c.Param("productId")
	submission.ProductID = &productID
	return submitReview(c, p.ingest, submission)
}
