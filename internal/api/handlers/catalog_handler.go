// backend-go/internal/api/handlers/catalog_handler.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storedispatch/backend-go/internal/domain"
)

// CatalogReader is the slice of the catalog service the HTTP layer needs.
type CatalogReader interface {
	Products(ctx context.Context, availableOnly bool) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]*domain.Category, error)
}

type CatalogHandler struct {
	catalog CatalogReader
}

func NewCatalogHandler(catalog CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Products handles GET /api/products. ?available=true restricts the result
// to rows with stock on hand.
func (h *CatalogHandler) Products(c *gin.Context) {
	availableOnly, _ := strconv.ParseBool(c.Query("available"))

	products, err := h.catalog.Products(c.Request.Context(), availableOnly)
	if err != nil {
		respondError(c, "fetching products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, "fetching categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
