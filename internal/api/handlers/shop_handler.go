// backend-go/internal/api/handlers/shop_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/service"
)

// ShopRegistry is the slice of the store service the HTTP layer needs.
type ShopRegistry interface {
	CreateShop(ctx context.Context, in *service.CreateShopInput) (storeID, userID int64, err error)
	List(ctx context.Context) ([]*domain.Store, error)
}

type ShopHandler struct {
	stores ShopRegistry
}

func NewShopHandler(stores ShopRegistry) *ShopHandler {
	return &ShopHandler{stores: stores}
}

// CreateShop handles POST /api/create-shop. The store row, its login user,
// and the junction row are written in one local transaction.
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var in service.CreateShopInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	storeID, userID, err := h.stores.CreateShop(c.Request.Context(), &in)
	if err != nil {
		respondError(c, "creating shop", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shop created successfully",
		"shopId":  storeID,
		"userId":  userID,
	})
}

// ListShops handles GET /api/shops.
func (h *ShopHandler) ListShops(c *gin.Context) {
	stores, err := h.stores.List(c.Request.Context())
	if err != nil {
		respondError(c, "fetching shops", err)
		return
	}
	if len(stores) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No shops found"})
		return
	}
	c.JSON(http.StatusOK, stores)
}
