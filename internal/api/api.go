// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/storedispatch/backend-go/internal/api/handlers"
	"github.com/storedispatch/backend-go/internal/api/middleware"
	"github.com/storedispatch/backend-go/internal/service"
)

type Services struct {
	OrderService   *service.OrderService
	ReceiptService *service.ReceiptService
	SyncService    *service.SyncService
	StoreService   *service.StoreService
	AuthService    *service.AuthService
	CatalogService *service.CatalogService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "store"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")

	if services != nil {
		if services.AuthService != nil {
			authHandler := handlers.NewAuthHandler(services.AuthService)
			apiGroup.POST("/register", authHandler.Register)
			apiGroup.POST("/login", authHandler.Login)
			apiGroup.POST("/logout", authHandler.Logout)
		}

		if services.StoreService != nil {
			shopHandler := handlers.NewShopHandler(services.StoreService)
			apiGroup.POST("/create-shop", shopHandler.CreateShop)
			apiGroup.GET("/shops", shopHandler.ListShops)
		}

		if services.CatalogService != nil {
			catalogHandler := handlers.NewCatalogHandler(services.CatalogService)
			apiGroup.GET("/products", catalogHandler.Products)
			apiGroup.GET("/categories", catalogHandler.Categories)
		}

		if services.OrderService != nil {
			orderHandler := handlers.NewOrderHandler(services.OrderService)
			apiGroup.POST("/create-order", orderHandler.CreateOrder)
			apiGroup.GET("/fetch-orders", orderHandler.FetchOrders)
			apiGroup.GET("/store-orders", orderHandler.StoreOrders)
			apiGroup.PUT("/approve-order", orderHandler.ApproveOrder)
			apiGroup.PUT("/pack-order", orderHandler.PackOrder)
			apiGroup.PUT("/dispatch-order", orderHandler.DispatchOrder)
			apiGroup.PUT("/update-order-status", orderHandler.UpdateOrderStatus)
			apiGroup.GET("/discrepancies", orderHandler.Discrepancies)
		}

		if services.ReceiptService != nil {
			receiptHandler := handlers.NewReceiptHandler(services.ReceiptService)
			apiGroup.POST("/confirm-receipt", receiptHandler.ConfirmReceipt)
		}

		if services.SyncService != nil {
			syncHandler := handlers.NewSyncHandler(services.SyncService)
			syncGroup := apiGroup.Group("/sync")
			{
				syncGroup.GET("/pending", syncHandler.Pending)
				syncGroup.POST("/replay", syncHandler.Replay)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
