// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storedispatch/backend-go/internal/api"
	"github.com/storedispatch/backend-go/internal/cache"
	"github.com/storedispatch/backend-go/internal/config"
	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/repository"
	"github.com/storedispatch/backend-go/internal/repository/mysql"
	"github.com/storedispatch/backend-go/internal/service"
	"github.com/storedispatch/backend-go/internal/storage"
	"github.com/storedispatch/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	stmtTimeout := time.Duration(cfg.Server.StatementTimeoutSec) * time.Second
	registry, err := mysql.NewRegistry(cfg.CloudDB, cfg.LocalDB, stmtTimeout)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to databases")
	}
	defer registry.Shutdown()

	cloudOrders := mysql.NewCloudOrderRepository(registry.Cloud())
	localOrders := mysql.NewLocalOrderRepository(registry.Local())
	storeRepo := mysql.NewStoreRepository(registry.Local())
	userRepo := mysql.NewUserRepository(registry.Local())
	catalogRepo := mysql.NewCatalogRepository(registry.Cloud())
	grnRepo := mysql.NewGRNRepository(registry.Local())
	journalRepo := mysql.NewSyncJournalRepository(registry.Local())

	catalogCache, err := cache.NewCatalogCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Catalog cache unavailable, running without it")
		catalogCache = cache.NewNoopCatalogCache()
	}

	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		archive, err = storage.NewMinioClient(cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("GRN archive unavailable, receipts will not be archived")
			archive = nil
		}
	}

	numbers := domain.NewNumberGenerator()
	runner := service.NewSagaRunner(journalRepo)

	mirrorFactory := func(ctx context.Context, storeName string) (repository.StoreOrderRepository, error) {
		db, err := registry.Store(ctx, storeName)
		if err != nil {
			return nil, err
		}
		return mysql.NewStoreMirrorRepository(db), nil
	}
	syncService := service.NewSyncService(cloudOrders, localOrders, journalRepo, mirrorFactory)

	services := &api.Services{
		OrderService:   service.NewOrderService(cloudOrders, localOrders, storeRepo, catalogRepo, runner, syncService, numbers),
		ReceiptService: service.NewReceiptService(cloudOrders, grnRepo, archive, numbers),
		SyncService:    syncService,
		StoreService:   service.NewStoreService(storeRepo, cfg.Auth.BcryptCost),
		AuthService:    service.NewAuthService(userRepo, cfg.Auth),
		CatalogService: service.NewCatalogService(catalogRepo, catalogCache),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
