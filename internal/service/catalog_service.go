// backend-go/internal/service/catalog_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/storedispatch/backend-go/internal/cache"
	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/repository"
)

// CatalogService serves cloud reference data behind the catalog cache.
type CatalogService struct {
	repo  repository.CatalogRepository
	cache cache.CatalogCache
}

func NewCatalogService(repo repository.CatalogRepository, c cache.CatalogCache) *CatalogService {
	return &CatalogService{repo: repo, cache: c}
}

// Products lists catalog products, optionally only those with stock on hand.
func (s *CatalogService) Products(ctx context.Context, availableOnly bool) ([]*domain.Product, error) {
	if products, hit, err := s.cache.GetProducts(ctx, availableOnly); err != nil {
		log.Warn().Err(err).Msg("catalog cache read failed")
	} else if hit {
		return products, nil
	}

	var (
		products []*domain.Product
		err      error
	)
	if availableOnly {
		products, err = s.repo.ListAvailableProducts(ctx)
	} else {
		products, err = s.repo.ListProducts(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProducts(ctx, availableOnly, products); err != nil {
		log.Warn().Err(err).Msg("catalog cache write failed")
	}
	return products, nil
}

// Categories lists the major categories.
func (s *CatalogService) Categories(ctx context.Context) ([]*domain.Category, error) {
	if categories, hit, err := s.cache.GetCategories(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog cache read failed")
	} else if hit {
		return categories, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCategories(ctx, categories); err != nil {
		log.Warn().Err(err).Msg("catalog cache write failed")
	}
	return categories, nil
}
