// backend-go/internal/repository/mysql/catalog_repository.go
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storedispatch/backend-go/internal/domain"
)

// catalogRepository reads reference data from the cloud database.
type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.selectProducts(ctx, `SELECT StockCode, StockDescription, MajorNo, Sub1No, StockOnHand, PackQty FROM tblproducts`)
}

func (r *catalogRepository) ListAvailableProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.selectProducts(ctx, `SELECT StockCode, StockDescription, MajorNo, Sub1No, StockOnHand, PackQty FROM tblproducts WHERE StockOnHand > 0`)
}

func (r *catalogRepository) GetProduct(ctx context.Context, stockCode string) (*domain.Product, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var p domain.Product
	query := `SELECT StockCode, StockDescription, MajorNo, Sub1No, StockOnHand, PackQty FROM tblproducts WHERE StockCode = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &p, query, stockCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var categories []*domain.Category
	query := `SELECT MajorNo, MajorDescription FROM tblcategory`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *catalogRepository) ListPackSizes(ctx context.Context) ([]domain.PackSize, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var sizes []domain.PackSize
	query := `SELECT PackSize, QtyPerBox FROM tblpacksize`
	if err := r.db.SelectContext(ctx, &sizes, query); err != nil {
		return nil, fmt.Errorf("failed to list pack sizes: %w", err)
	}
	return sizes, nil
}

func (r *catalogRepository) selectProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var products []*domain.Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
