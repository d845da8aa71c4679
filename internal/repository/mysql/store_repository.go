// backend-go/internal/repository/mysql/store_repository.go
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storedispatch/backend-go/internal/domain"
)

type storeRepository struct {
	db *DB
}

func NewStoreRepository(db *DB) *storeRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) FindByName(ctx context.Context, name string) (*domain.Store, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var s domain.Store
	query := `SELECT id, Storename, userName, Password, PortNo, HostIP FROM tblstores WHERE Storename = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &s, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}
	return &s, nil
}

func (r *storeRepository) List(ctx context.Context) ([]*domain.Store, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var stores []*domain.Store
	query := `SELECT id, Storename, userName, Password, PortNo, HostIP FROM tblstores ORDER BY Storename`
	if err := r.db.SelectContext(ctx, &stores, query); err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// CreateWithUser inserts the store, its login account, and the user-store
// junction row in one transaction.
func (r *storeRepository) CreateWithUser(ctx context.Context, store *domain.Store, user *domain.User) (int64, int64, error) {
	var storeID, userID int64

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		storeQuery := `
			INSERT INTO tblstores (Storename, userName, Password, PortNo, HostIP)
			VALUES (?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, storeQuery, store.StoreName, store.UserName, store.Password, store.PortNo, store.HostIP)
		if err != nil {
			return fmt.Errorf("failed to insert store: %w", err)
		}
		if storeID, err = res.LastInsertId(); err != nil {
			return err
		}

		userQuery := `
			INSERT INTO tblusers (username, Email, Password, Roles, Permission, Created, StoreName)
			VALUES (?, ?, ?, ?, ?, NOW(), ?)`
		res, err = tx.ExecContext(ctx, userQuery, user.Username, user.Email, user.Password, user.Roles, user.Permiss, store.StoreName)
		if err != nil {
			return fmt.Errorf("failed to insert store user: %w", err)
		}
		if userID, err = res.LastInsertId(); err != nil {
			return err
		}

		junctionQuery := `INSERT INTO tbluserstores (userId, storeId) VALUES (?, ?)`
		if _, err := tx.ExecContext(ctx, junctionQuery, userID, storeID); err != nil {
			return fmt.Errorf("failed to link user to store: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return storeID, userID, nil
}
