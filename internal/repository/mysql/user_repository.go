// backend-go/internal/repository/mysql/user_repository.go
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storedispatch/backend-go/internal/domain"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO tblusers (username, Email, Password, Roles, Permission, Created, StoreName)
		VALUES (?, ?, ?, ?, ?, NOW(), ?)`
	res, err := r.db.ExecContext(ctx, query, u.Username, u.Email, u.Password, u.Roles, u.Permiss, u.StoreName)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return res.LastInsertId()
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var u domain.User
	query := `SELECT * FROM tblusers WHERE LOWER(Email) = LOWER(?) LIMIT 1`
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}
