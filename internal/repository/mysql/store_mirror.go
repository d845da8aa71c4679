// backend-go/internal/repository/mysql/store_mirror.go
package mysql

import (
	"context"
	"fmt"
	"time"
)

// storeMirrorRepository replays dispatch stamps onto a store's dedicated
// database. It is the only writer the per-store mirror has.
type storeMirrorRepository struct {
	db *DB
}

func NewStoreMirrorRepository(db *DB) *storeMirrorRepository {
	return &storeMirrorRepository{db: db}
}

func (r *storeMirrorRepository) MirrorDispatch(ctx context.Context, orderNo, by string, at time.Time) (int64, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		UPDATE tblorder
		SET Order_Dispatch_By = ?, Order_Dispatched_Date = ?
		WHERE OrderNo = ?`
	res, err := r.db.ExecContext(ctx, query, by, at, orderNo)
	if err != nil {
		return 0, fmt.Errorf("failed to mirror dispatch: %w", err)
	}
	return res.RowsAffected()
}
