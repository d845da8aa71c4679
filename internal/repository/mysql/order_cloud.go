// backend-go/internal/repository/mysql/order_cloud.go
package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/storedispatch/backend-go/internal/domain"
)

// cloudOrderRepository works against tblorders in the cloud database: one
// denormalized row per order, header and line fields together.
type cloudOrderRepository struct {
	db *DB
}

func NewCloudOrderRepository(db *DB) *cloudOrderRepository {
	return &cloudOrderRepository{db: db}
}

func (r *cloudOrderRepository) InsertMirror(ctx context.Context, h *domain.Order, l *domain.OrderLine) error {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO tblorders (
			DateTime, OrderNo, StoreName, OrderComplete, User,
			StockCode, StockDescription, MajorNo, MajorName,
			Sub1No, Sub1Name, Order_Qty, Rcvd_Qty, Amended_Qty, Final_Qty, Amended_Shop
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		h.DateTime, h.OrderNo, h.StoreName, h.OrderComplete, h.User,
		l.StockCode, l.StockDescription, l.MajorNo, l.MajorName,
		l.Sub1No, l.Sub1Name, l.OrderQty, l.RcvdQty, l.AmendedQty, l.FinalQty, l.AmendedShop,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cloud order mirror: %w", err)
	}
	return nil
}

func (r *cloudOrderRepository) OrderExists(ctx context.Context, orderNo string) (bool, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM tblorders WHERE OrderNo = ?`
	if err := r.db.GetContext(ctx, &count, query, orderNo); err != nil {
		return false, fmt.Errorf("failed to check cloud order: %w", err)
	}
	return count > 0, nil
}

func (r *cloudOrderRepository) StampApproved(ctx context.Context, orderNo, by string, at time.Time, finalQty int) (int64, error) {
	query := `
		UPDATE tblorders
		SET Order_Approved_By = ?, Order_Approved_Date = ?, Final_Qty = ?, OrderComplete = 1
		WHERE OrderNo = ?`
	return r.exec(ctx, "stamp approved", query, by, at, finalQty, orderNo)
}

func (r *cloudOrderRepository) StampPacked(ctx context.Context, orderNo, by string, at time.Time, amendedQty int) (int64, error) {
	query := `
		UPDATE tblorders
		SET Order_Packed_By = ?, Order_Packed_Date = ?, Amended_Qty = ?
		WHERE OrderNo = ?`
	return r.exec(ctx, "stamp packed", query, by, at, amendedQty, orderNo)
}

func (r *cloudOrderRepository) StampDispatched(ctx context.Context, orderNo, by string, at time.Time, finalQty int) (int64, error) {
	query := `
		UPDATE tblorders
		SET Order_Dispatch_By = ?, Order_Dispatched_Date = ?, Final_Qty = ?
		WHERE OrderNo = ?`
	return r.exec(ctx, "stamp dispatched", query, by, at, finalQty, orderNo)
}

func (r *cloudOrderRepository) StampReceived(ctx context.Context, orderNo string, at time.Time, rcvdQty int) (int64, error) {
	query := `
		UPDATE tblorders
		SET Order_Rcvd_Date = ?, Rcvd_Qty = ?, OrderComplete = 1
		WHERE OrderNo = ?`
	return r.exec(ctx, "stamp received", query, at, rcvdQty, orderNo)
}

func (r *cloudOrderRepository) ListByStore(ctx context.Context, storeName string) ([]*domain.OrderView, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		SELECT
			o.OrderNo,
			o.StoreName,
			o.OrderComplete,
			o.User,
			o.Order_Approved_By,
			o.Order_Approved_Date,
			o.Order_Packed_By,
			o.Order_Packed_Date,
			o.Order_Dispatch_By,
			o.Order_Dispatched_Date,
			o.Order_Rcvd_Date,
			o.StockCode,
			LEFT(o.StockDescription, 256) AS StockDescription,
			o.MajorNo,
			o.MajorName,
			o.Sub1No,
			o.Sub1Name,
			o.Order_Qty,
			o.Rcvd_Qty,
			o.Amended_Qty,
			o.Final_Qty,
			o.Amended_Shop
		FROM tblorders o
		WHERE o.StoreName = ?`

	var views []*domain.OrderView
	if err := r.db.SelectContext(ctx, &views, query, storeName); err != nil {
		return nil, fmt.Errorf("failed to list cloud orders for store: %w", err)
	}
	return views, nil
}

func (r *cloudOrderRepository) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to %s on cloud order: %w", op, err)
	}
	return res.RowsAffected()
}
