// backend-go/internal/repository/mysql/order_local.go
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/storedispatch/backend-go/internal/domain"
)

// localOrderRepository works against the site-local tables: tblorder
// (header), tblorder_tran (lines), tblorderboxinfo (boxes).
type localOrderRepository struct {
	db *DB
}

func NewLocalOrderRepository(db *DB) *localOrderRepository {
	return &localOrderRepository{db: db}
}

func (r *localOrderRepository) InsertHeader(ctx context.Context, h *domain.Order) error {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO tblorder (DateTime, OrderNo, StoreName, OrderComplete, User)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, h.DateTime, h.OrderNo, h.StoreName, h.OrderComplete, h.User)
	if err != nil {
		return fmt.Errorf("failed to insert order header: %w", err)
	}
	return nil
}

func (r *localOrderRepository) InsertLine(ctx context.Context, l *domain.OrderLine) error {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO tblorder_tran (
			DateTime, OrderNo, StockCode, StockDescription, MajorNo, MajorName,
			Sub1No, Sub1Name, Order_Qty, Rcvd_Qty, Amended_Qty, Final_Qty, Amended_Shop
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.DateTime, l.OrderNo, l.StockCode, l.StockDescription, l.MajorNo, l.MajorName,
		l.Sub1No, l.Sub1Name, l.OrderQty, l.RcvdQty, l.AmendedQty, l.FinalQty, l.AmendedShop,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order line: %w", err)
	}
	return nil
}

func (r *localOrderRepository) InsertBox(ctx context.Context, b *domain.BoxInfo) error {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO tblorderboxinfo (OrderNo, StockCode, BoxNo, BoxCodeQty, BoxTotalQty, DoneAndPrinted)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, b.OrderNo, b.StockCode, b.BoxNo, b.BoxCodeQty, b.BoxTotalQty, b.DoneAndPrinted)
	if err != nil {
		return fmt.Errorf("failed to insert box info: %w", err)
	}
	return nil
}

func (r *localOrderRepository) CountBoxes(ctx context.Context, orderNo string) (int, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM tblorderboxinfo WHERE OrderNo = ?`
	if err := r.db.GetContext(ctx, &count, query, orderNo); err != nil {
		return 0, fmt.Errorf("failed to count boxes: %w", err)
	}
	return count, nil
}

func (r *localOrderRepository) ApproveHeader(ctx context.Context, orderNo, by string, at time.Time) (int64, error) {
	query := `
		UPDATE tblorder
		SET Order_Approved_By = ?, Order_Approved_Date = ?, OrderComplete = 1
		WHERE OrderNo = ?`
	return r.exec(ctx, "approve header", query, by, at, orderNo)
}

func (r *localOrderRepository) ApproveLine(ctx context.Context, orderNo string, finalQty int) (int64, error) {
	query := `UPDATE tblorder_tran SET Final_Qty = ? WHERE OrderNo = ?`
	return r.exec(ctx, "approve line", query, finalQty, orderNo)
}

func (r *localOrderRepository) PackHeader(ctx context.Context, orderNo, by string, at time.Time) (int64, error) {
	query := `
		UPDATE tblorder
		SET Order_Packed_By = ?, Order_Packed_Date = ?
		WHERE OrderNo = ?`
	return r.exec(ctx, "pack header", query, by, at, orderNo)
}

func (r *localOrderRepository) PackLine(ctx context.Context, orderNo string, amendedQty int) (int64, error) {
	query := `UPDATE tblorder_tran SET Amended_Qty = ? WHERE OrderNo = ?`
	return r.exec(ctx, "pack line", query, amendedQty, orderNo)
}

func (r *localOrderRepository) DispatchHeader(ctx context.Context, orderNo, by string, at time.Time) (int64, error) {
	query := `
		UPDATE tblorder
		SET Order_Dispatch_By = ?, Order_Dispatched_Date = ?
		WHERE OrderNo = ?`
	return r.exec(ctx, "dispatch header", query, by, at, orderNo)
}

func (r *localOrderRepository) DispatchLine(ctx context.Context, orderNo string, finalQty int) (int64, error) {
	query := `UPDATE tblorder_tran SET Final_Qty = ? WHERE OrderNo = ?`
	return r.exec(ctx, "dispatch line", query, finalQty, orderNo)
}

// Receive stamps the received date and quantity on header and line inside one
// local transaction. Parameters bind strictly by the documented column
// semantics: dates to date columns, quantities to quantity columns.
func (r *localOrderRepository) Receive(ctx context.Context, orderNo string, at time.Time, rcvdQty int) (int64, error) {
	var affected int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		headerQuery := `
			UPDATE tblorder
			SET Order_Rcvd_Date = ?, OrderComplete = 1
			WHERE OrderNo = ?`
		res, err := tx.ExecContext(ctx, headerQuery, at, orderNo)
		if err != nil {
			return fmt.Errorf("failed to stamp received header: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		affected = n

		lineQuery := `
			UPDATE tblorder_tran
			SET Rcvd_Qty = ?
			WHERE OrderNo = ?`
		if _, err := tx.ExecContext(ctx, lineQuery, rcvdQty, orderNo); err != nil {
			return fmt.Errorf("failed to stamp received line: %w", err)
		}
		return nil
	})
	return affected, err
}

func (r *localOrderRepository) GetHeader(ctx context.Context, orderNo string) (*domain.Order, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var h domain.Order
	query := `SELECT * FROM tblorder WHERE OrderNo = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &h, query, orderNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order header: %w", err)
	}
	return &h, nil
}

func (r *localOrderRepository) GetLine(ctx context.Context, orderNo string) (*domain.OrderLine, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var l domain.OrderLine
	query := `SELECT * FROM tblorder_tran WHERE OrderNo = ? LIMIT 1`
	if err := r.db.GetContext(ctx, &l, query, orderNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order line: %w", err)
	}
	return &l, nil
}

func (r *localOrderRepository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var orders []*domain.Order
	query := `SELECT * FROM tblorder ORDER BY DateTime DESC`
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByStore joins headers to lines with a LEFT JOIN so a header whose line
// row is missing still appears, with line fields null. Such a row is a
// consistency defect to surface, not an error to fail on.
func (r *localOrderRepository) ListByStore(ctx context.Context, storeName string) ([]*domain.OrderView, error) {
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
			t.StockCode,
			LEFT(t.StockDescription, 256) AS StockDescription,
			t.MajorNo,
			t.MajorName,
			t.Sub1No,
			t.Sub1Name,
			t.Order_Qty,
			t.Rcvd_Qty,
			t.Amended_Qty,
			t.Final_Qty,
			t.Amended_Shop
		FROM tblorder o
		LEFT JOIN tblorder_tran t ON o.OrderNo = t.OrderNo
		WHERE o.StoreName = ?`

	var views []*domain.OrderView
	if err := r.db.SelectContext(ctx, &views, query, storeName); err != nil {
		return nil, fmt.Errorf("failed to list local orders for store: %w", err)
	}
	return views, nil
}

func (r *localOrderRepository) ListDiscrepancies(ctx context.Context) ([]*domain.Discrepancy, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		SELECT
			t.OrderNo,
			t.StockCode,
			t.Order_Qty,
			t.Rcvd_Qty,
			t.Order_Qty - t.Rcvd_Qty AS missingQty
		FROM tblorder_tran t
		JOIN tblorder o ON o.OrderNo = t.OrderNo
		WHERE o.Order_Rcvd_Date IS NOT NULL
		  AND t.Rcvd_Qty < t.Order_Qty`

	var rows []*domain.Discrepancy
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list discrepancies: %w", err)
	}
	return rows, nil
}

func (r *localOrderRepository) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to %s: %w", op, err)
	}
	return res.RowsAffected()
}
