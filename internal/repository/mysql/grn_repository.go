// backend-go/internal/repository/mysql/grn_repository.go
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/storedispatch/backend-go/internal/domain"
)

// grnRepository persists goods receipt notes in the local database. A GRN is
// an append-only ledger record: header, lines, stock-on-hand increments, and
// the order completion flag commit together or not at all.
type grnRepository struct {
	db *DB
}

func NewGRNRepository(db *DB) *grnRepository {
	return &grnRepository{db: db}
}

func (r *grnRepository) CreateReceipt(ctx context.Context, grn *domain.GRN, lines []*domain.GRNLine, complete int) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		headerQuery := `
			INSERT INTO tblgrn (
				GRVNumber, OrderNo, InvoiceNumber, SupplierCode,
				ShippingCharge, HandlingCharge, OtherCharge,
				SubTotal, DiscountAmount, VATAmount, ReceivedBy, DateTime
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.ExecContext(ctx, headerQuery,
			grn.GRVNumber, grn.OrderNo, grn.InvoiceNumber, grn.SupplierCode,
			grn.ShippingCharge, grn.HandlingCharge, grn.OtherCharge,
			grn.SubTotal, grn.DiscountAmount, grn.VATAmount, grn.ReceivedBy, grn.DateTime,
		)
		if err != nil {
			return fmt.Errorf("failed to insert GRN header: %w", err)
		}

		lineQuery := `
			INSERT INTO tblgrn_tran (
				GRVNumber, StockCode, QtyReceived, BonusQty, QtyOrdered,
				ExclUnitCost, InclUnitCost, Markup, ExclSelling, InclSelling,
				VATPercentage, Discount1, DiscountAmount, VATAmount, SubTotal, LineTotal
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		lineStmt, err := tx.PrepareContext(ctx, lineQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare GRN line statement: %w", err)
		}
		defer lineStmt.Close()

		// Additive on purpose: a second receipt for the same stock code must
		// stack on top of the first, never overwrite it.
		stockQuery := `UPDATE tblproducts SET StockOnHand = StockOnHand + ? WHERE StockCode = ?`
		stockStmt, err := tx.PrepareContext(ctx, stockQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare stock statement: %w", err)
		}
		defer stockStmt.Close()

		for _, l := range lines {
			_, err := lineStmt.ExecContext(ctx,
				l.GRVNumber, l.StockCode, l.QtyReceived, l.BonusQty, l.QtyOrdered,
				l.ExclUnitCost, l.InclUnitCost, l.Markup, l.ExclSelling, l.InclSelling,
				l.VATPercentage, l.Discount1, l.DiscountAmount, l.VATAmount, l.SubTotal, l.LineTotal,
			)
			if err != nil {
				return fmt.Errorf("failed to insert GRN line %s: %w", l.StockCode, err)
			}
			if _, err := stockStmt.ExecContext(ctx, l.QtyReceived, l.StockCode); err != nil {
				return fmt.Errorf("failed to increment stock for %s: %w", l.StockCode, err)
			}
		}

		completeQuery := `UPDATE tblorder SET OrderComplete = ? WHERE OrderNo = ?`
		if _, err := tx.ExecContext(ctx, completeQuery, complete, grn.OrderNo); err != nil {
			return fmt.Errorf("failed to update order completeness: %w", err)
		}
		return nil
	})
}
