// backend-go/internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/storedispatch/backend-go/internal/domain"
)

// Logical database targets. Every statement in a lifecycle transition runs
// against exactly one of these.
const (
	TargetCloud = "cloud"
	TargetLocal = "local"
)

// TargetStore names the dedicated per-store mirror database.
func TargetStore(name string) string {
	return "store:" + name
}

// CloudOrderRepository is the warehouse-wide mirror (tblorders). One
// denormalized row per order carries both header and line fields.
type CloudOrderRepository interface {
	InsertMirror(ctx context.Context, h *domain.Order, l *domain.OrderLine) error
	OrderExists(ctx context.Context, orderNo string) (bool, error)
	StampApproved(ctx context.Context, orderNo, by string, at time.Time, finalQty int) (int64, error)
	StampPacked(ctx context.Context, orderNo, by string, at time.Time, amendedQty int) (int64, error)
	StampDispatched(ctx context.Context, orderNo, by string, at time.Time, finalQty int) (int64, error)
	StampReceived(ctx context.Context, orderNo string, at time.Time, rcvdQty int) (int64, error)
	ListByStore(ctx context.Context, storeName string) ([]*domain.OrderView, error)
}

// LocalOrderRepository holds the operational detail: header (tblorder), lines
// (tblorder_tran), and box info (tblorderboxinfo). Methods that return an
// affected-row count exist so callers can raise NotFoundError on zero rows.
type LocalOrderRepository interface {
	InsertHeader(ctx context.Context, h *domain.Order) error
	InsertLine(ctx context.Context, l *domain.OrderLine) error
	InsertBox(ctx context.Context, b *domain.BoxInfo) error
	CountBoxes(ctx context.Context, orderNo string) (int, error)

	ApproveHeader(ctx context.Context, orderNo, by string, at time.Time) (int64, error)
	ApproveLine(ctx context.Context, orderNo string, finalQty int) (int64, error)
	PackHeader(ctx context.Context, orderNo, by string, at time.Time) (int64, error)
	PackLine(ctx context.Context, orderNo string, amendedQty int) (int64, error)
	DispatchHeader(ctx context.Context, orderNo, by string, at time.Time) (int64, error)
	DispatchLine(ctx context.Context, orderNo string, finalQty int) (int64, error)

	// Receive runs header and line receipt stamps in a single local
	// transaction, rolled back as one on any failure.
	Receive(ctx context.Context, orderNo string, at time.Time, rcvdQty int) (int64, error)

	GetHeader(ctx context.Context, orderNo string) (*domain.Order, error)
	GetLine(ctx context.Context, orderNo string) (*domain.OrderLine, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListByStore(ctx context.Context, storeName string) ([]*domain.OrderView, error)
	ListDiscrepancies(ctx context.Context) ([]*domain.Discrepancy, error)
}

// StoreOrderRepository is the dedicated per-store mirror reached over the
// store's own connection. Only the dispatch stamp is replayed there.
type StoreOrderRepository interface {
	MirrorDispatch(ctx context.Context, orderNo, by string, at time.Time) (int64, error)
}

// StoreRepository manages registered sites (tblstores) in the local database.
type StoreRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
	// CreateWithUser inserts the store, its user account, and the junction
	// row in one transaction.
	CreateWithUser(ctx context.Context, store *domain.Store, user *domain.User) (storeID, userID int64, err error)
}

// UserRepository manages login accounts (tblusers) in the local database.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CatalogRepository reads reference data from the cloud database.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListAvailableProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, stockCode string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListPackSizes(ctx context.Context) ([]domain.PackSize, error)
}

// GRNRepository persists goods receipt notes in the local database. The
// whole receipt — header, lines, stock-on-hand increments, order completion —
// commits or rolls back as one transaction.
type GRNRepository interface {
	CreateReceipt(ctx context.Context, grn *domain.GRN, lines []*domain.GRNLine, complete int) error
}

// SyncJournalRepository records cross-database transition progress in the
// local database.
type SyncJournalRepository interface {
	Begin(ctx context.Context, e *domain.SyncJournalEntry) error
	Advance(ctx context.Context, id, lastStep string, stepIndex int) error
	ListPending(ctx context.Context) ([]*domain.SyncJournalEntry, error)
	MarkComplete(ctx context.Context, id string) error
}
