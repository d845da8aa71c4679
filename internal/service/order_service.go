// backend-go/internal/service/order_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/repository"
)

// CreateOrderInput carries the fields of a new order request.
type CreateOrderInput struct {
	DateTime         time.Time `json:"DateTime"`
	StockCode        string    `json:"StockCode"`
	StockDescription string    `json:"StockDescription"`
	MajorNo          string    `json:"MajorNo"`
	MajorName        string    `json:"MajorName"`
	Sub1No           string    `json:"Sub1No"`
	Sub1Name         string    `json:"Sub1Name"`
	OrderQty         int       `json:"Order_Qty"`
	RcvdQty          int       `json:"Rcvd_Qty"`
	AmendedQty       int       `json:"Amended_Qty"`
	FinalQty         int       `json:"Final_Qty"`
	AmendedShop      *string   `json:"Amended_Shop"`
	StoreName        string    `json:"storeName"`
}

// OrderService implements the order lifecycle: one implementation per
// transition, each transition a saga of per-database steps executed in the
// fixed order cloud mirror, local header, local line, local box info.
type OrderService struct {
	cloud   repository.CloudOrderRepository
	local   repository.LocalOrderRepository
	stores  repository.StoreRepository
	catalog repository.CatalogRepository
	runner  *SagaRunner
	sync    *SyncService
	numbers *domain.NumberGenerator
}

func NewOrderService(
	cloud repository.CloudOrderRepository,
	local repository.LocalOrderRepository,
	stores repository.StoreRepository,
	catalog repository.CatalogRepository,
	runner *SagaRunner,
	sync *SyncService,
	numbers *domain.NumberGenerator,
) *OrderService {
	return &OrderService{
		cloud:   cloud,
		local:   local,
		stores:  stores,
		catalog: catalog,
		runner:  runner,
		sync:    sync,
		numbers: numbers,
	}
}

// Create validates the request, generates the order number, and writes the
// cloud mirror, local header, local line, and box allocation. Validation
// happens before any write; a missing or unknown store never touches a
// database.
func (s *OrderService) Create(ctx context.Context, in *CreateOrderInput) (string, error) {
	if in.StoreName == "" {
		return "", domain.NewValidationError("storeName", "missing required field")
	}
	if in.OrderQty < 0 || in.RcvdQty < 0 || in.AmendedQty < 0 || in.FinalQty < 0 {
		return "", domain.NewValidationError("quantity", "must be non-negative")
	}

	store, err := s.stores.FindByName(ctx, in.StoreName)
	if err != nil {
		return "", domain.NewPersistenceError(repository.TargetLocal, "create/resolve store", err)
	}
	if store == nil {
		return "", domain.NewValidationError("storeName", "unknown store")
	}

	orderNo := s.numbers.NextOrderNo()
	when := in.DateTime
	if when.IsZero() {
		when = time.Now()
	}

	header := &domain.Order{
		OrderNo:       orderNo,
		DateTime:      when,
		StoreName:     in.StoreName,
		OrderComplete: 0,
		User:          "System",
	}

	finalQty := in.FinalQty
	if finalQty == 0 {
		// Not explicitly amended: final quantity follows the ordered one.
		finalQty = in.OrderQty
	}
	line := &domain.OrderLine{
		OrderNo:          orderNo,
		DateTime:         when,
		StockCode:        in.StockCode,
		StockDescription: in.StockDescription,
		MajorNo:          in.MajorNo,
		MajorName:        in.MajorName,
		Sub1No:           in.Sub1No,
		Sub1Name:         in.Sub1Name,
		OrderQty:         in.OrderQty,
		RcvdQty:          in.RcvdQty,
		AmendedQty:       in.AmendedQty,
		FinalQty:         finalQty,
		AmendedShop:      in.AmendedShop,
	}

	box := s.allocateBox(ctx, orderNo, line)

	saga := &Saga{
		OrderNo:    orderNo,
		Transition: "create",
		Steps: []SagaStep{
			{Target: repository.TargetCloud, Name: "insert mirror", Run: func(ctx context.Context) error {
				return s.cloud.InsertMirror(ctx, header, line)
			}},
			{Target: repository.TargetLocal, Name: "insert header", Run: func(ctx context.Context) error {
				return s.local.InsertHeader(ctx, header)
			}},
			{Target: repository.TargetLocal, Name: "insert line", Run: func(ctx context.Context) error {
				return s.local.InsertLine(ctx, line)
			}},
		},
	}
	if box != nil {
		saga.Steps = append(saga.Steps, SagaStep{
			Target: repository.TargetLocal, Name: "insert box info", Run: func(ctx context.Context) error {
				return s.local.InsertBox(ctx, box)
			},
		})
	}

	if err := s.runner.Execute(ctx, saga); err != nil {
		return "", err
	}
	return orderNo, nil
}

// allocateBox derives the box record for the new line. Failures here degrade
// to a box-less order rather than blocking creation: pack metadata is an
// optimization, not a precondition.
func (s *OrderService) allocateBox(ctx context.Context, orderNo string, line *domain.OrderLine) *domain.BoxInfo {
	if line.StockCode == "" {
		return nil
	}

	product, err := s.catalog.GetProduct(ctx, line.StockCode)
	if err != nil {
		log.Warn().Err(err).Str("stock_code", line.StockCode).Msg("could not resolve product for box allocation")
		return nil
	}

	qtyPerBox := 0
	if product != nil {
		packSizes, err := s.catalog.ListPackSizes(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("could not load pack sizes")
		}
		qtyPerBox = domain.QtyPerBox(product, packSizes)
	}

	existing, err := s.local.CountBoxes(ctx, orderNo)
	if err != nil {
		log.Warn().Err(err).Str("order_no", orderNo).Msg("could not count existing boxes")
		existing = 0
	}

	return domain.AllocateBox(orderNo, line.StockCode, line.OrderQty, qtyPerBox, existing)
}

// Approve sets the final quantity, stamps the approver, and marks the header
// complete. Zero rows affected anywhere means the order does not exist.
func (s *OrderService) Approve(ctx context.Context, orderNo string, approvedQty int, approvedBy string) error {
	if orderNo == "" || approvedBy == "" {
		return domain.NewValidationError("orderNo/approvedBy", "missing required field")
	}
	if approvedQty < 0 {
		return domain.NewValidationError("approvedQty", "must be non-negative")
	}
	now := time.Now()

	saga := &Saga{
		OrderNo:    orderNo,
		Transition: "approve",
		Steps: []SagaStep{
			{Target: repository.TargetCloud, Name: "stamp mirror", Run: func(ctx context.Context) error {
				return requireRows(s.cloud.StampApproved(ctx, orderNo, approvedBy, now, approvedQty))(orderNo)
			}},
			{Target: repository.TargetLocal, Name: "stamp header", Run: func(ctx context.Context) error {
				return requireRows(s.local.ApproveHeader(ctx, orderNo, approvedBy, now))(orderNo)
			}},
			{Target: repository.TargetLocal, Name: "stamp line", Run: func(ctx context.Context) error {
				return requireRows(s.local.ApproveLine(ctx, orderNo, approvedQty))(orderNo)
			}},
		},
	}
	return s.runner.Execute(ctx, saga)
}

// Pack stamps the packer on the header and the amended quantity on the line.
func (s *OrderService) Pack(ctx context.Context, orderNo, packedBy string, amendedQty int) error {
	if orderNo == "" || packedBy == "" {
		return domain.NewValidationError("orderNo/packedBy", "missing required field")
	}
	if amendedQty < 0 {
		return domain.NewValidationError("amendedQty", "must be non-negative")
	}
	now := time.Now()

	saga := &Saga{
		OrderNo:    orderNo,
		Transition: "pack",
		Steps: []SagaStep{
			{Target: repository.TargetCloud, Name: "stamp mirror", Run: func(ctx context.Context) error {
				return requireRows(s.cloud.StampPacked(ctx, orderNo, packedBy, now, amendedQty))(orderNo)
			}},
			{Target: repository.TargetLocal, Name: "stamp header", Run: func(ctx context.Context) error {
				return requireRows(s.local.PackHeader(ctx, orderNo, packedBy, now))(orderNo)
			}},
			{Target: repository.TargetLocal, Name: "stamp line", Run: func(ctx context.Context) error {
				return requireRows(s.local.PackLine(ctx, orderNo, amendedQty))(orderNo)
			}},
		},
	}
	return s.runner.Execute(ctx, saga)
}

// Dispatch stamps the dispatcher and final quantity, then replays the stamp
// onto the store's own database. The mirror replay is best effort: its
// failure comes back as a SyncWarning next to a successful dispatch.
func (s *OrderService) Dispatch(ctx context.Context, orderNo, dispatchedBy string, finalQty int) (*domain.SyncWarning, error) {
	if orderNo == "" || dispatchedBy == "" {
		return nil, domain.NewValidationError("orderNo/dispatchedBy", "missing required field")
	}
	if finalQty < 0 {
		return nil, domain.NewValidationError("finalQty", "must be non-negative")
	}
	now := time.Now()

	saga := &Saga{
		OrderNo:    orderNo,
		Transition: "dispatch",
		Steps: []SagaStep{
			{Target: repository.TargetCloud, Name: "stamp mirror", Run: func(ctx context.Context) error {
				return requireRows(s.cloud.StampDispatched(ctx, orderNo, dispatchedBy, now, finalQty))(orderNo)
			}},
			{Target: repository.TargetLocal, Name: "stamp header", Run: func(ctx context.Context) error {
				return requireRows(s.local.DispatchHeader(ctx, orderNo, dispatchedBy, now))(orderNo)
			}},
			{Target: repository.TargetLocal, Name: "stamp line", Run: func(ctx context.Context) error {
				return requireRows(s.local.DispatchLine(ctx, orderNo, finalQty))(orderNo)
			}},
		},
	}
	if err := s.runner.Execute(ctx, saga); err != nil {
		return nil, err
	}

	if warning := s.sync.MirrorDispatch(ctx, orderNo); warning != nil {
		log.Warn().Str("order_no", orderNo).Str("target", warning.Target).
			Str("reason", warning.Reason).Msg("dispatch mirror sync failed")
		return warning, nil
	}
	return nil, nil
}

// Receive stamps the received date and quantity on both databases and flips
// the order complete. Each database runs its own transaction; there is no
// cross-database atomicity.
func (s *OrderService) Receive(ctx context.Context, orderNo, status string, receivedDate time.Time, receivedQty int) error {
	if orderNo == "" || status == "" || receivedDate.IsZero() {
		return domain.NewValidationError("orderNo/status/receivedDate", "missing required field")
	}
	if !domain.OrderStatus(status).IsValid() {
		return domain.NewValidationError("status", "unknown status")
	}
	if receivedQty < 0 {
		return domain.NewValidationError("receivedQty", "must be non-negative")
	}

	saga := &Saga{
		OrderNo:    orderNo,
		Transition: "receive",
		Steps: []SagaStep{
			{Target: repository.TargetCloud, Name: "stamp mirror", Run: func(ctx context.Context) error {
				return requireRows(s.cloud.StampReceived(ctx, orderNo, receivedDate, receivedQty))(orderNo)
			}},
			{Target: repository.TargetLocal, Name: "stamp header and line", Run: func(ctx context.Context) error {
				return requireRows(s.local.Receive(ctx, orderNo, receivedDate, receivedQty))(orderNo)
			}},
		},
	}
	return s.runner.Execute(ctx, saga)
}

// ListOrders returns local orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.local.ListOrders(ctx)
}

// StoreOrders returns the union of the cloud mirror rows and the local
// header-line join for one store. Both sides are presented rather than
// deduplicated: a row on only one side is exactly the inconsistency the
// caller needs to see.
func (s *OrderService) StoreOrders(ctx context.Context, storeName string) ([]*domain.OrderView, error) {
	if storeName == "" {
		return nil, domain.NewValidationError("store", "missing store header")
	}

	cloudViews, err := s.cloud.ListByStore(ctx, storeName)
	if err != nil {
		return nil, domain.NewPersistenceError(repository.TargetCloud, "list store orders", err)
	}
	localViews, err := s.local.ListByStore(ctx, storeName)
	if err != nil {
		return nil, domain.NewPersistenceError(repository.TargetLocal, "list store orders", err)
	}
	return append(cloudViews, localViews...), nil
}

// Discrepancies lists received order lines that came up short.
func (s *OrderService) Discrepancies(ctx context.Context) ([]*domain.Discrepancy, error) {
	return s.local.ListDiscrepancies(ctx)
}

// requireRows converts a zero-row update into a NotFoundError for the order.
func requireRows(affected int64, err error) func(orderNo string) error {
	return func(orderNo string) error {
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.NewNotFoundError("order", orderNo)
		}
		return nil
	}
}
