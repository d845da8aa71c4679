// backend-go/internal/service/receipt_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/repository"
	"github.com/storedispatch/backend-go/internal/storage"
)

// ReceiptItemInput is one received stock line in a confirm-receipt request.
type ReceiptItemInput struct {
	StockCode     string          `json:"stockCode"`
	QtyReceived   int             `json:"qtyReceived"`
	BonusQty      int             `json:"bonusQty"`
	QtyOrdered    int             `json:"qtyOrdered"`
	ExclUnitCost  decimal.Decimal `json:"exclUnitCost"`
	InclUnitCost  decimal.Decimal `json:"inclUnitCost"`
	Markup        decimal.Decimal `json:"markup"`
	ExclSelling   decimal.Decimal `json:"exclSelling"`
	InclSelling   decimal.Decimal `json:"inclSelling"`
	VATPercentage decimal.Decimal `json:"vatPercentage"`
	Discount1     decimal.Decimal `json:"discount1"`
}

// ConfirmReceiptInput is a store's confirmation of physically received stock.
type ConfirmReceiptInput struct {
	StoreID        string              `json:"storeId"`
	OrderNo        string              `json:"orderNo"`
	ReceivedItems  []ReceiptItemInput  `json:"receivedItems"`
	ReceivedBy     string              `json:"receivedBy"`
	InvoiceNumber  string              `json:"invoiceNumber"`
	SupplierCode   string              `json:"supplierCode"`
	ShippingCharge decimal.Decimal     `json:"shippingCharge"`
	HandlingCharge decimal.Decimal     `json:"handlingCharge"`
	OtherCharge    decimal.Decimal     `json:"otherCharge"`
}

// ReceiptService reconciles goods receipts: derives GRN line values, adjusts
// stock on hand, and decides order completeness from received-vs-ordered
// totals. The whole receipt is one local-database transaction.
type ReceiptService struct {
	cloud   repository.CloudOrderRepository
	grns    repository.GRNRepository
	archive storage.ObjectStorage
	numbers *domain.NumberGenerator
}

func NewReceiptService(
	cloud repository.CloudOrderRepository,
	grns repository.GRNRepository,
	archive storage.ObjectStorage,
	numbers *domain.NumberGenerator,
) *ReceiptService {
	return &ReceiptService{cloud: cloud, grns: grns, archive: archive, numbers: numbers}
}

// ConfirmReceipt validates the order against the cloud store, then writes the
// GRN header, its lines, the stock-on-hand increments, and the completeness
// flag atomically. After commit the GRN is archived to object storage on a
// best-effort basis.
func (s *ReceiptService) ConfirmReceipt(ctx context.Context, in *ConfirmReceiptInput) (string, error) {
	if in.OrderNo == "" || in.ReceivedBy == "" {
		return "", domain.NewValidationError("orderNo/receivedBy", "missing required field")
	}
	if len(in.ReceivedItems) == 0 {
		return "", domain.NewValidationError("receivedItems", "at least one item is required")
	}
	for _, item := range in.ReceivedItems {
		if item.QtyReceived < 0 || item.BonusQty < 0 || item.QtyOrdered < 0 {
			return "", domain.NewValidationError("receivedItems", "quantities must be non-negative")
		}
	}

	exists, err := s.cloud.OrderExists(ctx, in.OrderNo)
	if err != nil {
		return "", domain.NewPersistenceError(repository.TargetCloud, "confirm receipt/check order", err)
	}
	if !exists {
		return "", domain.NewNotFoundError("order", in.OrderNo)
	}

	grv := s.numbers.NextGRVNumber()
	now := time.Now()

	lines := make([]*domain.GRNLine, 0, len(in.ReceivedItems))
	subTotal := decimal.Zero
	discountTotal := decimal.Zero
	vatTotal := decimal.Zero
	totalReceived := 0
	totalOrdered := 0

	for i := range in.ReceivedItems {
		line := BuildGRNLine(grv, &in.ReceivedItems[i])
		lines = append(lines, line)

		subTotal = subTotal.Add(mustDecimal(line.SubTotal))
		discountTotal = discountTotal.Add(mustDecimal(line.DiscountAmount))
		vatTotal = vatTotal.Add(mustDecimal(line.VATAmount))
		totalReceived += in.ReceivedItems[i].QtyReceived
		totalOrdered += in.ReceivedItems[i].QtyOrdered
	}

	grn := &domain.GRN{
		GRVNumber:      grv,
		OrderNo:        in.OrderNo,
		InvoiceNumber:  in.InvoiceNumber,
		SupplierCode:   in.SupplierCode,
		ShippingCharge: in.ShippingCharge.String(),
		HandlingCharge: in.HandlingCharge.String(),
		OtherCharge:    in.OtherCharge.String(),
		SubTotal:       subTotal.String(),
		DiscountAmount: discountTotal.String(),
		VATAmount:      vatTotal.String(),
		ReceivedBy:     in.ReceivedBy,
		DateTime:       now,
	}

	complete := OrderCompleteness(totalReceived, totalOrdered)
	if err := s.grns.CreateReceipt(ctx, grn, lines, complete); err != nil {
		return "", domain.NewPersistenceError(repository.TargetLocal, "confirm receipt", err)
	}

	s.archiveGRN(ctx, grn, lines)
	return grv, nil
}

// BuildGRNLine derives the stored line values from the raw item:
// subtotal = qty x exclusive unit cost, discount = subtotal x discount1%,
// VAT = (subtotal - discount) x vat%.
func BuildGRNLine(grv string, item *ReceiptItemInput) *domain.GRNLine {
	hundred := decimal.NewFromInt(100)

	subtotal := decimal.NewFromInt(int64(item.QtyReceived)).Mul(item.ExclUnitCost)
	discount := subtotal.Mul(item.Discount1).Div(hundred)
	vat := subtotal.Sub(discount).Mul(item.VATPercentage).Div(hundred)
	lineTotal := subtotal.Sub(discount).Add(vat)

	return &domain.GRNLine{
		GRVNumber:      grv,
		StockCode:      item.StockCode,
		QtyReceived:    item.QtyReceived,
		BonusQty:       item.BonusQty,
		QtyOrdered:     item.QtyOrdered,
		ExclUnitCost:   item.ExclUnitCost.String(),
		InclUnitCost:   item.InclUnitCost.String(),
		Markup:         item.Markup.String(),
		ExclSelling:    item.ExclSelling.String(),
		InclSelling:    item.InclSelling.String(),
		VATPercentage:  item.VATPercentage.String(),
		Discount1:      item.Discount1.String(),
		DiscountAmount: discount.Round(2).String(),
		VATAmount:      vat.Round(2).String(),
		SubTotal:       subtotal.Round(2).String(),
		LineTotal:      lineTotal.Round(2).String(),
	}
}

// OrderCompleteness returns 1 when the received total covers the ordered
// total, 0 otherwise. A shortfall leaves the order open but still recorded.
func OrderCompleteness(totalReceived, totalOrdered int) int {
	if totalReceived >= totalOrdered {
		return 1
	}
	return 0
}

// archiveGRN uploads the committed GRN as JSON. Archive storage is a
// secondary sink; failures are logged and the receipt response is unaffected.
func (s *ReceiptService) archiveGRN(ctx context.Context, grn *domain.GRN, lines []*domain.GRNLine) {
	if s.archive == nil {
		return
	}

	payload, err := json.Marshal(struct {
		*domain.GRN
		Lines []*domain.GRNLine `json:"lines"`
	}{grn, lines})
	if err != nil {
		log.Warn().Err(err).Str("grv", grn.GRVNumber).Msg("could not encode GRN for archive")
		return
	}

	key := "grn/" + grn.GRVNumber + ".json"
	if err := s.archive.UploadObject(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("grv", grn.GRVNumber).Msg("could not archive GRN")
	}
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
