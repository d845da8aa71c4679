// backend-go/internal/domain/packing.go
package domain

import (
	"strconv"
	"strings"
)

// QtyPerBox resolves the quantity-per-box for a product. The validated
// PackQty field wins; the description heuristic is kept only for legacy
// catalog rows that never had the field populated.
func QtyPerBox(p *Product, packSizes []PackSize) int {
	if p == nil {
		return 0
	}
	if p.PackQty > 0 {
		return p.PackQty
	}
	return LegacyQtyPerBox(p.StockDescription, packSizes)
}

// LegacyQtyPerBox extracts the first numeric token from a free-text stock
// description (e.g. "COLA 330ML CAN" -> 330) and looks it up in the pack-size
// reference data. No match, or no numeric token, yields 0. This is a coarse
// heuristic inherited from legacy data; multi-number descriptions resolve to
// whichever number appears first.
func LegacyQtyPerBox(description string, packSizes []PackSize) int {
	size, ok := FirstNumericToken(description)
	if !ok {
		return 0
	}
	for _, ps := range packSizes {
		if ps.PackSize == size {
			return ps.QtyPerBox
		}
	}
	return 0
}

// FirstNumericToken returns the first maximal run of digits in s.
func FirstNumericToken(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			if err != nil {
				return 0, false
			}
			return n, true
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(s[start:]))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// AllocateBox builds the box record for a new order line. existingBoxes is
// the count of boxes already recorded for the order; numbering starts at 1
// and is only unique within the order. A zero qtyPerBox still produces a
// record when a stock code is present, carrying a zero total.
func AllocateBox(orderNo, stockCode string, orderQty, qtyPerBox, existingBoxes int) *BoxInfo {
	if stockCode == "" {
		return nil
	}
	total := 0
	if qtyPerBox > 0 {
		total = orderQty
	}
	return &BoxInfo{
		OrderNo:     orderNo,
		StockCode:   stockCode,
		BoxNo:       existingBoxes + 1,
		BoxCodeQty:  qtyPerBox,
		BoxTotalQty: total,
	}
}
