// backend-go/internal/domain/packing_test.go
package domain_test

import (
	"testing"

	"github.com/storedispatch/backend-go/internal/domain"
)

func TestFirstNumericToken(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"COLA 330ML CAN", 330, true},
		{"RICE 2KG BAG x 6", 2, true},
		{"24 PACK WATER", 24, true},
		{"500", 500, true},
		{"NO DIGITS HERE", 0, false},
		{"", 0, false},
		{"END 12", 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := domain.FirstNumericToken(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FirstNumericToken(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLegacyQtyPerBox(t *testing.T) {
	packSizes := []domain.PackSize{
		{PackSize: 330, QtyPerBox: 24},
		{PackSize: 500, QtyPerBox: 20},
	}

	tests := []struct {
		name        string
		description string
		want        int
	}{
		{"known size", "COLA 330ML CAN", 24},
		{"another known size", "WATER 500ML", 20},
		{"unknown size", "JUICE 750ML", 0},
		{"no numeric token", "MYSTERY ITEM", 0},
		{"first number wins", "330ML x 500", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.LegacyQtyPerBox(tt.description, packSizes); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQtyPerBox_PackQtyWins(t *testing.T) {
	packSizes := []domain.PackSize{{PackSize: 330, QtyPerBox: 24}}

	p := &domain.Product{StockCode: "BEV001", StockDescription: "COLA 330ML CAN", PackQty: 12}
	if got := domain.QtyPerBox(p, packSizes); got != 12 {
		t.Errorf("PackQty should win over the description heuristic, got %d", got)
	}

	p.PackQty = 0
	if got := domain.QtyPerBox(p, packSizes); got != 24 {
		t.Errorf("fallback should use the description heuristic, got %d", got)
	}

	if got := domain.QtyPerBox(nil, packSizes); got != 0 {
		t.Errorf("nil product should yield 0, got %d", got)
	}
}

func TestAllocateBox(t *testing.T) {
	b := domain.AllocateBox("ORD-1", "BEV001", 48, 24, 0)
	if b == nil {
		t.Fatal("expected a box record")
	}
	if b.BoxNo != 1 {
		t.Errorf("first box should be numbered 1, got %d", b.BoxNo)
	}
	if b.BoxCodeQty != 24 || b.BoxTotalQty != 48 {
		t.Errorf("got qty per box %d total %d, want 24 and 48", b.BoxCodeQty, b.BoxTotalQty)
	}

	// Numbering continues from the existing count within the order.
	b2 := domain.AllocateBox("ORD-1", "BEV002", 12, 12, 1)
	if b2.BoxNo != 2 {
		t.Errorf("second box should be numbered 2, got %d", b2.BoxNo)
	}
	b3 := domain.AllocateBox("ORD-1", "DRY001", 6, 6, 2)
	if b3.BoxNo != 3 {
		t.Errorf("third box should be numbered 3, got %d", b3.BoxNo)
	}

	// Unknown pack size still records the box, with a zero total.
	b4 := domain.AllocateBox("ORD-1", "HSE001", 10, 0, 3)
	if b4 == nil {
		t.Fatal("expected a box record for zero qty per box")
	}
	if b4.BoxCodeQty != 0 || b4.BoxTotalQty != 0 {
		t.Errorf("zero qty per box should carry zero quantities, got %d and %d", b4.BoxCodeQty, b4.BoxTotalQty)
	}

	if domain.AllocateBox("ORD-1", "", 10, 5, 0) != nil {
		t.Error("missing stock code should not produce a box")
	}
}
