// backend-go/internal/api/handlers/order_handler_test.go
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storedispatch/backend-go/internal/api/handlers"
	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/service"
)

// stubOrders answers with canned results per method.
type stubOrders struct {
	createOrderNo string
	createErr     error
	approveErr    error
	dispatchWarn  *domain.SyncWarning
	dispatchErr   error
	receiveErr    error

	storeNameSeen string
}

func (s *stubOrders) Create(_ context.Context, _ *service.CreateOrderInput) (string, error) {
	return s.createOrderNo, s.createErr
}

func (s *stubOrders) Approve(_ context.Context, _ string, _ int, _ string) error {
	return s.approveErr
}

func (s *stubOrders) Pack(_ context.Context, _, _ string, _ int) error {
	return nil
}

func (s *stubOrders) Dispatch(_ context.Context, _, _ string, _ int) (*domain.SyncWarning, error) {
	return s.dispatchWarn, s.dispatchErr
}

func (s *stubOrders) Receive(_ context.Context, _, _ string, _ time.Time, _ int) error {
	return s.receiveErr
}

func (s *stubOrders) ListOrders(_ context.Context) ([]*domain.Order, error) {
	return []*domain.Order{{OrderNo: "ORD-1"}}, nil
}

func (s *stubOrders) StoreOrders(_ context.Context, storeName string) ([]*domain.OrderView, error) {
	s.storeNameSeen = storeName
	if storeName == "" {
		return nil, domain.NewValidationError("store", "missing store header")
	}
	return nil, nil
}

func (s *stubOrders) Discrepancies(_ context.Context) ([]*domain.Discrepancy, error) {
	return nil, nil
}

func newOrderRouter(stub *stubOrders) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewOrderHandler(stub)
	r := gin.New()
	r.POST("/api/create-order", h.CreateOrder)
	r.GET("/api/store-orders", h.StoreOrders)
	r.PUT("/api/approve-order", h.ApproveOrder)
	r.PUT("/api/dispatch-order", h.DispatchOrder)
	r.PUT("/api/update-order-status", h.UpdateOrderStatus)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response JSON: %v", err)
		}
	}
	return w, resp
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	stub := &stubOrders{createOrderNo: "ORD-123"}
	r := newOrderRouter(stub)

	w, resp := doJSON(t, r, http.MethodPost, "/api/create-order",
		`{"StockCode":"BEV001","Order_Qty":48,"storeName":"MAINSTREET"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if resp["orderNo"] != "ORD-123" {
		t.Errorf("orderNo = %v, want ORD-123", resp["orderNo"])
	}
}

func TestOrderHandler_CreateOrder_ValidationIs400(t *testing.T) {
	stub := &stubOrders{createErr: domain.NewValidationError("storeName", "missing required field")}
	r := newOrderRouter(stub)

	w, _ := doJSON(t, r, http.MethodPost, "/api/create-order", `{"StockCode":"BEV001"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestOrderHandler_CreateOrder_MalformedBody(t *testing.T) {
	r := newOrderRouter(&stubOrders{})

	w, _ := doJSON(t, r, http.MethodPost, "/api/create-order", `{"Order_Qty":"lots"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestOrderHandler_ApproveOrder_NotFoundIs404(t *testing.T) {
	stub := &stubOrders{approveErr: domain.NewNotFoundError("order", "ORD-404")}
	r := newOrderRouter(stub)

	w, _ := doJSON(t, r, http.MethodPut, "/api/approve-order",
		`{"OrderNo":"ORD-404","approvedQty":8,"approvedBy":"warehouse"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestOrderHandler_ApproveOrder_PersistenceIs500(t *testing.T) {
	stub := &stubOrders{approveErr: domain.NewPersistenceError("cloud", "approve/stamp mirror", context.DeadlineExceeded)}
	r := newOrderRouter(stub)

	w, resp := doJSON(t, r, http.MethodPut, "/api/approve-order",
		`{"OrderNo":"ORD-1","approvedQty":8,"approvedBy":"warehouse"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if resp["error"] == nil {
		t.Error("500 responses should carry the underlying error")
	}
}

func TestOrderHandler_DispatchOrder_WarningInBody(t *testing.T) {
	stub := &stubOrders{dispatchWarn: domain.NewSyncWarning("store:MAINSTREET", "order not present in store database")}
	r := newOrderRouter(stub)

	w, resp := doJSON(t, r, http.MethodPut, "/api/dispatch-order",
		`{"OrderNo":"ORD-1","dispatchedBy":"warehouse","finalQty":8}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: the dispatch itself succeeded", w.Code)
	}
	if resp["syncWarning"] == nil {
		t.Error("expected a syncWarning field")
	}

	// No warning, no field.
	stub.dispatchWarn = nil
	_, resp = doJSON(t, r, http.MethodPut, "/api/dispatch-order",
		`{"OrderNo":"ORD-1","dispatchedBy":"warehouse","finalQty":8}`)
	if _, ok := resp["syncWarning"]; ok {
		t.Error("syncWarning must be omitted on a clean dispatch")
	}
}

func TestOrderHandler_UpdateOrderStatus_BadDate(t *testing.T) {
	r := newOrderRouter(&stubOrders{})

	w, _ := doJSON(t, r, http.MethodPut, "/api/update-order-status",
		`{"OrderNo":"ORD-1","status":"RECEIVED","receivedDate":"not-a-date","receivedQty":5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestOrderHandler_StoreOrders_HeaderPassedThrough(t *testing.T) {
	stub := &stubOrders{}
	r := newOrderRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/store-orders", nil)
	req.Header.Set("store", "MAINSTREET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if stub.storeNameSeen != "MAINSTREET" {
		t.Errorf("store name = %q, want MAINSTREET from the store header", stub.storeNameSeen)
	}

	// Missing header surfaces the validation error as a 400.
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/store-orders", nil))
	if w2.Code != http.StatusBadRequest {
		t.Errorf("status without header = %d, want 400", w2.Code)
	}
}
