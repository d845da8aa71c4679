// backend-go/internal/api/handlers/order_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/service"
)

// OrderLifecycle is the slice of the order service the HTTP layer needs.
type OrderLifecycle interface {
	Create(ctx context.Context, in *service.CreateOrderInput) (string, error)
	Approve(ctx context.Context, orderNo string, approvedQty int, approvedBy string) error
	Pack(ctx context.Context, orderNo, packedBy string, amendedQty int) error
	Dispatch(ctx context.Context, orderNo, dispatchedBy string, finalQty int) (*domain.SyncWarning, error)
	Receive(ctx context.Context, orderNo, status string, receivedDate time.Time, receivedQty int) error
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	StoreOrders(ctx context.Context, storeName string) ([]*domain.OrderView, error)
	Discrepancies(ctx context.Context) ([]*domain.Discrepancy, error)
}

type OrderHandler struct {
	orders OrderLifecycle
}

func NewOrderHandler(orders OrderLifecycle) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder handles POST /api/create-order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var in service.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	orderNo, err := h.orders.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, "creating order", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order Created Successfully",
		"orderNo": orderNo,
	})
}

// FetchOrders handles GET /api/fetch-orders.
func (h *OrderHandler) FetchOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, "fetching orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// StoreOrders handles GET /api/store-orders. The store name arrives in the
// "store" request header, not the body.
func (h *OrderHandler) StoreOrders(c *gin.Context) {
	storeName := c.GetHeader("store")
	orders, err := h.orders.StoreOrders(c.Request.Context(), storeName)
	if err != nil {
		respondError(c, "fetching orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type approveOrderRequest struct {
	OrderNo     string `json:"OrderNo"`
	ApprovedQty int    `json:"approvedQty"`
	ApprovedBy  string `json:"approvedBy"`
}

// ApproveOrder handles PUT /api/approve-order.
func (h *OrderHandler) ApproveOrder(c *gin.Context) {
	var req approveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.orders.Approve(c.Request.Context(), req.OrderNo, req.ApprovedQty, req.ApprovedBy); err != nil {
		respondError(c, "approving order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order approved successfully"})
}

type packOrderRequest struct {
	OrderNo    string `json:"OrderNo"`
	PackedBy   string `json:"packedBy"`
	AmendedQty int    `json:"amendedQty"`
}

// PackOrder handles PUT /api/pack-order.
func (h *OrderHandler) PackOrder(c *gin.Context) {
	var req packOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.orders.Pack(c.Request.Context(), req.OrderNo, req.PackedBy, req.AmendedQty); err != nil {
		respondError(c, "packing order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order packed successfully"})
}

type dispatchOrderRequest struct {
	OrderNo      string `json:"OrderNo"`
	DispatchedBy string `json:"dispatchedBy"`
	FinalQty     int    `json:"finalQty"`
}

// DispatchOrder handles PUT /api/dispatch-order. A failed store mirror sync
// is reported in the response body as a warning; the dispatch itself has
// already committed and is not rolled back.
func (h *OrderHandler) DispatchOrder(c *gin.Context) {
	var req dispatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	warning, err := h.orders.Dispatch(c.Request.Context(), req.OrderNo, req.DispatchedBy, req.FinalQty)
	if err != nil {
		respondError(c, "dispatching order", err)
		return
	}

	resp := gin.H{"message": "Order dispatched successfully"}
	if warning != nil {
		log.Warn().Str("orderNo", req.OrderNo).Str("target", warning.Target).Msg(warning.Reason)
		resp["syncWarning"] = warning.Error()
	}
	c.JSON(http.StatusOK, resp)
}

type updateOrderStatusRequest struct {
	OrderNo      string `json:"OrderNo"`
	Status       string `json:"status"`
	ReceivedDate string `json:"receivedDate"`
	ReceivedQty  int    `json:"receivedQty"`
}

// UpdateOrderStatus handles PUT /api/update-order-status (the receive
// transition).
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	receivedDate, err := parseDate(req.ReceivedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid receivedDate"})
		return
	}

	if err := h.orders.Receive(c.Request.Context(), req.OrderNo, req.Status, receivedDate, req.ReceivedQty); err != nil {
		respondError(c, "updating order status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status and received date updated successfully!"})
}

// Discrepancies handles GET /api/discrepancies.
func (h *OrderHandler) Discrepancies(c *gin.Context) {
	rows, err := h.orders.Discrepancies(c.Request.Context())
	if err != nil {
		respondError(c, "fetching discrepancies", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
