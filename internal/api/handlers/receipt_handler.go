// backend-go/internal/api/handlers/receipt_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storedispatch/backend-go/internal/service"
)

// ReceiptConfirmer is the slice of the receipt service the HTTP layer needs.
type ReceiptConfirmer interface {
	ConfirmReceipt(ctx context.Context, in *service.ConfirmReceiptInput) (string, error)
}

type ReceiptHandler struct {
	receipts ReceiptConfirmer
}

func NewReceiptHandler(receipts ReceiptConfirmer) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// ConfirmReceipt handles POST /api/confirm-receipt. The whole reconciliation
// runs in one local transaction; the response carries the generated GRV
// number.
func (h *ReceiptHandler) ConfirmReceipt(c *gin.Context) {
	var in service.ConfirmReceiptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	grvNumber, err := h.receipts.ConfirmReceipt(c.Request.Context(), &in)
	if err != nil {
		respondError(c, "confirming receipt", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Receipt confirmed successfully",
		"grvNumber": grvNumber,
	})
}
