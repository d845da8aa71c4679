// backend-go/internal/api/handlers/sync_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storedispatch/backend-go/internal/domain"
)

// SyncInspector is the slice of the sync service the HTTP layer needs.
type SyncInspector interface {
	Pending(ctx context.Context) ([]*domain.SyncJournalEntry, error)
	Replay(ctx context.Context) (int, error)
}

type SyncHandler struct {
	sync SyncInspector
}

func NewSyncHandler(sync SyncInspector) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// Pending handles GET /api/sync/pending, listing journal entries whose
// transitions never finished all their steps.
func (h *SyncHandler) Pending(c *gin.Context) {
	entries, err := h.sync.Pending(c.Request.Context())
	if err != nil {
		respondError(c, "fetching pending syncs", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Replay handles POST /api/sync/replay, re-mirroring local orders that are
// missing from the cloud database.
func (h *SyncHandler) Replay(c *gin.Context) {
	synced, err := h.sync.Replay(c.Request.Context())
	if err != nil {
		respondError(c, "replaying sync", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sync replay completed",
		"synced":  synced,
	})
}
