package leadsync

import (
	"fmt"
	"strconv"

	"leadsync_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the manual sync trigger endpoint.
type Handler struct {
	enqueuer     Enqueuer
	defaultCount int
}

// NewHandler creates a new sync handler.
func NewHandler(enqueuer Enqueuer, defaultCount int) *Handler {
	return &Handler{enqueuer: enqueuer, defaultCount: defaultCount}
}

// TriggerSync enqueues a sync job and returns immediately. An absent or
// non-numeric count falls back to the default; zero and negative counts are
// passed through unchanged.
// POST /api/v1/sync/trigger
func (h *Handler) TriggerSync(c *gin.Context) {
	count := h.defaultCount
	if raw := c.Query("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			count = parsed
		}
	}

	jobID, err := h.enqueuer.EnqueueSync(c.Request.Context(), count)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"message": fmt.Sprintf("sync job queued for %d leads", count),
		"jobId":   jobID,
	})
}
