package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendascan/internal/models"
)

// Stream handles GET /stream: a text/event-stream subscription to the
// alert hub. The connection stays open until the client goes away or the
// hub drops the subscriber.
func (h *HandlerService) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events, cancel := h.hub.Subscribe()
	defer cancel()

	clientGone := c.Request.Context().Done()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			if _, err := w.Write([]byte(event.Frame())); err != nil {
				return false
			}
			return true
		}
	})
}

// RecentAlerts handles GET /alertas/recientes, serving the persisted alert
// history newest first.
func (h *HandlerService) RecentAlerts(c *gin.Context) {
	limit := h.cfg.GetAlertsConfig().HistorySize

	events, err := h.store.RecentAlertEvents(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err)
		return
	}

	if events == nil {
		events = []models.AlertEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"alertas": events})
}
