package v1

import (
	"io"

	"github.com/gin-gonic/gin"
)

// @Summary Subscribe to live matching events
// @Description SSE stream of events for a patient or hospital channel (e.g. patient-<uuid> or hospital-<uuid>). The stream emits a connected event first and ends when the matching reaches a terminal outcome.
// @Tags SSE
// @Produce text/event-stream
// @Param channel path string true "Channel name (patient-<uuid> or hospital-<uuid>)"
// @Success 200 {string} string "Event stream"
// @Router /sse/{channel} [get]
func (h *Handler) streamEvents(c *gin.Context) {
	channel := c.Param("channel")
	log := h.logger.WithField("method", "streamEvents").WithField("channel", channel)

	events, unsubscribe := h.notifier.Subscribe(channel)
	defer unsubscribe()
	log.Info("SSE subscriber attached")

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			log.Info("SSE client disconnected")
			return false
		case event, ok := <-events:
			if !ok {
				// Шина закрыла канал: терминальный исход, конец стрима
				log.Info("Channel closed, ending SSE stream")
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		}
	})
}
