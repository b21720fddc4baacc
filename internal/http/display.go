package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suilan/musedeck/internal/display"
)

// PayloadBuilder assembles the display payload from current settings.
type PayloadBuilder interface {
	BuildPayload(ctx context.Context) (*display.Payload, error)
}

type DisplayController struct {
	aggregator PayloadBuilder
}

func NewDisplayController(aggregator PayloadBuilder) *DisplayController {
	return &DisplayController{aggregator: aggregator}
}

// GetDisplayContent returns the assembled payload for a display client.
// Per-module failures never surface here: only a settings store failure
// produces an error response.
// GET /api/display-content
func (dc *DisplayController) GetDisplayContent(c *gin.Context) {
	payload, err := dc.aggregator.BuildPayload(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "build display payload")
		return
	}
	c.JSON(http.StatusOK, payload)
}
