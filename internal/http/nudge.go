package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NudgeTrigger rolls for an inspiration nudge and publishes it when the
// roll fires.
type NudgeTrigger interface {
	Trigger(ctx context.Context) (fired bool, roll int, err error)
}

type NudgeController struct {
	trigger NudgeTrigger
}

func NewNudgeController(trigger NudgeTrigger) *NudgeController {
	return &NudgeController{trigger: trigger}
}

// NudgeResponse reports the roll outcome to the caller.
type NudgeResponse struct {
	Message      string `json:"message"`
	RandomNumber int    `json:"randomNumber"`
}

// TriggerNudge rolls once; roughly one call in three publishes the
// new-inspiration event.
// POST /api/new-inspiration
func (nc *NudgeController) TriggerNudge(c *gin.Context) {
	fired, roll, err := nc.trigger.Trigger(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "publish inspiration nudge")
		return
	}

	message := "No inspiration update triggered this time"
	if fired {
		message = "Inspiration nudge published"
	}

	c.JSON(http.StatusOK, NudgeResponse{
		Message:      message,
		RandomNumber: roll,
	})
}
