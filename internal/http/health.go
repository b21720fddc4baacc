package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suilan/musedeck/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// BrokerStatus reports whether the notification broker link is up.
type BrokerStatus interface {
	Connected() bool
}

type HealthController struct {
	db      *database.Database
	broker  BrokerStatus
	version string
}

func NewHealthController(db *database.Database, broker BrokerStatus, version string) *HealthController {
	return &HealthController{
		db:      db,
		broker:  broker,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// The broker is best-effort: a down link degrades notifications but the
	// service stays healthy.
	if h.broker != nil {
		if h.broker.Connected() {
			checks["broker"] = "connected"
		} else {
			checks["broker"] = "disconnected"
		}
	} else {
		checks["broker"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
