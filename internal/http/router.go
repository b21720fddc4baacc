package http

import (
	"github.com/gin-gonic/gin"

	"github.com/suilan/musedeck/internal/audit"
	"github.com/suilan/musedeck/internal/database"
	"github.com/suilan/musedeck/internal/syncbus"
	"github.com/suilan/musedeck/internal/tasks"
)

// RouterConfig carries all dependencies the HTTP layer needs.
type RouterConfig struct {
	Database      *database.Database
	SettingsStore SettingsStore
	ContentStore  ContentStore
	Aggregator    PayloadBuilder
	Pipeline      tasks.Enricher
	Bus           syncbus.Notifier
	BrokerStatus  BrokerStatus
	NudgeTrigger  NudgeTrigger
	TaskClient    *tasks.Client
	Auditor       *audit.Auditor
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.BrokerStatus, cfg.Version)
	displayController := NewDisplayController(cfg.Aggregator)
	contentController := NewContentController(cfg.ContentStore, cfg.Pipeline, cfg.TaskClient, cfg.Auditor)
	settingsController := NewSettingsController(cfg.SettingsStore, cfg.Bus)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Display payload endpoint polled by display clients
	router.GET("/api/display-content", displayController.GetDisplayContent)

	// Content collection endpoints
	router.POST("/api/content", contentController.SubmitContent)
	router.GET("/api/content", contentController.ListContent)
	router.POST("/api/content/:id/enrich", contentController.EnrichContent)

	// Display settings endpoints
	router.GET("/api/settings", settingsController.GetSettings)
	router.POST("/api/settings", settingsController.SaveSettings)

	// Inspiration nudge trigger
	if cfg.NudgeTrigger != nil {
		nudgeController := NewNudgeController(cfg.NudgeTrigger)
		router.POST("/api/new-inspiration", nudgeController.TriggerNudge)
	}

	return router
}
