package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/suilan/musedeck/internal/entities"
	"github.com/suilan/musedeck/internal/syncbus"
)

// SettingsStore defines database operations for the singleton display
// settings row.
type SettingsStore interface {
	Get() (*entities.DisplaySettings, error)
	Save(s *entities.DisplaySettings) error
}

type SettingsController struct {
	store SettingsStore
	bus   syncbus.Notifier
}

func NewSettingsController(store SettingsStore, bus syncbus.Notifier) *SettingsController {
	return &SettingsController{
		store: store,
		bus:   bus,
	}
}

// SaveSettingsRequest is the request body for saving display settings.
// When Preset names a known device location, the per-module flags are
// overridden with the location's recommended bundle.
type SaveSettingsRequest struct {
	DeviceLocation     *string `json:"device_location"`
	CalendarEnabled    bool    `json:"calendar_enabled"`
	RecipeEnabled      bool    `json:"recipe_enabled"`
	InspirationEnabled bool    `json:"inspiration_enabled"`
	TasksEnabled       bool    `json:"tasks_enabled"`
	DailyQuoteEnabled  bool    `json:"daily_quote_enabled"`
	Preset             string  `json:"preset,omitempty"`
}

// SaveSettingsResponse echoes the saved settings plus whether the
// config-updated notification went out.
type SaveSettingsResponse struct {
	Settings *entities.DisplaySettings `json:"settings"`
	Notified bool                      `json:"notified"`
}

// GetSettings returns the current display settings.
// GET /api/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.store.Get()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No settings saved yet: the UI creates them on first save.
			respondNotFound(c, "display settings")
			return
		}
		respondInternalError(c, err, "fetch display settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings upserts the singleton settings row and then publishes a
// config-updated event. The write is the source of truth: a failed publish
// is reported in the response but never fails the save.
// POST /api/settings
func (sc *SettingsController) SaveSettings(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid settings payload")
		return
	}

	settings := &entities.DisplaySettings{
		DeviceLocation:     req.DeviceLocation,
		CalendarEnabled:    req.CalendarEnabled,
		RecipeEnabled:      req.RecipeEnabled,
		InspirationEnabled: req.InspirationEnabled,
		TasksEnabled:       req.TasksEnabled,
		DailyQuoteEnabled:  req.DailyQuoteEnabled,
	}

	if req.Preset != "" {
		if !applyPreset(settings, req.Preset) {
			respondBadRequest(c, "unknown preset: "+req.Preset)
			return
		}
	}

	if err := sc.store.Save(settings); err != nil {
		respondInternalError(c, err, "save display settings")
		return
	}

	notified := true
	location := ""
	if settings.DeviceLocation != nil {
		location = *settings.DeviceLocation
	}
	if err := sc.bus.PublishConfigUpdated(c.Request.Context(), location); err != nil {
		log.Printf("Config update notification failed (settings saved): %v", err)
		notified = false
	}

	c.JSON(http.StatusOK, SaveSettingsResponse{
		Settings: settings,
		Notified: notified,
	})
}

// applyPreset overwrites the module flags with a location's recommended
// bundle. Returns false for an unknown location.
func applyPreset(s *entities.DisplaySettings, preset string) bool {
	switch preset {
	case entities.LocationStudyRoom:
		location := entities.LocationStudyRoom
		s.DeviceLocation = &location
		s.CalendarEnabled = true
		s.InspirationEnabled = true
		s.DailyQuoteEnabled = true
		s.TasksEnabled = true
		s.RecipeEnabled = false
	case entities.LocationKitchen:
		location := entities.LocationKitchen
		s.DeviceLocation = &location
		s.RecipeEnabled = true
		s.DailyQuoteEnabled = true
		s.CalendarEnabled = false
		s.InspirationEnabled = false
		s.TasksEnabled = false
	default:
		return false
	}
	return true
}
