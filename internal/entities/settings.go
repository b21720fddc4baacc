package entities

import (
	"time"
)

// Known device locations. The location drives which content categories are
// semantically relevant for a display.
const (
	LocationStudyRoom = "study_room"
	LocationKitchen   = "kitchen"
)

// DisplaySettings holds the per-deployment display configuration. The app is
// single-tenant: exactly one row with a null UserID exists once saved, and an
// absent row means "no settings yet" rather than an error.
type DisplaySettings struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             *uint     `gorm:"index" json:"user_id"`
	DeviceLocation     *string   `gorm:"size:50" json:"device_location"`
	CalendarEnabled    bool      `json:"calendar_enabled"`
	RecipeEnabled      bool      `json:"recipe_enabled"`
	InspirationEnabled bool      `json:"inspiration_enabled"`
	TasksEnabled       bool      `json:"tasks_enabled"`
	DailyQuoteEnabled  bool      `json:"daily_quote_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (DisplaySettings) TableName() string {
	return "display_settings"
}
