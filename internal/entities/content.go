package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Content types accepted from the collection UI.
const (
	ContentTypeWebpage = "webpage"
	ContentTypeText    = "text"
)

// Known AI categories. The set is open: the classifier may return anything,
// but the aggregator only samples the location-bound ones.
const (
	CategoryKitchen   = "kitchen"
	CategoryStudyRoom = "study_room"
	CategoryOther     = "other"
)

// StringList stores an ordered list of strings as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// CollectedContent is a raw content submission (URL or note) plus the
// structured fields the enrichment pipeline fills in later. The AI fields
// stay null until classification completes; RandomFloat is assigned once at
// creation and used as the sampling key for order-by-column sampling.
type CollectedContent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          *uint      `gorm:"index" json:"user_id"`
	ContentType     string     `gorm:"size:20" json:"content_type"`
	OriginalContent string     `gorm:"type:text" json:"original_content"`
	AISummary       *string    `gorm:"type:text" json:"ai_summary"`
	AIKeywords      StringList `gorm:"type:text" json:"ai_keywords"`
	AICategory      *string    `gorm:"size:50" json:"ai_category"`
	RandomFloat     float64    `gorm:"index" json:"random_float"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (CollectedContent) TableName() string {
	return "collected_content"
}

// Enriched reports whether the classification fields have been populated.
func (c *CollectedContent) Enriched() bool {
	return c.AISummary != nil
}
