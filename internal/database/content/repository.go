// Package content provides database operations for collected content rows,
// including the order-by-column sampling query the aggregator relies on.
package content

import (
	"math/rand"

	"gorm.io/gorm"

	"github.com/suilan/musedeck/internal/entities"
)

// Repository handles collected content database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new content repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new submission with the AI fields empty. The sampling key
// is assigned here, once, so query-time sampling never recomputes randomness.
func (r *Repository) Create(c *entities.CollectedContent) error {
	c.RandomFloat = rand.Float64()
	if c.AIKeywords == nil {
		c.AIKeywords = entities.StringList{}
	}
	return r.db.Create(c).Error
}

// GetByID retrieves a single row by ID. Returns gorm.ErrRecordNotFound when
// the row does not exist.
func (r *Repository) GetByID(id uint) (*entities.CollectedContent, error) {
	var c entities.CollectedContent
	err := r.db.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SampleByCategory picks one pseudo-random enriched row from a category.
//
// Each row carries a uniform pre-assigned key; filtering for keys greater
// than a fresh uniform draw and taking the ascending-order first row yields
// a pick without scanning the full set. Returns gorm.ErrRecordNotFound when
// no key exceeds the draw (empty category, or the draw landed past the
// maximum key) — callers fall back to fixed content in that case.
func (r *Repository) SampleByCategory(category string, draw float64) (*entities.CollectedContent, error) {
	var c entities.CollectedContent
	err := r.db.
		Where("ai_category = ?", category).
		Where("ai_summary IS NOT NULL").
		Where("random_float > ?", draw).
		Order("random_float ASC").
		Limit(1).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveEnrichment persists the classification result onto a row. UpdatedAt is
// refreshed by gorm on every write, so re-running enrichment simply
// overwrites the previous result.
func (r *Repository) SaveEnrichment(id uint, summary string, keywords entities.StringList, category string) error {
	if keywords == nil {
		keywords = entities.StringList{}
	}
	return r.db.Model(&entities.CollectedContent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ai_summary":  summary,
			"ai_keywords": keywords,
			"ai_category": category,
		}).Error
}

// ListRecent returns the most recently submitted rows for the collection UI.
func (r *Repository) ListRecent(limit int) ([]entities.CollectedContent, error) {
	var rows []entities.CollectedContent
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&rows).Error
	return rows, err
}

// CountPending returns how many rows still await enrichment.
func (r *Repository) CountPending() (int64, error) {
	var n int64
	err := r.db.Model(&entities.CollectedContent{}).
		Where("ai_summary IS NULL").
		Count(&n).Error
	return n, err
}
