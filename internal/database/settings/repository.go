// Package settings provides database operations for the singleton display
// settings row.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	current, err := repo.Get()
package settings

import (
	"gorm.io/gorm"

	"github.com/suilan/musedeck/internal/entities"
)

// Repository handles display settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves the singleton settings row for the null-user scope.
// Returns gorm.ErrRecordNotFound when no settings have been saved yet;
// callers decide whether absence is an error.
func (r *Repository) Get() (*entities.DisplaySettings, error) {
	var s entities.DisplaySettings
	err := r.db.Where("user_id IS NULL").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save creates the settings row if none exists, otherwise updates it in
// place. The singleton invariant is preserved: the stored row's ID always
// wins over whatever the caller carries.
func (r *Repository) Save(s *entities.DisplaySettings) error {
	var existing entities.DisplaySettings
	result := r.db.Where("user_id IS NULL").First(&existing)

	if result.Error == gorm.ErrRecordNotFound {
		s.ID = 0
		s.UserID = nil
		return r.db.Create(s).Error
	} else if result.Error != nil {
		return result.Error
	}

	s.ID = existing.ID
	s.UserID = nil
	s.CreatedAt = existing.CreatedAt
	return r.db.Save(s).Error
}
