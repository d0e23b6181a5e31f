package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the content-provider side of a bulk import. Ingredients holds either a
// JSON array of ingredient lines or newline separated text.
type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid" json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Servings    int       `json:"servings"`
	CuisineType string    `json:"cuisine_type"`
	Ingredients string    `json:"ingredients" gorm:"type:text"`

	Timestamp
}

func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
