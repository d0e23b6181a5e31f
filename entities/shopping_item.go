package entities

import (
	"Foodia-Shopping/domain"
	"Foodia-Shopping/pkg/shopping/quantity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingItem is one line of a user's grocery list.
// SourceRecipeID is a weak reference: there is no foreign key and no cascade.
type ShoppingItem struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_shopping_items_owner;index:idx_shopping_items_owner_key,priority:1" json:"owner_id"`
	DisplayName    string            `gorm:"not null" json:"display_name"`
	NormalizedKey  string            `gorm:"not null;index:idx_shopping_items_owner_key,priority:2" json:"-"`
	Quantity       quantity.Quantity `gorm:"type:text;not null" json:"quantity"`
	Category       domain.Category   `gorm:"type:varchar(32);not null" json:"category"`
	Completed      bool              `gorm:"not null;default:false" json:"completed"`
	SourceRecipeID *uuid.UUID        `gorm:"type:uuid" json:"source_recipe_id,omitempty"`

	Timestamp
}

func (i *ShoppingItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
