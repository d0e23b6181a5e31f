package migration

import (
	"Foodia-Shopping/entities"
	"fmt"

	"gorm.io/gorm"
)

// activeKeyIndex keeps at most one not-completed row per owner and key. Both
// postgres and sqlite support partial indexes.
const activeKeyIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_shopping_items_active_key
	ON shopping_items (owner_id, normalized_key) WHERE completed = false`

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	}

	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("error migrating recipe table: %w", err)
	}

	if err := db.AutoMigrate(&entities.ShoppingItem{}); err != nil {
		return fmt.Errorf("error migrating shopping item table: %w", err)
	}

	if err := db.Exec(activeKeyIndex).Error; err != nil {
		return fmt.Errorf("error creating active key index: %w", err)
	}

	return nil
}
