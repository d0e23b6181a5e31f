package shopping

import (
	"Foodia-Shopping/entities"
	"context"
	"errors"
	"gorm.io/gorm"
	"time"
)

type (
	ShoppingRepository interface {
		CreateShoppingItem(ctx context.Context, item *entities.ShoppingItem) error
		GetShoppingItemByID(ctx context.Context, id string) (*entities.ShoppingItem, error)
		FindActiveShoppingItem(ctx context.Context, ownerID string, normalizedKey string) (*entities.ShoppingItem, error)
		FindOtherActiveShoppingItem(ctx context.Context, ownerID string, normalizedKey string, excludeID string) (*entities.ShoppingItem, error)
		UpdateShoppingItem(ctx context.Context, item *entities.ShoppingItem) error
		DeleteShoppingItem(ctx context.Context, id string) error
		GetShoppingItems(ctx context.Context, ownerID string) ([]*entities.ShoppingItem, error)
		DeleteCompletedShoppingItems(ctx context.Context, ownerID string) (int64, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) CreateShoppingItem(ctx context.Context, item *entities.ShoppingItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingRepository) GetShoppingItemByID(ctx context.Context, id string) (*entities.ShoppingItem, error) {
	var item entities.ShoppingItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindActiveShoppingItem returns the owner's not-completed item with the given key,
// or (nil, nil) when there is none.
func (r *shoppingRepository) FindActiveShoppingItem(ctx context.Context, ownerID string, normalizedKey string) (*entities.ShoppingItem, error) {
	var item entities.ShoppingItem
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND normalized_key = ? AND completed = ?", ownerID, normalizedKey, false).
		Order("created_at asc").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) FindOtherActiveShoppingItem(ctx context.Context, ownerID string, normalizedKey string, excludeID string) (*entities.ShoppingItem, error) {
	var item entities.ShoppingItem
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND normalized_key = ? AND completed = ? AND id <> ?", ownerID, normalizedKey, false, excludeID).
		Order("created_at asc").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) UpdateShoppingItem(ctx context.Context, item *entities.ShoppingItem) error {
	item.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *shoppingRepository) DeleteShoppingItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingItem{}).Error
}

func (r *shoppingRepository) GetShoppingItems(ctx context.Context, ownerID string) ([]*entities.ShoppingItem, error) {
	var items []*entities.ShoppingItem
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingRepository) DeleteCompletedShoppingItems(ctx context.Context, ownerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND completed = ?", ownerID, true).
		Delete(&entities.ShoppingItem{})
	return result.RowsAffected, result.Error
}
