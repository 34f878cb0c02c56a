package pantry

import (
	"context"

	"gorm.io/gorm"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

type (
	PantryRepository interface {
		CreatePantryItem(ctx context.Context, item *entities.PantryItem) error
		CreatePantryItems(ctx context.Context, items []*entities.PantryItem) error
		GetPantryItems(ctx context.Context, userID string) ([]*entities.PantryItem, error)
		GetPantryItemByID(ctx context.Context, userID, itemID string) (*entities.PantryItem, error)
		UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error
		DeletePantryItem(ctx context.Context, userID, itemID string) error
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) CreatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pantryRepository) CreatePantryItems(ctx context.Context, items []*entities.PantryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

func (r *pantryRepository) GetPantryItems(ctx context.Context, userID string) ([]*entities.PantryItem, error) {
	var items []*entities.PantryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pantryRepository) GetPantryItemByID(ctx context.Context, userID, itemID string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrPantryItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *pantryRepository) DeletePantryItem(ctx context.Context, userID, itemID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&entities.PantryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPantryItemNotFound
	}
	return nil
}
