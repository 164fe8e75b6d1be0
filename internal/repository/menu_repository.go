package repository

import (
	"context"

	"gorm.io/gorm"

	"ridenbite/internal/model"
)

// MenuRepository defines menu item persistence operations.
type MenuRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.MenuItem, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uint, availableOnly bool) ([]model.MenuItem, error)
}

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) Update(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.MenuItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepository) FindByID(ctx context.Context, id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *menuRepository) ListByRestaurant(ctx context.Context, restaurantID uint, availableOnly bool) ([]model.MenuItem, error) {
	query := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if availableOnly {
		query = query.Where("available = ?", true)
	}
	var items []model.MenuItem
	err := query.Order("name").Find(&items).Error
	return items, err
}
