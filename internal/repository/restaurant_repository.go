package repository

import (
	"context"

	"gorm.io/gorm"

	"ridenbite/internal/model"
)

// RestaurantFilter narrows admin restaurant listings.
type RestaurantFilter struct {
	Page   int
	Limit  int
	Status string // "pending" | "active" | ""
	Search string
}

// RestaurantRepository defines restaurant persistence operations.
type RestaurantRepository interface {
	CreateWithOwner(ctx context.Context, owner *model.User, restaurant *model.Restaurant, profile *model.RestaurantProfile) error
	FindByID(ctx context.Context, id uint) (*model.Restaurant, error)
	FindByOwnerID(ctx context.Context, ownerID uint) (*model.Restaurant, error)
	List(ctx context.Context, filter RestaurantFilter) ([]model.Restaurant, int64, error)
	ListApproved(ctx context.Context) ([]model.Restaurant, error)
	SetApproved(ctx context.Context, id uint, approved bool) (*model.Restaurant, error)
	SetSuspended(ctx context.Context, id uint, suspended bool) (*model.Restaurant, error)
	CountPending(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	MenuAndOrderCounts(ctx context.Context, id uint) (menuItems int64, orders int64, err error)
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

// CreateWithOwner persists the owning user, the restaurant and its profile in
// one transaction. Registration either fully commits or fully aborts.
func (r *restaurantRepository) CreateWithOwner(ctx context.Context, owner *model.User, restaurant *model.Restaurant, profile *model.RestaurantProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		restaurant.OwnerID = owner.ID
		if err := tx.Create(restaurant).Error; err != nil {
			return err
		}
		profile.RestaurantID = restaurant.ID
		return tx.Create(profile).Error
	})
}

func (r *restaurantRepository) FindByID(ctx context.Context, id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).Preload("Owner").Preload("Profile").First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) FindByOwnerID(ctx context.Context, ownerID uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// List returns a page of restaurants newest-first plus the unpaged total.
// status=pending filters approved=false; status=active filters approved
// restaurants that are not suspended. Search matches restaurant name or the
// owner's email.
func (r *restaurantRepository) List(ctx context.Context, filter RestaurantFilter) ([]model.Restaurant, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Joins("JOIN users ON users.id = restaurants.owner_id")

	switch filter.Status {
	case "pending":
		query = query.Where("restaurants.approved = ?", false)
	case "active":
		query = query.Where("restaurants.approved = ? AND restaurants.suspended = ?", true, false)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("restaurants.name LIKE ? OR users.email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var restaurants []model.Restaurant
	err := query.Preload("Owner").
		Order("restaurants.created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&restaurants).Error
	return restaurants, total, err
}

func (r *restaurantRepository) ListApproved(ctx context.Context) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.WithContext(ctx).
		Where("approved = ? AND suspended = ?", true, false).
		Order("created_at DESC").
		Find(&restaurants).Error
	return restaurants, err
}

// SetApproved writes the approved flag. The write is a plain idempotent
// update, so concurrent approvals converge on the same stored state.
func (r *restaurantRepository) SetApproved(ctx context.Context, id uint, approved bool) (*model.Restaurant, error) {
	if err := r.updateFlag(ctx, id, "approved", approved); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// SetSuspended writes the suspended flag.
func (r *restaurantRepository) SetSuspended(ctx context.Context, id uint, suspended bool) (*model.Restaurant, error) {
	if err := r.updateFlag(ctx, id, "suspended", suspended); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *restaurantRepository) updateFlag(ctx context.Context, id uint, column string, value bool) error {
	res := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row is absent or the flag already held the value.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *restaurantRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Where("approved = ?", false).Count(&count).Error
	return count, err
}

func (r *restaurantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Count(&count).Error
	return count, err
}

func (r *restaurantRepository) MenuAndOrderCounts(ctx context.Context, id uint) (int64, int64, error) {
	var menuItems, orders int64
	if err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("restaurant_id = ?", id).Count(&menuItems).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("restaurant_id = ?", id).Count(&orders).Error; err != nil {
		return 0, 0, err
	}
	return menuItems, orders, nil
}
