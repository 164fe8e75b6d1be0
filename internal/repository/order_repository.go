package repository

import (
	"context"

	"gorm.io/gorm"

	"ridenbite/internal/model"
)

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status       model.OrderStatus
	CustomerID   uint
	RestaurantID uint
}

// StatusCount is one row of the status breakdown aggregate.
type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
}

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID uint) ([]model.Order, error)
	// UpdateStatusGuard moves an order from one exact status to another and
	// reports how many rows matched. A zero count means the order was not in
	// the expected status, which callers treat as a lost race or an invalid
	// transition.
	UpdateStatusGuard(ctx context.Context, id uint, from, to model.OrderStatus) (int64, error)
	SetStatus(ctx context.Context, id uint, status model.OrderStatus) error
	SetRider(ctx context.Context, id uint, riderID uint) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	SumTotalByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	SumTotalByRestaurant(ctx context.Context, restaurantID uint, status model.OrderStatus) (int64, int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.RestaurantID != 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}

	var orders []model.Order
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByRestaurant(ctx context.Context, restaurantID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatusGuard(ctx context.Context, id uint, from, to model.OrderStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *orderRepository) SetStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *orderRepository) SetRider(ctx context.Context, id uint, riderID uint) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("rider_id", riderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *orderRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}

func (r *orderRepository) SumTotalByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var sum *int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("SUM(total)").
		Where("status = ?", status).
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

// SumTotalByRestaurant returns the summed totals and order count for one
// restaurant in the given status.
func (r *orderRepository) SumTotalByRestaurant(ctx context.Context, restaurantID uint, status model.OrderStatus) (int64, int64, error) {
	type row struct {
		Sum   *int64
		Count int64
	}
	var res row
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("SUM(total) as sum, COUNT(*) as count").
		Where("restaurant_id = ? AND status = ?", restaurantID, status).
		Scan(&res).Error
	if err != nil {
		return 0, 0, err
	}
	var sum int64
	if res.Sum != nil {
		sum = *res.Sum
	}
	return sum, res.Count, nil
}
