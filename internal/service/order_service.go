package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ridenbite/internal/errors"
	"ridenbite/internal/events"
	"ridenbite/internal/model"
	"ridenbite/internal/repository"
)

// OrderItemInput is one line of a new order.
type OrderItemInput struct {
	MenuItemID uint
	Quantity   int
}

// OrderService owns the order lifecycle: creation, the forward-only status
// tracker, and the admin out-of-band actions.
type OrderService interface {
	Create(ctx context.Context, customerID, restaurantID uint, items []OrderItemInput) (*model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
	ListForRestaurantOwner(ctx context.Context, ownerID uint) ([]model.Order, error)
	// Advance moves the order one step forward in the canonical sequence.
	// Advancing a terminal order is a no-op returning the unchanged order.
	Advance(ctx context.Context, ownerID, orderID uint) (*model.Order, error)
	SetStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*model.Order, error)
	Cancel(ctx context.Context, orderID uint) (*model.Order, error)
	Reassign(ctx context.Context, orderID, riderID uint) (*model.Order, error)
	Refund(ctx context.Context, orderID uint) (*model.Order, error)
}

type orderService struct {
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
	userRepo       repository.UserRepository
	notifications  NotificationService
	publisher      *events.Publisher
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	menuRepo repository.MenuRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
	publisher *events.Publisher,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		publisher:      publisher,
	}
}

// Create builds a PENDING order, snapshotting menu prices into line items.
func (s *orderService) Create(ctx context.Context, customerID, restaurantID uint, items []OrderItemInput) (*model.Order, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, err
	}
	if !restaurant.Approved || restaurant.Suspended {
		return nil, errors.ErrRestaurantUnavailable
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuItemID)
	}
	menuItems, err := s.menuRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	var total int64
	lines := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		mi, ok := byID[it.MenuItemID]
		if !ok || mi.RestaurantID != restaurantID {
			return nil, errors.ErrMenuItemNotFound
		}
		if !mi.Available {
			return nil, errors.ErrMenuItemUnavailable
		}
		total += mi.Price * int64(it.Quantity)
		lines = append(lines, model.OrderItem{
			MenuItemID: mi.ID,
			Name:       mi.Name,
			UnitPrice:  mi.Price,
			Quantity:   it.Quantity,
		})
	}

	order := &model.Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Status:       model.StatusPending,
		Total:        total,
		Currency:     "USD",
		Items:        lines,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (s *orderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *orderService) ListForRestaurantOwner(ctx context.Context, ownerID uint) ([]model.Order, error) {
	restaurant, err := s.restaurantRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, err
	}
	return s.orderRepo.ListByRestaurant(ctx, restaurant.ID)
}

// Advance performs a guarded forward transition. The WHERE status=<seen>
// guard means two concurrent advances cannot double-step: the loser observes
// zero affected rows and gets ErrStatusConflict.
func (s *orderService) Advance(ctx context.Context, ownerID, orderID uint) (*model.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if ownerID != 0 {
		restaurant, err := s.restaurantRepo.FindByOwnerID(ctx, ownerID)
		if err != nil || restaurant.ID != order.RestaurantID {
			return nil, errors.ErrForbidden
		}
	}

	next, ok := model.NextStatus(order.Status)
	if !ok {
		// terminal: no-op, not an error
		return order, nil
	}

	affected, err := s.orderRepo.UpdateStatusGuard(ctx, order.ID, order.Status, next)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.ErrStatusConflict
	}

	order.Status = next
	s.afterStatusChange(ctx, order)
	return order, nil
}

// SetStatus is the admin override to any canonical status.
func (s *orderService) SetStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, errors.ErrInvalidOrderStatus
	}
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.SetStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	s.afterStatusChange(ctx, order)
	return order, nil
}

// Cancel forces CANCELLED from any prior state, matching the admin dashboard
// contract. Subsequent advances no-op because CANCELLED is terminal.
func (s *orderService) Cancel(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.SetStatus(ctx, order.ID, model.StatusCancelled); err != nil {
		return nil, err
	}
	order.Status = model.StatusCancelled

	restaurantID := order.RestaurantID
	s.notifications.Notify(ctx, &model.AdminNotification{
		Type:         model.NotificationOrderCancelled,
		Title:        "Order cancelled",
		Message:      fmt.Sprintf("Order #%d was cancelled by an admin", order.ID),
		RestaurantID: &restaurantID,
		Metadata:     fmt.Sprintf(`{"orderId":%d}`, order.ID),
	})
	s.publishStatus(ctx, order)
	return order, nil
}

// Reassign swaps the rider reference without touching status.
func (s *orderService) Reassign(ctx context.Context, orderID, riderID uint) (*model.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	rider, err := s.userRepo.FindByID(ctx, riderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	if rider.Role != model.RoleRider {
		return nil, errors.ErrForbidden
	}

	if err := s.orderRepo.SetRider(ctx, order.ID, riderID); err != nil {
		return nil, err
	}
	order.RiderID = &riderID

	restaurantID := order.RestaurantID
	s.notifications.Notify(ctx, &model.AdminNotification{
		Type:         model.NotificationRiderReassign,
		Title:        "Rider reassigned",
		Message:      fmt.Sprintf("Order #%d was reassigned to %s", order.ID, rider.Name),
		RestaurantID: &restaurantID,
		Metadata:     fmt.Sprintf(`{"orderId":%d,"riderId":%d}`, order.ID, riderID),
	})
	return order, nil
}

// Refund is accepted but mutates no order fields; it exists as the seam for a
// future payment integration. The only observable effect is the notification.
func (s *orderService) Refund(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	restaurantID := order.RestaurantID
	s.notifications.Notify(ctx, &model.AdminNotification{
		Type:         model.NotificationOrderRefund,
		Title:        "Refund requested",
		Message:      fmt.Sprintf("A refund was requested for order #%d", order.ID),
		RestaurantID: &restaurantID,
		Metadata:     fmt.Sprintf(`{"orderId":%d,"amount":%d}`, order.ID, order.Total),
	})
	return order, nil
}

// afterStatusChange runs the best-effort side effects of a status write.
// Their failure never rolls back the order mutation.
func (s *orderService) afterStatusChange(ctx context.Context, order *model.Order) {
	if order.Status == model.StatusDelivered {
		restaurantID := order.RestaurantID
		s.notifications.Notify(ctx, &model.AdminNotification{
			Type:         model.NotificationOrderDelivered,
			Title:        "Order delivered",
			Message:      fmt.Sprintf("Order #%d was delivered", order.ID),
			RestaurantID: &restaurantID,
			Metadata:     fmt.Sprintf(`{"orderId":%d}`, order.ID),
		})
	}
	s.publishStatus(ctx, order)
}

func (s *orderService) publishStatus(ctx context.Context, order *model.Order) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, events.Event{
		Type:       "ORDER_STATUS_CHANGED",
		OrderID:    order.ID,
		Restaurant: order.RestaurantID,
		Status:     string(order.Status),
	})
}
