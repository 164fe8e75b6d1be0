package model

import "time"

// OrderStatus is the canonical order lifecycle vocabulary. The restaurant
// dashboard sees a condensed five-state view derived via RestaurantView; there
// is a single source of truth.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusAssigned  OrderStatus = "ASSIGNED"
	StatusPickedUp  OrderStatus = "PICKED_UP"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// RestaurantOrderStatus is the condensed status vocabulary shown to
// restaurant operators.
type RestaurantOrderStatus string

const (
	ViewPending        RestaurantOrderStatus = "PENDING"
	ViewAccepted       RestaurantOrderStatus = "ACCEPTED"
	ViewCooking        RestaurantOrderStatus = "COOKING"
	ViewReadyForPickup RestaurantOrderStatus = "READY_FOR_PICKUP"
	ViewCompleted      RestaurantOrderStatus = "COMPLETED"
	ViewCancelled      RestaurantOrderStatus = "CANCELLED"
)

// statusFlow is the forward-only sequence. CANCELLED sits outside the flow and
// is reachable from any non-terminal state via admin cancel.
var statusFlow = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusAssigned,
	StatusPickedUp,
	StatusDelivered,
}

var restaurantView = map[OrderStatus]RestaurantOrderStatus{
	StatusPending:   ViewPending,
	StatusConfirmed: ViewAccepted,
	StatusPreparing: ViewCooking,
	StatusReady:     ViewReadyForPickup,
	StatusAssigned:  ViewReadyForPickup,
	StatusPickedUp:  ViewCompleted,
	StatusDelivered: ViewCompleted,
	StatusCancelled: ViewCancelled,
}

// ValidStatus reports whether s is a known canonical status.
func ValidStatus(s OrderStatus) bool {
	if s == StatusCancelled {
		return true
	}
	for _, f := range statusFlow {
		if f == s {
			return true
		}
	}
	return false
}

// NextStatus returns the status following s in the forward flow. ok is false
// for terminal statuses (DELIVERED, CANCELLED) and unknown values.
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	for i, f := range statusFlow {
		if f == s && i < len(statusFlow)-1 {
			return statusFlow[i+1], true
		}
	}
	return "", false
}

// Terminal reports whether no forward transition is defined from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// RestaurantView maps a canonical status to the restaurant dashboard vocabulary.
func (s OrderStatus) RestaurantView() RestaurantOrderStatus {
	if v, ok := restaurantView[s]; ok {
		return v
	}
	return RestaurantOrderStatus(s)
}

// StatusFlow returns a copy of the forward sequence.
func StatusFlow() []OrderStatus {
	out := make([]OrderStatus, len(statusFlow))
	copy(out, statusFlow)
	return out
}

// Order is a customer's order against one restaurant. Total is in minor
// currency units. RiderID stays nil until an admin assigns a rider.
type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	CustomerID   uint        `json:"customer_id" gorm:"not null;index"`
	Customer     User        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	RiderID      *uint       `json:"rider_id"`
	Rider        *User       `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
	Status       OrderStatus `json:"status" gorm:"size:20;not null;default:'PENDING';index"`
	Total        int64       `json:"total" gorm:"not null"`
	Currency     string      `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Items        []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// OrderItem snapshots the menu item price at order time.
type OrderItem struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	OrderID    uint   `json:"order_id" gorm:"not null;index"`
	MenuItemID uint   `json:"menu_item_id" gorm:"not null"`
	Name       string `json:"name" gorm:"size:255;not null"`
	UnitPrice  int64  `json:"unit_price" gorm:"not null"`
	Quantity   int    `json:"quantity" gorm:"not null"`
}
