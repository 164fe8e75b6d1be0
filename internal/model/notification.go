package model

import "time"

// NotificationType classifies admin notifications.
type NotificationType string

const (
	NotificationNewRestaurant  NotificationType = "NEW_RESTAURANT"
	NotificationOrderCancelled NotificationType = "ORDER_CANCELLED"
	NotificationOrderDelivered NotificationType = "ORDER_DELIVERED"
	NotificationOrderRefund    NotificationType = "ORDER_REFUND"
	NotificationRiderReassign  NotificationType = "RIDER_REASSIGNED"
)

// AdminNotification is created by backend triggers and shown on the admin
// dashboard. Read state is platform-global: there is no per-admin read flag.
// Rows are retained indefinitely.
type AdminNotification struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Type         NotificationType `json:"type" gorm:"size:40;not null;index"`
	Title        string           `json:"title" gorm:"size:255;not null"`
	Message      string           `json:"message" gorm:"size:1024;not null"`
	Read         bool             `json:"read" gorm:"default:false;index"`
	RestaurantID *uint            `json:"restaurant_id,omitempty"`
	Restaurant   *Restaurant      `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Metadata     string           `json:"metadata,omitempty" gorm:"size:2048"`
	CreatedAt    time.Time        `json:"created_at"`
}
