package model

import "time"

// Restaurant is the storefront owned by exactly one RESTAURANT-role user.
// Approved defaults to false; an admin flips it via the approval workflow.
// A rejected application keeps approved=false, so "rejected" and "never
// reviewed" are stored identically.
type Restaurant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"uniqueIndex;not null"`
	Owner     User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Address   string    `json:"address" gorm:"size:512;not null"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Approved  bool      `json:"approved" gorm:"default:false;index"`
	Suspended bool      `json:"suspended" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile   *RestaurantProfile `json:"profile,omitempty" gorm:"foreignKey:RestaurantID"`
	MenuItems []MenuItem         `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
}

// RestaurantProfileStatus is the operational state of an approved restaurant.
type RestaurantProfileStatus string

const (
	ProfileStatusActive RestaurantProfileStatus = "ACTIVE"
)

// RestaurantProfile carries the business details collected at registration.
type RestaurantProfile struct {
	ID           uint                    `json:"id" gorm:"primaryKey"`
	RestaurantID uint                    `json:"restaurant_id" gorm:"uniqueIndex;not null"`
	Phone        string                  `json:"phone" gorm:"size:32;not null"`
	Description  string                  `json:"description" gorm:"size:1024"`
	ImageURL     string                  `json:"image_url,omitempty" gorm:"size:512"`
	Status       RestaurantProfileStatus `json:"status" gorm:"size:20;not null;default:'ACTIVE'"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}
