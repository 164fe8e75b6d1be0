package model

import "time"

// Role identifies what a user can do on the platform.
type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleRestaurant Role = "RESTAURANT"
	RoleRider      Role = "RIDER"
	RoleAdmin      Role = "ADMIN"
)

// User represents an authenticated user in the system. Users are never
// hard-deleted; admins toggle the Suspended flag instead.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Phone        string    `json:"phone,omitempty" gorm:"size:32"`
	Role         Role      `json:"role" gorm:"size:20;not null;default:'CUSTOMER';index"`
	Suspended    bool      `json:"suspended" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
