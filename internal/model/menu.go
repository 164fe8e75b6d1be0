package model

import "time"

// MenuItem belongs to a restaurant. Price is in minor currency units.
type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"size:1024"`
	Price        int64     `json:"price" gorm:"not null"`
	Available    bool      `json:"available" gorm:"default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
