package model

import "time"

// VehicleType is what a rider delivers with.
type VehicleType string

const (
	VehicleBike    VehicleType = "BIKE"
	VehicleCar     VehicleType = "CAR"
	VehicleBicycle VehicleType = "BICYCLE"
	VehicleScooter VehicleType = "SCOOTER"
)

// DefaultVehicleType is assigned when a rider registers without picking one.
const DefaultVehicleType = VehicleBike

// RiderProfile is created alongside a RIDER-role user. Riders are
// auto-approved; there is no vetting gate for them in this version.
type RiderProfile struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"uniqueIndex;not null"`
	VehicleType VehicleType `json:"vehicle_type" gorm:"size:20;not null;default:'BIKE'"`
	Approved    bool        `json:"approved" gorm:"default:true"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
