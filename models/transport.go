package models

import (
	"time"

	"gorm.io/gorm"
)

type TransportVehicle struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name"`
	Registration string         `json:"registration" gorm:"unique"`
	Type         string         `json:"type"` // e.g. "coach", "minibus", "4wd"
	Seats        uint           `json:"seats"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// SeatAssignment pins one guest of a departure to one labeled seat on a
// vehicle. A guest sits once per departure and a seat holds one guest per
// departure+vehicle. Hard deleted, same reasoning as StaffAssignment.
type SeatAssignment struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	DepartureID uint             `json:"departure_id" gorm:"index:idx_departure_guest,unique;index:idx_departure_vehicle_seat,unique"`
	VehicleID   uint             `json:"vehicle_id" gorm:"index:idx_departure_vehicle_seat,unique"`
	Vehicle     TransportVehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	GuestID     uint             `json:"guest_id" gorm:"index:idx_departure_guest,unique"`
	Guest       Guest            `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Seat        string           `json:"seat" gorm:"index:idx_departure_vehicle_seat,unique"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
