package models

import (
	"time"
)

type StaffDuty string

const (
	DutyLeader StaffDuty = "leader"
	DutyGuide  StaffDuty = "guide"
	DutyDriver StaffDuty = "driver"
)

// StaffAssignment puts one staff member on one departure in one duty.
// A user holds at most one duty per departure. Assignment rows are hard
// deleted so a re-assignment after an unassign never trips the unique index.
type StaffAssignment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DepartureID uint      `json:"departure_id" gorm:"index:idx_departure_user,unique"`
	UserID      uint      `json:"user_id" gorm:"index:idx_departure_user,unique"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Duty        StaffDuty `json:"duty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
