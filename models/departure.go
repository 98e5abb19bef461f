package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DepartureStatus string

const (
	DepartureScheduled  DepartureStatus = "scheduled"
	DepartureGuaranteed DepartureStatus = "guaranteed"
	DepartureCompleted  DepartureStatus = "completed"
	DepartureCanceled   DepartureStatus = "canceled"
)

type Departure struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	Code          string            `json:"code" gorm:"unique"` // e.g. "PAT-14-260115"
	TourVersionID uint              `json:"tour_version_id"`
	TourVersion   TourVersion       `json:"tour_version,omitempty" gorm:"foreignKey:TourVersionID"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	Capacity      uint              `json:"capacity"`
	Status        DepartureStatus   `json:"status"`
	Guests        []Guest           `json:"guests,omitempty" gorm:"foreignKey:DepartureID"`
	Staff         []StaffAssignment `json:"staff,omitempty" gorm:"foreignKey:DepartureID"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `json:"deleted_at,omitempty" gorm:"index"`
}

func (d *Departure) BeforeCreate(tx *gorm.DB) error {
	if d.Status == "" {
		d.Status = DepartureScheduled
	}
	return nil
}

// ValidateTransition enforces the one-way departure lifecycle:
// scheduled -> guaranteed -> completed, with cancel allowed until completion.
func (d *Departure) ValidateTransition(newStatus DepartureStatus) error {
	switch d.Status {
	case DepartureScheduled:
		if newStatus != DepartureGuaranteed && newStatus != DepartureCanceled {
			return fmt.Errorf("invalid transition from scheduled to %s", newStatus)
		}
	case DepartureGuaranteed:
		if newStatus != DepartureCompleted && newStatus != DepartureCanceled {
			return fmt.Errorf("invalid transition from guaranteed to %s", newStatus)
		}
	case DepartureCompleted, DepartureCanceled:
		return fmt.Errorf("no transitions allowed from %s", d.Status)
	}
	return nil
}

// Bookable reports whether guests can still be added.
func (d *Departure) Bookable() bool {
	return d.Status == DepartureScheduled || d.Status == DepartureGuaranteed
}
