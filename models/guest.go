package models

import (
	"time"

	"gorm.io/gorm"
)

type Guest struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	DepartureID  uint           `json:"departure_id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	PassportNo   string         `json:"passport_no"`
	DietaryNotes string         `json:"dietary_notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
