package models

import (
	"time"

	"gorm.io/gorm"
)

type ItineraryItem struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TourVersionID uint           `json:"tour_version_id"`
	Day           uint           `json:"day"` // 1-based day within the tour
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Meals         string         `json:"meals"` // e.g. "B,L,D"
	Overnight     string         `json:"overnight"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
