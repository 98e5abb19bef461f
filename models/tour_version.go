package models

import (
	"time"

	"gorm.io/gorm"
)

type VersionStatus string

const (
	VersionDraft   VersionStatus = "draft"
	VersionActive  VersionStatus = "active"
	VersionRetired VersionStatus = "retired"
)

// TourVersion is one priced season of a tour. Departures hang off a version,
// not the tour itself, so price changes never rewrite history.
type TourVersion struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	TourID           uint            `json:"tour_id"`
	Tour             Tour            `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	Name             string          `json:"name"` // season label, e.g. "Summer 2026"
	ValidFrom        time.Time       `json:"valid_from"`
	ValidTo          time.Time       `json:"valid_to"`
	Currency         string          `json:"currency"`
	BasePrice        float64         `json:"base_price"`
	SingleSupplement float64         `json:"single_supplement"`
	Status           VersionStatus   `json:"status"`
	Itinerary        []ItineraryItem `json:"itinerary,omitempty" gorm:"foreignKey:TourVersionID"`
	Departures       []Departure     `json:"departures,omitempty" gorm:"foreignKey:TourVersionID"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

func (v *TourVersion) BeforeCreate(tx *gorm.DB) error {
	if v.Status == "" {
		v.Status = VersionDraft
	}
	return nil
}
