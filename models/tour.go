package models

import (
	"time"

	"gorm.io/gorm"
)

type TourStatus string

const (
	TourDraft     TourStatus = "draft"
	TourPublished TourStatus = "published"
	TourArchived  TourStatus = "archived"
)

type Tour struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Code        string         `json:"code" gorm:"unique"` // short booking code, e.g. "PAT-14"
	Name        string         `json:"name"`
	Slug        string         `json:"slug" gorm:"unique"`
	Description string         `json:"description"`
	Days        uint           `json:"days"`
	Status      TourStatus     `json:"status"`
	CoverURL    string         `json:"cover_url"`
	Versions    []TourVersion  `json:"versions,omitempty" gorm:"foreignKey:TourID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (t *Tour) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = TourDraft
	}
	return nil
}
