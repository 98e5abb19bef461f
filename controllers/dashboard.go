package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/redis"
	"github.com/ckoohin/tourify/utils"
)

const dashboardCacheKey = "dashboard:overview"

type dashboardOverview struct {
	ToursDraft           int64     `json:"tours_draft"`
	ToursPublished       int64     `json:"tours_published"`
	ToursArchived        int64     `json:"tours_archived"`
	DeparturesScheduled  int64     `json:"departures_scheduled"`
	DeparturesGuaranteed int64     `json:"departures_guaranteed"`
	DeparturesCompleted  int64     `json:"departures_completed"`
	DeparturesCanceled   int64     `json:"departures_canceled"`
	GuestsNext30Days     int64     `json:"guests_next_30_days"`
	LastUpdated          time.Time `json:"last_updated"`
}

// GetDashboardOverview returns operation-wide counts. Cached in Redis for a
// minute; tour and departure state tolerates that staleness (role/permission
// data never goes through this cache).
func GetDashboardOverview(c *fiber.Ctx) error {
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, dashboardCacheKey).Result(); err == nil {
			var overview dashboardOverview
			if json.Unmarshal([]byte(cached), &overview) == nil {
				return utils.Success(c, fiber.StatusOK, "Dashboard overview fetched successfully", overview)
			}
		}
	}

	var overview dashboardOverview

	db.DB.Model(&models.Tour{}).Where("status = ?", models.TourDraft).Count(&overview.ToursDraft)
	db.DB.Model(&models.Tour{}).Where("status = ?", models.TourPublished).Count(&overview.ToursPublished)
	db.DB.Model(&models.Tour{}).Where("status = ?", models.TourArchived).Count(&overview.ToursArchived)

	db.DB.Model(&models.Departure{}).Where("status = ?", models.DepartureScheduled).Count(&overview.DeparturesScheduled)
	db.DB.Model(&models.Departure{}).Where("status = ?", models.DepartureGuaranteed).Count(&overview.DeparturesGuaranteed)
	db.DB.Model(&models.Departure{}).Where("status = ?", models.DepartureCompleted).Count(&overview.DeparturesCompleted)
	db.DB.Model(&models.Departure{}).Where("status = ?", models.DepartureCanceled).Count(&overview.DeparturesCanceled)

	now := time.Now()
	db.DB.Model(&models.Guest{}).
		Joins("JOIN departures ON departures.id = guests.departure_id").
		Where("departures.start_date BETWEEN ? AND ?", now, now.AddDate(0, 0, 30)).
		Count(&overview.GuestsNext30Days)

	overview.LastUpdated = now

	if redis.Client != nil {
		if payload, err := json.Marshal(overview); err == nil {
			redis.Client.Set(redis.Ctx, dashboardCacheKey, payload, time.Minute)
		}
	}

	return utils.Success(c, fiber.StatusOK, "Dashboard overview fetched successfully", overview)
}
