package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
)

// GetTourVersions lists all versions of a tour
func GetTourVersions(c *fiber.Ctx) error {
	tourID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Tour id must be an integer")
	}

	var tour models.Tour
	if db.DB.First(&tour, tourID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour not found")
	}

	var versions []models.TourVersion
	if err := db.DB.Where("tour_id = ?", tour.ID).Order("valid_from DESC").Find(&versions).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch tour versions")
	}

	return utils.Success(c, fiber.StatusOK, "Tour versions fetched successfully", versions)
}

// CreateTourVersion adds a priced season to a tour
func CreateTourVersion(c *fiber.Ctx) error {
	tourID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Tour id must be an integer")
	}

	var tour models.Tour
	if db.DB.First(&tour, tourID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour not found")
	}

	type CreateVersionInput struct {
		Name             string    `json:"name"`
		ValidFrom        time.Time `json:"valid_from"`
		ValidTo          time.Time `json:"valid_to"`
		Currency         string    `json:"currency"`
		BasePrice        float64   `json:"base_price"`
		SingleSupplement float64   `json:"single_supplement"`
	}

	input := new(CreateVersionInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Name == "" || input.Currency == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Name and currency are required")
	}
	if input.ValidTo.Before(input.ValidFrom) {
		return utils.Error(c, fiber.StatusBadRequest, "valid_to must not be before valid_from")
	}
	if input.BasePrice < 0 || input.SingleSupplement < 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Prices cannot be negative")
	}

	version := models.TourVersion{
		TourID:           tour.ID,
		Name:             input.Name,
		ValidFrom:        input.ValidFrom,
		ValidTo:          input.ValidTo,
		Currency:         input.Currency,
		BasePrice:        input.BasePrice,
		SingleSupplement: input.SingleSupplement,
	}
	if err := db.DB.Create(&version).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create tour version")
	}

	return utils.Success(c, fiber.StatusCreated, "Tour version created successfully", version)
}

// UpdateTourVersion applies a partial update to a version's label or pricing
func UpdateTourVersion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Version id must be an integer")
	}

	type UpdateVersionInput struct {
		Name             *string               `json:"name"`
		ValidFrom        *time.Time            `json:"valid_from"`
		ValidTo          *time.Time            `json:"valid_to"`
		Currency         *string               `json:"currency"`
		BasePrice        *float64              `json:"base_price"`
		SingleSupplement *float64              `json:"single_supplement"`
		Status           *models.VersionStatus `json:"status"`
	}

	input := new(UpdateVersionInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var version models.TourVersion
	if db.DB.First(&version, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour version not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.ValidFrom != nil {
		updates["valid_from"] = *input.ValidFrom
	}
	if input.ValidTo != nil {
		updates["valid_to"] = *input.ValidTo
	}
	if input.Currency != nil {
		updates["currency"] = *input.Currency
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			return utils.Error(c, fiber.StatusBadRequest, "Prices cannot be negative")
		}
		updates["base_price"] = *input.BasePrice
	}
	if input.SingleSupplement != nil {
		if *input.SingleSupplement < 0 {
			return utils.Error(c, fiber.StatusBadRequest, "Prices cannot be negative")
		}
		updates["single_supplement"] = *input.SingleSupplement
	}
	if input.Status != nil {
		switch *input.Status {
		case models.VersionDraft, models.VersionActive, models.VersionRetired:
			updates["status"] = *input.Status
		default:
			return utils.Error(c, fiber.StatusBadRequest, "Invalid version status")
		}
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&version).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update tour version")
		}
	}

	var updated models.TourVersion
	db.DB.First(&updated, version.ID)
	return utils.Success(c, fiber.StatusOK, "Tour version updated successfully", updated)
}

// DeleteTourVersion removes a version unless departures reference it
func DeleteTourVersion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Version id must be an integer")
	}

	var version models.TourVersion
	if db.DB.First(&version, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour version not found")
	}

	var departures int64
	if err := db.DB.Model(&models.Departure{}).Where("tour_version_id = ?", version.ID).Count(&departures).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check departures")
	}
	if departures > 0 {
		return utils.Error(c, fiber.StatusConflict, "Tour version still has departures and cannot be deleted")
	}

	if err := db.DB.Delete(&version).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete tour version")
	}

	return utils.Success(c, fiber.StatusOK, "Tour version deleted successfully", nil)
}

// GetItinerary lists a version's itinerary ordered by day
func GetItinerary(c *fiber.Ctx) error {
	versionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Version id must be an integer")
	}

	var version models.TourVersion
	if db.DB.First(&version, versionID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour version not found")
	}

	var items []models.ItineraryItem
	if err := db.DB.Where("tour_version_id = ?", version.ID).Order("day ASC").Find(&items).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch itinerary")
	}

	return utils.Success(c, fiber.StatusOK, "Itinerary fetched successfully", items)
}

// CreateItineraryItem adds a day to a version's itinerary
func CreateItineraryItem(c *fiber.Ctx) error {
	versionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Version id must be an integer")
	}

	var version models.TourVersion
	if db.DB.First(&version, versionID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour version not found")
	}

	type CreateItemInput struct {
		Day         uint   `json:"day"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Meals       string `json:"meals"`
		Overnight   string `json:"overnight"`
	}

	input := new(CreateItemInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Day == 0 || input.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Day and title are required")
	}

	var existing models.ItineraryItem
	if db.DB.Where("tour_version_id = ? AND day = ?", version.ID, input.Day).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "This day already has an itinerary entry")
	}

	item := models.ItineraryItem{
		TourVersionID: version.ID,
		Day:           input.Day,
		Title:         input.Title,
		Description:   input.Description,
		Meals:         input.Meals,
		Overnight:     input.Overnight,
	}
	if err := db.DB.Create(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create itinerary item")
	}

	return utils.Success(c, fiber.StatusCreated, "Itinerary item created successfully", item)
}

// UpdateItineraryItem edits one itinerary day
func UpdateItineraryItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Itinerary item id must be an integer")
	}

	type UpdateItemInput struct {
		Day         *uint   `json:"day"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Meals       *string `json:"meals"`
		Overnight   *string `json:"overnight"`
	}

	input := new(UpdateItemInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var item models.ItineraryItem
	if db.DB.First(&item, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Itinerary item not found")
	}

	updates := map[string]interface{}{}
	if input.Day != nil && *input.Day != item.Day {
		var existing models.ItineraryItem
		if db.DB.Where("tour_version_id = ? AND day = ? AND id <> ?", item.TourVersionID, *input.Day, item.ID).
			First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "This day already has an itinerary entry")
		}
		updates["day"] = *input.Day
	}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Meals != nil {
		updates["meals"] = *input.Meals
	}
	if input.Overnight != nil {
		updates["overnight"] = *input.Overnight
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&item).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update itinerary item")
		}
	}

	var updated models.ItineraryItem
	db.DB.First(&updated, item.ID)
	return utils.Success(c, fiber.StatusOK, "Itinerary item updated successfully", updated)
}

// DeleteItineraryItem removes one itinerary day
func DeleteItineraryItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Itinerary item id must be an integer")
	}

	var item models.ItineraryItem
	if db.DB.First(&item, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Itinerary item not found")
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete itinerary item")
	}

	return utils.Success(c, fiber.StatusOK, "Itinerary item deleted successfully", nil)
}
