package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
)

// GetTours returns a page of tours, newest first, searchable by name or code
func GetTours(c *fiber.Ctx) error {
	page, limit, offset := utils.Pagination(c)

	query := db.DB.Model(&models.Tour{})
	if search := c.Query("search"); search != "" {
		q := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(code) LIKE ?", q, q)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch tours")
	}

	var tours []models.Tour
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&tours).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch tours")
	}

	return utils.SuccessList(c, "Tours fetched successfully", tours,
		utils.NewPaginationMeta(page, limit, total))
}

// GetTour returns a tour with its versions
func GetTour(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Tour id must be an integer")
	}

	var tour models.Tour
	if db.DB.Preload("Versions").First(&tour, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour not found")
	}

	return utils.Success(c, fiber.StatusOK, "Tour fetched successfully", tour)
}

// CreateTour creates a new tour in draft status
func CreateTour(c *fiber.Ctx) error {
	type CreateTourInput struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Days        uint   `json:"days"`
	}

	input := new(CreateTourInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Code == "" || input.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Code and name are required")
	}

	var existing models.Tour
	if db.DB.Where("code = ?", input.Code).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Tour with this code already exists")
	}

	derivedSlug := utils.Slugify(input.Name)
	if db.DB.Where("slug = ?", derivedSlug).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Tour with this slug already exists")
	}

	tour := models.Tour{
		Code:        input.Code,
		Name:        input.Name,
		Slug:        derivedSlug,
		Description: input.Description,
		Days:        input.Days,
	}
	if err := db.DB.Create(&tour).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create tour")
	}

	return utils.Success(c, fiber.StatusCreated, "Tour created successfully", tour)
}

// UpdateTour applies a partial update to a tour
func UpdateTour(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Tour id must be an integer")
	}

	type UpdateTourInput struct {
		Name        *string            `json:"name"`
		Description *string            `json:"description"`
		Days        *uint              `json:"days"`
		Status      *models.TourStatus `json:"status"`
	}

	input := new(UpdateTourInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var tour models.Tour
	if db.DB.First(&tour, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != tour.Name {
		derivedSlug := utils.Slugify(*input.Name)
		var existing models.Tour
		if db.DB.Where("slug = ? AND id <> ?", derivedSlug, tour.ID).First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Tour with this slug already exists")
		}
		updates["name"] = *input.Name
		updates["slug"] = derivedSlug
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Days != nil {
		updates["days"] = *input.Days
	}
	if input.Status != nil {
		switch *input.Status {
		case models.TourDraft, models.TourPublished, models.TourArchived:
			updates["status"] = *input.Status
		default:
			return utils.Error(c, fiber.StatusBadRequest, "Invalid tour status")
		}
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&tour).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update tour")
		}
	}

	var updated models.Tour
	db.DB.First(&updated, tour.ID)
	return utils.Success(c, fiber.StatusOK, "Tour updated successfully", updated)
}

// DeleteTour removes a tour unless it still has versions
func DeleteTour(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Tour id must be an integer")
	}

	var tour models.Tour
	if db.DB.First(&tour, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour not found")
	}

	var versions int64
	if err := db.DB.Model(&models.TourVersion{}).Where("tour_id = ?", tour.ID).Count(&versions).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check tour versions")
	}
	if versions > 0 {
		return utils.Error(c, fiber.StatusConflict, "Tour still has versions and cannot be deleted")
	}

	if err := db.DB.Delete(&tour).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete tour")
	}

	return utils.Success(c, fiber.StatusOK, "Tour deleted successfully", nil)
}

// UploadTourCover uploads a cover image for a tour and stores the URL
func UploadTourCover(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Tour id must be an integer")
	}

	var tour models.Tour
	if db.DB.First(&tour, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Tour not found")
	}

	file, err := c.FormFile("cover")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Failed to get cover image")
	}

	f, err := file.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to open cover image")
	}
	defer f.Close()

	publicID := fmt.Sprintf("tour_%d_%d", tour.ID, time.Now().Unix())
	secureURL, err := utils.UploadTourCover(f, publicID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to upload cover image")
	}

	if err := db.DB.Model(&tour).Update("cover_url", secureURL).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save cover URL")
	}

	return utils.Success(c, fiber.StatusOK, "Cover image uploaded successfully", fiber.Map{
		"cover_url": secureURL,
	})
}
