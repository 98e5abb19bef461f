package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
)

// GetPermissions returns a page of permissions, newest first, optionally
// filtered by a search substring over name and description.
func GetPermissions(c *fiber.Ctx) error {
	page, limit, offset := utils.Pagination(c)

	query := db.DB.Model(&models.Permission{})
	if search := c.Query("search"); search != "" {
		q := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(description) LIKE ?", q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch permissions")
	}

	var permissions []models.Permission
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&permissions).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch permissions")
	}

	return utils.SuccessList(c, "Permissions fetched successfully", permissions,
		utils.NewPaginationMeta(page, limit, total))
}

// GetPermission returns a single permission by id
func GetPermission(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Permission id must be an integer")
	}

	var permission models.Permission
	if db.DB.First(&permission, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Permission not found")
	}

	return utils.Success(c, fiber.StatusOK, "Permission fetched successfully", permission)
}

// CreatePermission creates a new permission. The slug is derived from the
// name server-side; name and slug collisions are checked separately because
// two different names can normalize to the same slug.
func CreatePermission(c *fiber.Ctx) error {
	type CreatePermissionInput struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	input := new(CreatePermissionInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Permission name is required")
	}

	var existing models.Permission
	if db.DB.Where("name = ?", input.Name).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Permission with this name already exists")
	}

	derivedSlug := utils.Slugify(input.Name)
	if db.DB.Where("slug = ?", derivedSlug).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Permission with this slug already exists")
	}

	permission := models.Permission{
		Name:        input.Name,
		Slug:        derivedSlug,
		Description: input.Description,
	}
	if err := db.DB.Create(&permission).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create permission")
	}

	// Reload so the response carries the authoritative server-computed fields
	var created models.Permission
	if err := db.DB.First(&created, permission.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load created permission")
	}

	return utils.Success(c, fiber.StatusCreated, "Permission created successfully", created)
}

// UpdatePermission applies a partial update. A changed name repeats the
// create-time uniqueness checks; an empty body is a successful no-op.
func UpdatePermission(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Permission id must be an integer")
	}

	type UpdatePermissionInput struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	input := new(UpdatePermissionInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var permission models.Permission
	if db.DB.First(&permission, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Permission not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != permission.Name {
		if *input.Name == "" {
			return utils.Error(c, fiber.StatusBadRequest, "Permission name cannot be empty")
		}

		var existing models.Permission
		if db.DB.Where("name = ? AND id <> ?", *input.Name, permission.ID).First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Permission with this name already exists")
		}

		derivedSlug := utils.Slugify(*input.Name)
		if db.DB.Where("slug = ? AND id <> ?", derivedSlug, permission.ID).First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Permission with this slug already exists")
		}

		updates["name"] = *input.Name
		updates["slug"] = derivedSlug
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&permission).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update permission")
		}
	}

	var updated models.Permission
	if err := db.DB.First(&updated, permission.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load updated permission")
	}

	return utils.Success(c, fiber.StatusOK, "Permission updated successfully", updated)
}

// DeletePermission removes a permission unless a role still references it.
func DeletePermission(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Permission id must be an integer")
	}

	var permission models.Permission
	if db.DB.First(&permission, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Permission not found")
	}

	var assigned int64
	if err := db.DB.Model(&models.RolePermission{}).Where("permission_id = ?", permission.ID).Count(&assigned).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check role assignments")
	}
	if assigned > 0 {
		return utils.Error(c, fiber.StatusConflict, "Permission is assigned to one or more roles and cannot be deleted")
	}

	if err := db.DB.Delete(&permission).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete permission")
	}

	return utils.Success(c, fiber.StatusOK, "Permission deleted successfully", nil)
}
