package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
)

// GetRoles returns a page of roles, newest first
func GetRoles(c *fiber.Ctx) error {
	page, limit, offset := utils.Pagination(c)

	query := db.DB.Model(&models.Role{})
	if search := c.Query("search"); search != "" {
		q := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(description) LIKE ?", q, q)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch roles")
	}

	var roles []models.Role
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&roles).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch roles")
	}

	return utils.SuccessList(c, "Roles fetched successfully", roles,
		utils.NewPaginationMeta(page, limit, total))
}

// GetRole returns a single role by id
func GetRole(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Role id must be an integer")
	}

	var role models.Role
	if db.DB.First(&role, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}

	return utils.Success(c, fiber.StatusOK, "Role fetched successfully", role)
}

// CreateRole creates a new role. Same uniqueness dance as permissions:
// name first, then the derived slug as its own check.
func CreateRole(c *fiber.Ctx) error {
	type CreateRoleInput struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	input := new(CreateRoleInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Role name is required")
	}

	var existing models.Role
	if db.DB.Where("name = ?", input.Name).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Role with this name already exists")
	}

	derivedSlug := utils.Slugify(input.Name)
	if db.DB.Where("slug = ?", derivedSlug).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Role with this slug already exists")
	}

	role := models.Role{
		Name:        input.Name,
		Slug:        derivedSlug,
		Description: input.Description,
	}
	if err := db.DB.Create(&role).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create role")
	}

	var created models.Role
	if err := db.DB.First(&created, role.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load created role")
	}

	return utils.Success(c, fiber.StatusCreated, "Role created successfully", created)
}

// UpdateRole applies a partial update to a role
func UpdateRole(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Role id must be an integer")
	}

	type UpdateRoleInput struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	input := new(UpdateRoleInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var role models.Role
	if db.DB.First(&role, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != role.Name {
		if *input.Name == "" {
			return utils.Error(c, fiber.StatusBadRequest, "Role name cannot be empty")
		}

		var existing models.Role
		if db.DB.Where("name = ? AND id <> ?", *input.Name, role.ID).First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Role with this name already exists")
		}

		derivedSlug := utils.Slugify(*input.Name)
		if db.DB.Where("slug = ? AND id <> ?", derivedSlug, role.ID).First(&existing).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Role with this slug already exists")
		}

		updates["name"] = *input.Name
		updates["slug"] = derivedSlug
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&role).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to update role")
		}
	}

	var updated models.Role
	if err := db.DB.First(&updated, role.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load updated role")
	}

	return utils.Success(c, fiber.StatusOK, "Role updated successfully", updated)
}

// DeleteRole removes a role unless it still has permissions assigned.
func DeleteRole(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Role id must be an integer")
	}

	var role models.Role
	if db.DB.First(&role, id).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}

	var assigned int64
	if err := db.DB.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&assigned).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check permission assignments")
	}
	if assigned > 0 {
		return utils.Error(c, fiber.StatusConflict, "Role still has permissions assigned and cannot be deleted")
	}

	if err := db.DB.Delete(&role).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete role")
	}

	return utils.Success(c, fiber.StatusOK, "Role deleted successfully", nil)
}
