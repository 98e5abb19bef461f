package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
	"github.com/ckoohin/tourify/utils"
)

// rolePermissionResult is the shared response body for assignment operations
type rolePermissionResult struct {
	Role             models.Role         `json:"role"`
	AssignedCount    int                 `json:"assignedCount,omitempty"`
	RevokedCount     int                 `json:"revokedCount,omitempty"`
	TotalPermissions int64               `json:"totalPermissions"`
	Permissions      []models.Permission `json:"permissions"`
}

// permissionIDsFromBody parses and dedupes the permissionIds payload.
// Zero ids and empty arrays are rejected before any query runs.
func permissionIDsFromBody(c *fiber.Ctx) ([]uint, error) {
	type assignmentInput struct {
		PermissionIDs []uint `json:"permissionIds"`
	}

	input := new(assignmentInput)
	if err := c.BodyParser(input); err != nil {
		return nil, utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if len(input.PermissionIDs) == 0 {
		return nil, utils.Error(c, fiber.StatusBadRequest, "permissionIds must be a non-empty array")
	}

	seen := make(map[uint]bool, len(input.PermissionIDs))
	ids := make([]uint, 0, len(input.PermissionIDs))
	for _, id := range input.PermissionIDs {
		if id == 0 {
			return nil, utils.Error(c, fiber.StatusBadRequest, "permissionIds must contain positive integers")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// rolePermissionList loads a role's permissions ordered by name for stable
// display, along with the total count.
func rolePermissionList(roleID uint) ([]models.Permission, int64, error) {
	var permissions []models.Permission
	err := db.DB.Model(&models.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.name ASC").
		Find(&permissions).Error
	if err != nil {
		return nil, 0, err
	}
	return permissions, int64(len(permissions)), nil
}

// AssignPermissionsToRole bulk-assigns permissions to a role. Only the delta
// against the role's current assignments is written, which keeps a retried
// call safe: entries a timed-out first attempt already persisted are simply
// not in the second attempt's delta.
func AssignPermissionsToRole(c *fiber.Ctx) error {
	roleID, err := strconv.Atoi(c.Params("roleId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Role id must be an integer")
	}

	ids, parseErr := permissionIDsFromBody(c)
	if ids == nil {
		return parseErr
	}

	var role models.Role
	if db.DB.First(&role, roleID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}

	// Every requested id must resolve; report the unresolved ones explicitly
	var found []models.Permission
	if err := db.DB.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to resolve permissions")
	}
	if len(found) != len(ids) {
		foundSet := make(map[uint]bool, len(found))
		for _, p := range found {
			foundSet[p.ID] = true
		}
		notFound := []uint{}
		for _, id := range ids {
			if !foundSet[id] {
				notFound = append(notFound, id)
			}
		}
		return utils.ErrorWithDetails(c, fiber.StatusNotFound, "Some permissions do not exist",
			fiber.Map{"notFoundIds": notFound})
	}

	// Delta: drop ids the role already holds
	var existingIDs []uint
	if err := db.DB.Model(&models.RolePermission{}).
		Where("role_id = ? AND permission_id IN ?", role.ID, ids).
		Pluck("permission_id", &existingIDs).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check current assignments")
	}

	existingSet := make(map[uint]bool, len(existingIDs))
	for _, id := range existingIDs {
		existingSet[id] = true
	}
	toInsert := make([]models.RolePermission, 0, len(ids))
	for _, id := range ids {
		if !existingSet[id] {
			toInsert = append(toInsert, models.RolePermission{RoleID: role.ID, PermissionID: id})
		}
	}

	// Resubmitting an already-applied assignment is a caller mistake worth
	// surfacing, not a silent success
	if len(toInsert) == 0 {
		return utils.Error(c, fiber.StatusConflict, "All requested permissions are already assigned to this role")
	}

	// ON CONFLICT DO NOTHING backstops a race between the check above and
	// this insert
	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&toInsert).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to assign permissions")
	}

	permissions, total, err := rolePermissionList(role.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load role permissions")
	}

	return utils.Success(c, fiber.StatusOK, "Permissions assigned successfully", rolePermissionResult{
		Role:             role,
		AssignedCount:    len(toInsert),
		TotalPermissions: total,
		Permissions:      permissions,
	})
}

// RevokePermissionsFromRole bulk-revokes permissions from a role. Ids that
// were never assigned are ignored; if nothing matches at all, that is a
// NotFound rather than an empty success.
func RevokePermissionsFromRole(c *fiber.Ctx) error {
	roleID, err := strconv.Atoi(c.Params("roleId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Role id must be an integer")
	}

	ids, parseErr := permissionIDsFromBody(c)
	if ids == nil {
		return parseErr
	}

	var role models.Role
	if db.DB.First(&role, roleID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}

	var matched []uint
	if err := db.DB.Model(&models.RolePermission{}).
		Where("role_id = ? AND permission_id IN ?", role.ID, ids).
		Pluck("permission_id", &matched).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to check current assignments")
	}

	if len(matched) == 0 {
		return utils.Error(c, fiber.StatusNotFound, "No matching assignments to revoke")
	}

	if err := db.DB.Where("role_id = ? AND permission_id IN ?", role.ID, matched).
		Delete(&models.RolePermission{}).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to revoke permissions")
	}

	permissions, total, err := rolePermissionList(role.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load role permissions")
	}

	return utils.Success(c, fiber.StatusOK, "Permissions revoked successfully", rolePermissionResult{
		Role:             role,
		RevokedCount:     len(matched),
		TotalPermissions: total,
		Permissions:      permissions,
	})
}

// GetRolePermissions returns the role and its current permission set
func GetRolePermissions(c *fiber.Ctx) error {
	roleID, err := strconv.Atoi(c.Params("roleId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Role id must be an integer")
	}

	var role models.Role
	if db.DB.First(&role, roleID).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Role not found")
	}

	permissions, total, err := rolePermissionList(role.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load role permissions")
	}

	return utils.Success(c, fiber.StatusOK, "Role permissions fetched successfully", rolePermissionResult{
		Role:             role,
		TotalPermissions: total,
		Permissions:      permissions,
	})
}
