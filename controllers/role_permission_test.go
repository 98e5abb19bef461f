package controllers

import (
	"net/http"
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/models"
)

type assignmentResponse struct {
	Role             models.Role         `json:"role"`
	AssignedCount    int                 `json:"assignedCount"`
	RevokedCount     int                 `json:"revokedCount"`
	TotalPermissions int64               `json:"totalPermissions"`
	Permissions      []models.Permission `json:"permissions"`
}

func TestAssignPermissionsToRole(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)
		p1 := models.Permission{Name: "tours.edit", Slug: "tours-edit"}
		p2 := models.Permission{Name: "tours.read", Slug: "tours-read"}
		tx.Create(&p1)
		tx.Create(&p2)

		resp, env := doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{p1.ID, p2.ID}})

		assert.Equal(t, resp.StatusCode, http.StatusOK)
		var result assignmentResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.AssignedCount, 2)
		assert.Equal(t, result.TotalPermissions, int64(2))
		assert.Equal(t, len(result.Permissions), 2)
		// Ordered by permission name ascending
		assert.Equal(t, result.Permissions[0].Name, "tours.edit")
		assert.Equal(t, result.Permissions[1].Name, "tours.read")
	})

	t.Run("Overlapping assign writes only the delta", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)
		p1 := models.Permission{Name: "a.one", Slug: "a-one"}
		p2 := models.Permission{Name: "b.two", Slug: "b-two"}
		p3 := models.Permission{Name: "c.three", Slug: "c-three"}
		tx.Create(&p1)
		tx.Create(&p2)
		tx.Create(&p3)

		_, _ = doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{p1.ID, p2.ID}})

		// p1 is already assigned, p3 is new: the call succeeds and only p3 is written
		resp, env := doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{p1.ID, p3.ID}})

		assert.Equal(t, resp.StatusCode, http.StatusOK)
		var result assignmentResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.AssignedCount, 1)
		assert.Equal(t, result.TotalPermissions, int64(3))

		var rows int64
		tx.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&rows)
		assert.Equal(t, rows, int64(3))
	})

	t.Run("All already assigned is a conflict", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)
		p1 := models.Permission{Name: "tours.edit", Slug: "tours-edit"}
		tx.Create(&p1)

		resp, env := doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{p1.ID}})
		assert.Equal(t, resp.StatusCode, http.StatusOK)
		var result assignmentResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.AssignedCount, 1)

		resp, env = doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{p1.ID}})
		assert.Equal(t, resp.StatusCode, http.StatusConflict)
		assert.Equal(t, env.Success, false)
	})

	t.Run("Unknown permission ids are enumerated", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)
		p1 := models.Permission{Name: "tours.edit", Slug: "tours-edit"}
		tx.Create(&p1)

		resp, env := doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{p1.ID, 9998, 9999}})

		assert.Equal(t, resp.StatusCode, http.StatusNotFound)
		var details struct {
			NotFoundIds []uint `json:"notFoundIds"`
		}
		if err := jsonUnmarshal(env.Errors, &details); err != nil {
			t.Fatal("Failed to decode error details: ", err)
		}
		assert.Equal(t, details.NotFoundIds, []uint{9998, 9999})

		// Nothing was written
		var rows int64
		tx.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&rows)
		assert.Equal(t, rows, int64(0))
	})

	t.Run("Role not found", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		resp, _ := doRequest(t, "POST", "/roles/9999/permissions",
			map[string]interface{}{"permissionIds": []uint{1}})
		assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	})

	t.Run("Empty id array is a validation error", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)

		resp, _ := doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{}})
		assert.Equal(t, resp.StatusCode, http.StatusBadRequest)
	})

	t.Run("Duplicate ids in the request are treated as a set", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)
		p1 := models.Permission{Name: "tours.edit", Slug: "tours-edit"}
		tx.Create(&p1)

		resp, env := doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{p1.ID, p1.ID, p1.ID}})

		assert.Equal(t, resp.StatusCode, http.StatusOK)
		var result assignmentResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.AssignedCount, 1)
	})
}

func TestRevokePermissionsFromRole(t *testing.T) {
	t.Run("Revokes only the matched subset", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)
		p1 := models.Permission{Name: "tours.edit", Slug: "tours-edit"}
		pX := models.Permission{Name: "guests.read", Slug: "guests-read"}
		tx.Create(&p1)
		tx.Create(&pX)
		tx.Create(&models.RolePermission{RoleID: role.ID, PermissionID: p1.ID})

		// pX exists but was never assigned: success, revoking only p1
		resp, env := doRequest(t, "DELETE", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{p1.ID, pX.ID}})

		assert.Equal(t, resp.StatusCode, http.StatusOK)
		var result assignmentResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.RevokedCount, 1)
		assert.Equal(t, result.TotalPermissions, int64(0))
		assert.Equal(t, len(result.Permissions), 0)
	})

	t.Run("Nothing matched is not found", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)
		pX := models.Permission{Name: "guests.read", Slug: "guests-read"}
		tx.Create(&pX)

		resp, _ := doRequest(t, "DELETE", "/roles/"+itoa(role.ID)+"/permissions",
			map[string]interface{}{"permissionIds": []uint{pX.ID}})
		assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	})

	t.Run("Role not found", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		resp, _ := doRequest(t, "DELETE", "/roles/9999/permissions",
			map[string]interface{}{"permissionIds": []uint{1}})
		assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	})
}

func TestGetRolePermissions(t *testing.T) {
	t.Run("Ordered by name ascending", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		role := models.Role{Name: "Editor", Slug: "editor"}
		tx.Create(&role)
		pB := models.Permission{Name: "b.perm", Slug: "b-perm"}
		pA := models.Permission{Name: "a.perm", Slug: "a-perm"}
		tx.Create(&pB)
		tx.Create(&pA)
		tx.Create(&models.RolePermission{RoleID: role.ID, PermissionID: pB.ID})
		tx.Create(&models.RolePermission{RoleID: role.ID, PermissionID: pA.ID})

		resp, env := doRequest(t, "GET", "/roles/"+itoa(role.ID)+"/permissions", nil)
		assert.Equal(t, resp.StatusCode, http.StatusOK)

		var result assignmentResponse
		decodeData(t, env, &result)
		assert.Equal(t, result.TotalPermissions, int64(2))
		assert.Equal(t, result.Permissions[0].Name, "a.perm")
		assert.Equal(t, result.Permissions[1].Name, "b.perm")
	})

	t.Run("Role not found", func(t *testing.T) {
		tx := setupTestDB(t).Begin()
		defer tx.Rollback()
		db.DB = tx

		resp, _ := doRequest(t, "GET", "/roles/9999/permissions", nil)
		assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	})
}

// TestAssignmentLifecycle walks the documented end-to-end flow: create a
// permission and a role, assign, read back, revoke.
func TestAssignmentLifecycle(t *testing.T) {
	tx := setupTestDB(t).Begin()
	defer tx.Rollback()
	db.DB = tx

	_, env := doRequest(t, "POST", "/permissions", map[string]string{"name": "tours.edit"})
	var perm models.Permission
	decodeData(t, env, &perm)
	assert.Equal(t, perm.Slug, "tours-edit")

	_, env = doRequest(t, "POST", "/roles", map[string]string{"name": "Editor"})
	var role models.Role
	decodeData(t, env, &role)
	assert.Equal(t, role.Slug, "editor")

	resp, env := doRequest(t, "POST", "/roles/"+itoa(role.ID)+"/permissions",
		map[string]interface{}{"permissionIds": []uint{perm.ID}})
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	var result assignmentResponse
	decodeData(t, env, &result)
	assert.Equal(t, result.AssignedCount, 1)
	assert.Equal(t, result.TotalPermissions, int64(1))
	assert.Equal(t, result.Permissions[0].ID, perm.ID)

	_, env = doRequest(t, "GET", "/roles/"+itoa(role.ID)+"/permissions", nil)
	decodeData(t, env, &result)
	assert.Equal(t, result.TotalPermissions, int64(1))
	assert.Equal(t, result.Permissions[0].Name, "tours.edit")

	resp, env = doRequest(t, "DELETE", "/roles/"+itoa(role.ID)+"/permissions",
		map[string]interface{}{"permissionIds": []uint{perm.ID}})
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	decodeData(t, env, &result)
	assert.Equal(t, result.RevokedCount, 1)
	assert.Equal(t, result.TotalPermissions, int64(0))
	assert.Equal(t, len(result.Permissions), 0)
}
