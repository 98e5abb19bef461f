package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/controllers"
	"github.com/ckoohin/tourify/middleware"
)

// SetupRBACRoutes configures the role and permission registries plus the
// role-permission assignment endpoints
func SetupRBACRoutes(app *fiber.App) {
	permissions := app.Group("/permissions", middleware.Protected())
	permissions.Get("/", middleware.RequirePermission("permissions-read"), controllers.GetPermissions)
	permissions.Get("/:id", middleware.RequirePermission("permissions-read"), controllers.GetPermission)
	permissions.Post("/", middleware.RequirePermission("permissions-create"), controllers.CreatePermission)
	permissions.Put("/:id", middleware.RequirePermission("permissions-update"), controllers.UpdatePermission)
	permissions.Delete("/:id", middleware.RequirePermission("permissions-delete"), controllers.DeletePermission)

	roles := app.Group("/roles", middleware.Protected())
	roles.Get("/", middleware.RequirePermission("roles-read"), controllers.GetRoles)
	roles.Get("/:id", middleware.RequirePermission("roles-read"), controllers.GetRole)
	roles.Post("/", middleware.RequirePermission("roles-create"), controllers.CreateRole)
	roles.Put("/:id", middleware.RequirePermission("roles-update"), controllers.UpdateRole)
	roles.Delete("/:id", middleware.RequirePermission("roles-delete"), controllers.DeleteRole)

	roles.Get("/:roleId/permissions", middleware.RequirePermission("roles-read"), controllers.GetRolePermissions)
	roles.Post("/:roleId/permissions", middleware.RequirePermission("roles-assign-permissions"), controllers.AssignPermissionsToRole)
	roles.Delete("/:roleId/permissions", middleware.RequirePermission("roles-assign-permissions"), controllers.RevokePermissionsFromRole)
}
