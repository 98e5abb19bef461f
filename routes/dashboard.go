package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/controllers"
	"github.com/ckoohin/tourify/middleware"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard", middleware.Protected())
	dashboard.Get("/overview", middleware.RequirePermission("departures-read"), controllers.GetDashboardOverview)
}
