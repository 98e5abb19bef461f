package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/controllers"
	"github.com/ckoohin/tourify/middleware"
)

func SetupTransportRoutes(app *fiber.App) {
	transport := app.Group("/transport", middleware.Protected())
	transport.Get("/vehicles", middleware.RequirePermission("transport-read"), controllers.GetVehicles)
	transport.Post("/vehicles", middleware.RequirePermission("transport-create"), controllers.CreateVehicle)
	transport.Put("/vehicles/:id", middleware.RequirePermission("transport-update"), controllers.UpdateVehicle)
	transport.Delete("/vehicles/:id", middleware.RequirePermission("transport-delete"), controllers.DeleteVehicle)

	departures := app.Group("/departures", middleware.Protected())
	departures.Get("/:id/seats", middleware.RequirePermission("transport-read"), controllers.GetSeatPlan)
	departures.Post("/:id/seats", middleware.RequirePermission("transport-assign-seats"), controllers.AssignSeats)
	departures.Delete("/:id/seats", middleware.RequirePermission("transport-assign-seats"), controllers.ReleaseSeats)
}
