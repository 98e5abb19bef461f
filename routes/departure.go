package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/controllers"
	"github.com/ckoohin/tourify/middleware"
)

func SetupDepartureRoutes(app *fiber.App) {
	departures := app.Group("/departures", middleware.Protected())
	departures.Get("/", middleware.RequirePermission("departures-read"), controllers.GetDepartures)
	departures.Get("/:id", middleware.RequirePermission("departures-read"), controllers.GetDeparture)
	departures.Post("/", middleware.RequirePermission("departures-create"), controllers.CreateDeparture)
	departures.Put("/:id", middleware.RequirePermission("departures-update"), controllers.UpdateDeparture)
	departures.Delete("/:id", middleware.RequirePermission("departures-delete"), controllers.DeleteDeparture)

	departures.Get("/:id/guests", middleware.RequirePermission("guests-read"), controllers.GetDepartureGuests)
	departures.Post("/:id/guests", middleware.RequirePermission("guests-create"), controllers.AddGuest)

	guests := app.Group("/guests", middleware.Protected())
	guests.Put("/:guestId", middleware.RequirePermission("guests-update"), controllers.UpdateGuest)
	guests.Delete("/:guestId", middleware.RequirePermission("guests-delete"), controllers.RemoveGuest)

	departures.Get("/:id/staff", middleware.RequirePermission("staff-read"), controllers.GetDepartureStaff)
	departures.Post("/:id/staff", middleware.RequirePermission("staff-assign"), controllers.AssignStaff)
	departures.Delete("/:id/staff/:userId", middleware.RequirePermission("staff-assign"), controllers.UnassignStaff)
}
