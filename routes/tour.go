package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/controllers"
	"github.com/ckoohin/tourify/middleware"
)

func SetupTourRoutes(app *fiber.App) {
	tours := app.Group("/tours", middleware.Protected())
	tours.Get("/", middleware.RequirePermission("tours-read"), controllers.GetTours)
	tours.Get("/:id", middleware.RequirePermission("tours-read"), controllers.GetTour)
	tours.Post("/", middleware.RequirePermission("tours-create"), controllers.CreateTour)
	tours.Put("/:id", middleware.RequirePermission("tours-update"), controllers.UpdateTour)
	tours.Delete("/:id", middleware.RequirePermission("tours-delete"), controllers.DeleteTour)
	tours.Post("/:id/cover", middleware.RequirePermission("tours-update"), controllers.UploadTourCover)

	tours.Get("/:id/versions", middleware.RequirePermission("versions-read"), controllers.GetTourVersions)
	tours.Post("/:id/versions", middleware.RequirePermission("versions-create"), controllers.CreateTourVersion)

	versions := app.Group("/versions", middleware.Protected())
	versions.Put("/:id", middleware.RequirePermission("versions-update"), controllers.UpdateTourVersion)
	versions.Delete("/:id", middleware.RequirePermission("versions-delete"), controllers.DeleteTourVersion)

	versions.Get("/:id/itinerary", middleware.RequirePermission("itineraries-read"), controllers.GetItinerary)
	versions.Post("/:id/itinerary", middleware.RequirePermission("itineraries-create"), controllers.CreateItineraryItem)

	itinerary := app.Group("/itinerary", middleware.Protected())
	itinerary.Put("/:id", middleware.RequirePermission("itineraries-update"), controllers.UpdateItineraryItem)
	itinerary.Delete("/:id", middleware.RequirePermission("itineraries-delete"), controllers.DeleteItineraryItem)
}
