package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ckoohin/tourify/controllers"
	"github.com/ckoohin/tourify/middleware"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Get("/profile", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
