package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/ckoohin/tourify/cron"
	"github.com/ckoohin/tourify/db"
	"github.com/ckoohin/tourify/redis"
	"github.com/ckoohin/tourify/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Tourify API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupTourRoutes(app)
	routes.SetupDepartureRoutes(app)
	routes.SetupTransportRoutes(app)
	routes.SetupDashboardRoutes(app)

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
