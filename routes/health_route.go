package routes

import (
	"github.com/gofiber/fiber/v2"

	healthController "vegholic-api/controllers/health"
)

func HealthRoutes(app *fiber.App, ctl *healthController.Controller) {
	app.Get("/", ctl.Root)
	app.Get("/api/health", ctl.Health)
	app.Get("/api/health/db", ctl.Database)
	app.Get("/schema", ctl.Schema)
}
