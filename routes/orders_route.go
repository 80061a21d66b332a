package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "vegholic-api/controllers/orders"
)

func OrderRoutes(app *fiber.App, ctl *orderController.Controller, guard ...fiber.Handler) {
	app.Post("/api/orders/create", with(guard, ctl.CreateOrder)...)
	app.Get("/api/orders", with(guard, ctl.GetOrders)...)
	app.Get("/api/orders/:id", with(guard, ctl.GetOrder)...)
	app.Get("/api/orders/:id/track", with(guard, ctl.TrackOrder)...)
	// Demo hook standing in for the delivery partner's status updates.
	app.Post("/api/orders/:id/advance", with(guard, ctl.AdvanceOrder)...)
}
