package routes

import (
	"github.com/gofiber/fiber/v2"

	cartController "vegholic-api/controllers/cart"
)

func CartRoutes(app *fiber.App, ctl *cartController.Controller, guard ...fiber.Handler) {
	app.Get("/api/cart", with(guard, ctl.GetCart)...)

	app.Post("/api/cart/add", with(guard, ctl.AddToCart)...)

	app.Post("/api/cart/:id/qty", with(guard, ctl.UpdateQty)...)

	app.Delete("/api/cart/:id", with(guard, ctl.RemoveFromCart)...)
}
