package routes

import (
	"github.com/gofiber/fiber/v2"

	addressController "vegholic-api/controllers/addresses"
)

func AddressRoutes(app *fiber.App, ctl *addressController.Controller, guard ...fiber.Handler) {
	app.Get("/api/addresses", with(guard, ctl.GetAddresses)...)
	app.Post("/api/addresses", with(guard, ctl.AddAddress)...)
	app.Patch("/api/addresses/:id", with(guard, ctl.EditAddress)...)
	app.Delete("/api/addresses/:id", with(guard, ctl.DeleteAddress)...)
}
