package routes

import (
	"github.com/gofiber/fiber/v2"

	accountController "vegholic-api/controllers/accounts"
)

func AccountRoute(app *fiber.App, ctl *accountController.Controller, guard ...fiber.Handler) {
	app.Get("/api/profile", with(guard, ctl.GetUserProfile)...)
	app.Patch("/api/profile", with(guard, ctl.UpdateUserProfile)...)
}
