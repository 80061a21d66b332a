package routes

import (
	"github.com/gofiber/fiber/v2"

	userController "vegholic-api/controllers/user"
)

func UserRoute(app *fiber.App, ctl *userController.Controller) {
	app.Post("/api/auth/request-otp", ctl.RequestOTP)
	app.Post("/api/auth/verify-otp", ctl.VerifyOTP)
}
