package routes

import (
	"github.com/gofiber/fiber/v2"

	productController "vegholic-api/controllers/products"
)

// ProductsRoute is public: browsing needs no login.
func ProductsRoute(app *fiber.App, ctl *productController.Controller) {
	app.Get("/api/products", ctl.GetAllProducts)
	app.Get("/api/products/:id", ctl.FetchProductDetails)
}
