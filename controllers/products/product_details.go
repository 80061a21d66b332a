package productController

import (
	"github.com/gofiber/fiber/v2"

	"vegholic-api/controllers/requests"
	"vegholic-api/responses"
	"vegholic-api/services/pricing"
)

func (ctl *Controller) FetchProductDetails(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	product, err := ctl.catalog.Get(ctx, c.Params("id"))
	if err != nil {
		return responses.Error(c, err)
	}

	prices := fiber.Map{}
	for _, variant := range product.Variants {
		prices[variant] = pricing.UnitPrice(product.PricePerKg, variant)
	}
	return responses.OK(c, "Product fetched", fiber.Map{"product": product, "variant_prices": prices})
}
