package productController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"vegholic-api/controllers/requests"
	"vegholic-api/responses"
	"vegholic-api/services/catalog"
)

type Controller struct {
	catalog *catalog.Catalog
	timeout time.Duration
}

func New(c *catalog.Catalog, timeout time.Duration) *Controller {
	return &Controller{catalog: c, timeout: timeout}
}

func (ctl *Controller) GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	products, err := ctl.catalog.List(ctx, c.Query("category"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Products fetched", fiber.Map{"products": products})
}
