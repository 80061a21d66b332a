package cartController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"vegholic-api/controllers/requests"
	"vegholic-api/responses"
	"vegholic-api/services/cart"
)

type AddToCartRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id" validate:"required"`
	Variant   string `json:"variant"`
	Qty       *int   `json:"qty"`
}

type UpdateQtyRequest struct {
	Qty *int `json:"qty" validate:"required"`
}

type Controller struct {
	cart    *cart.Manager
	timeout time.Duration
}

func New(manager *cart.Manager, timeout time.Duration) *Controller {
	return &Controller{cart: manager, timeout: timeout}
}

func (ctl *Controller) GetCart(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	userID, err := requests.UserID(c, c.Query("user_id"))
	if err != nil {
		return responses.Error(c, err)
	}
	items, err := ctl.cart.List(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Cart fetched", fiber.Map{"items": items})
}

func (ctl *Controller) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	var request AddToCartRequest
	if err := requests.Bind(c, &request); err != nil {
		return responses.Error(c, err)
	}
	userID, err := requests.UserID(c, request.UserID)
	if err != nil {
		return responses.Error(c, err)
	}
	qty := 1
	if request.Qty != nil {
		qty = *request.Qty
	}

	itemID, err := ctl.cart.AddItem(ctx, userID, request.ProductID, request.Variant, qty)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Successfully added to cart", fiber.Map{"item_id": itemID})
}

func (ctl *Controller) UpdateQty(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	var request UpdateQtyRequest
	if err := requests.Bind(c, &request); err != nil {
		return responses.Error(c, err)
	}
	if err := ctl.cart.SetQuantity(ctx, c.Params("id"), *request.Qty); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Quantity updated", fiber.Map{"item_id": c.Params("id"), "qty": *request.Qty})
}

func (ctl *Controller) RemoveFromCart(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	if err := ctl.cart.RemoveItem(ctx, c.Params("id")); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Item removed from cart", fiber.Map{"item_id": c.Params("id")})
}
