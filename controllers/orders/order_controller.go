package orderController

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"vegholic-api/controllers/requests"
	"vegholic-api/responses"
	"vegholic-api/services/orders"
)

type CreateOrderRequest struct {
	UserID        string `json:"user_id"`
	AddressID     string `json:"address_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type Controller struct {
	orders  *orders.Engine
	logger  *zap.Logger
	timeout time.Duration
}

func New(engine *orders.Engine, logger *zap.Logger, timeout time.Duration) *Controller {
	return &Controller{orders: engine, logger: logger, timeout: timeout}
}

func (ctl *Controller) CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	var request CreateOrderRequest
	if err := requests.Bind(c, &request); err != nil {
		return responses.Error(c, err)
	}
	userID, err := requests.UserID(c, request.UserID)
	if err != nil {
		return responses.Error(c, err)
	}

	orderID, err := ctl.orders.Create(ctx, userID, request.AddressID, request.PaymentMethod)
	if err != nil {
		if orderID != "" {
			// The order exists but the cart still holds its lines.
			return responses.ErrorWithResult(c, err, fiber.Map{"order_id": orderID})
		}
		return responses.Error(c, err)
	}
	return responses.Created(c, "Order placed", fiber.Map{"order_id": orderID})
}

func (ctl *Controller) GetOrders(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	userID, err := requests.UserID(c, c.Query("user_id"))
	if err != nil {
		return responses.Error(c, err)
	}
	list, err := ctl.orders.List(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Orders fetched", fiber.Map{"orders": list})
}

func (ctl *Controller) GetOrder(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	order, err := ctl.orders.Get(ctx, c.Params("id"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Order fetched", fiber.Map{"order": order})
}

func (ctl *Controller) TrackOrder(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	tracking, err := ctl.orders.Track(ctx, c.Params("id"))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Order tracking", fiber.Map{
		"status":       tracking.Status,
		"steps":        tracking.Steps,
		"active_index": tracking.ActiveIndex,
		"eta":          tracking.ETA,
		"location":     tracking.Location,
	})
}

func (ctl *Controller) AdvanceOrder(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	status, err := ctl.orders.Advance(ctx, c.Params("id"))
	if err != nil {
		return responses.Error(c, err)
	}
	ctl.logger.Debug("advance requested", zap.String("orderId", c.Params("id")), zap.String("status", status.String()))
	return responses.OK(c, "Order advanced", fiber.Map{"status": status})
}
