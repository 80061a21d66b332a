package healthController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"vegholic-api/controllers/requests"
	"vegholic-api/responses"
	"vegholic-api/store"
)

type collectionLister interface {
	CollectionNames(ctx context.Context) ([]string, error)
}

type Controller struct {
	store   store.Store
	logger  *zap.Logger
	timeout time.Duration
}

func New(s store.Store, logger *zap.Logger, timeout time.Duration) *Controller {
	return &Controller{store: s, logger: logger, timeout: timeout}
}

func (ctl *Controller) Root(c *fiber.Ctx) error {
	return responses.OK(c, "VegHolic API running", fiber.Map{})
}

func (ctl *Controller) Health(c *fiber.Ctx) error {
	return responses.OK(c, "ok", fiber.Map{"status": "ok"})
}

// Database pings the record store.
func (ctl *Controller) Database(c *fiber.Ctx) error {
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()

	if err := ctl.store.Ping(ctx); err != nil {
		ctl.logger.Warn("store ping failed", zap.Error(err))
		return responses.Error(c, err)
	}
	return responses.OK(c, "ok", fiber.Map{"database": "connected"})
}

func (ctl *Controller) Schema(c *fiber.Ctx) error {
	result := fiber.Map{"collections": store.Collections}

	lister, ok := ctl.store.(collectionLister)
	if !ok {
		return responses.OK(c, "Schema", result)
	}
	ctx, cancel := requests.Context(c, ctl.timeout)
	defer cancel()
	present, err := lister.CollectionNames(ctx)
	if err != nil {
		return responses.Error(c, err)
	}
	result["present"] = present
	return responses.OK(c, "Schema", result)
}
