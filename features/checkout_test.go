package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"vegholic-api/apperror"
	"vegholic-api/locks"
	"vegholic-api/models"
	"vegholic-api/services/auth"
	"vegholic-api/services/cart"
	"vegholic-api/services/catalog"
	"vegholic-api/services/orders"
	"vegholic-api/store"
)

type checkoutContext struct {
	store   *store.MemoryStore
	catalog *catalog.Catalog
	cart    *cart.Manager
	orders  *orders.Engine
	auth    *auth.Service

	userID  string
	orderID string
	err     error
}

func (c *checkoutContext) reset() {
	logger := zap.NewNop()
	locker := locks.NewLocalLocker()
	c.store = store.NewMemoryStore()
	c.catalog = catalog.New(c.store, nil, logger)
	c.cart = cart.NewManager(c.store, locker, logger)
	c.orders = orders.NewEngine(c.store, c.cart, locker, logger)
	c.auth = auth.NewService(c.store, "1234", auth.PhoneTokenIssuer{}, locker, logger)
	c.userID = ""
	c.orderID = ""
	c.err = nil
}

func (c *checkoutContext) theCatalogIsSeeded(ctx context.Context) error {
	_, err := c.catalog.EnsureSeed(ctx)
	return err
}

func (c *checkoutContext) aShopperLoggedInWithPhone(ctx context.Context, phone string) error {
	session, err := c.auth.VerifyOTP(ctx, phone, "1234", "")
	if err != nil {
		return err
	}
	c.userID = session.UserID
	return nil
}

func (c *checkoutContext) productID(ctx context.Context, name string) (string, error) {
	products, err := c.catalog.List(ctx, "")
	if err != nil {
		return "", err
	}
	for _, p := range products {
		if p.Name == name {
			return p.ID.Hex(), nil
		}
	}
	return "", fmt.Errorf("no product named %q", name)
}

func (c *checkoutContext) theShopperAdds(ctx context.Context, qty int, name, variant string) error {
	productID, err := c.productID(ctx, name)
	if err != nil {
		return err
	}
	_, err = c.cart.AddItem(ctx, c.userID, productID, variant, qty)
	return err
}

func (c *checkoutContext) line(ctx context.Context, name string) (models.CartItem, error) {
	items, err := c.cart.List(ctx, c.userID)
	if err != nil {
		return models.CartItem{}, err
	}
	for _, item := range items {
		if item.ProductName == name {
			return item, nil
		}
	}
	return models.CartItem{}, fmt.Errorf("no cart line for %q", name)
}

func (c *checkoutContext) theCartLineIsPricedAt(ctx context.Context, name string, price float64) error {
	item, err := c.line(ctx, name)
	if err != nil {
		return err
	}
	if item.Price != price {
		return fmt.Errorf("expected price %v, got %v", price, item.Price)
	}
	return nil
}

func (c *checkoutContext) theCartLineHasQuantity(ctx context.Context, name string, qty int) error {
	item, err := c.line(ctx, name)
	if err != nil {
		return err
	}
	if item.Qty != qty {
		return fmt.Errorf("expected qty %d, got %d", qty, item.Qty)
	}
	return nil
}

func (c *checkoutContext) theCartHasLines(ctx context.Context, n int) error {
	items, err := c.cart.List(ctx, c.userID)
	if err != nil {
		return err
	}
	if len(items) != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, len(items))
	}
	return nil
}

func (c *checkoutContext) theCartIsEmpty(ctx context.Context) error {
	return c.theCartHasLines(ctx, 0)
}

func (c *checkoutContext) theShopperPlacesAnOrderPaying(ctx context.Context, method string) error {
	c.orderID, c.err = c.orders.Create(ctx, c.userID, primitive.NewObjectID().Hex(), method)
	return nil
}

func (c *checkoutContext) theOrderIsAdvancedTimes(ctx context.Context, n int) error {
	if c.err != nil {
		return c.err
	}
	for i := 0; i < n; i++ {
		if _, err := c.orders.Advance(ctx, c.orderID); err != nil {
			return err
		}
	}
	return nil
}

func (c *checkoutContext) theOrderIsAdvanced(ctx context.Context) error {
	return c.theOrderIsAdvancedTimes(ctx, 1)
}

func (c *checkoutContext) theOrderTotalIs(ctx context.Context, total float64) error {
	if c.err != nil {
		return c.err
	}
	order, err := c.orders.Get(ctx, c.orderID)
	if err != nil {
		return err
	}
	if order.TotalAmount != total {
		return fmt.Errorf("expected total %v, got %v", total, order.TotalAmount)
	}
	return nil
}

func (c *checkoutContext) theOrderStatusIs(ctx context.Context, status string) error {
	order, err := c.orders.Get(ctx, c.orderID)
	if err != nil {
		return err
	}
	if string(order.Status) != status {
		return fmt.Errorf("expected status %q, got %q", status, order.Status)
	}
	return nil
}

func (c *checkoutContext) trackingShowsStepWithETA(ctx context.Context, step int, eta string) error {
	tracking, err := c.orders.Track(ctx, c.orderID)
	if err != nil {
		return err
	}
	if tracking.ActiveIndex != step {
		return fmt.Errorf("expected active index %d, got %d", step, tracking.ActiveIndex)
	}
	if tracking.ETA != eta {
		return fmt.Errorf("expected eta %q, got %q", eta, tracking.ETA)
	}
	return nil
}

func (c *checkoutContext) theRequestFailsWith(kind string) error {
	if c.err == nil {
		return errors.New("expected an error, got none")
	}
	if got := apperror.KindOf(c.err).String(); got != kind {
		return fmt.Errorf("expected %s, got %s", kind, got)
	}
	return nil
}

func (c *checkoutContext) theErrorMessageContains(text string) error {
	if c.err == nil {
		return errors.New("expected an error, got none")
	}
	if !strings.Contains(c.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got %q", text, c.err.Error())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog is seeded$`, tc.theCatalogIsSeeded)
	ctx.Step(`^a shopper logged in with phone "([^"]*)"$`, tc.aShopperLoggedInWithPhone)

	// When steps
	ctx.Step(`^the shopper adds (\d+) of "([^"]*)" in the "([^"]*)" variant$`, tc.theShopperAdds)
	ctx.Step(`^the shopper places an order paying "([^"]*)"$`, tc.theShopperPlacesAnOrderPaying)
	ctx.Step(`^the order is advanced$`, tc.theOrderIsAdvanced)
	ctx.Step(`^the order is advanced (\d+) times$`, tc.theOrderIsAdvancedTimes)

	// Then steps
	ctx.Step(`^the cart line for "([^"]*)" is priced at (\d+(?:\.\d+)?)$`, tc.theCartLineIsPricedAt)
	ctx.Step(`^the cart line for "([^"]*)" has quantity (\d+)$`, tc.theCartLineHasQuantity)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the order total is (\d+(?:\.\d+)?)$`, tc.theOrderTotalIs)
	ctx.Step(`^the order status is "([^"]*)"$`, tc.theOrderStatusIs)
	ctx.Step(`^tracking shows step (\d+) with eta "([^"]*)"$`, tc.trackingShowsStepWithETA)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.theRequestFailsWith)
	ctx.Step(`^the error message contains "([^"]*)"$`, tc.theErrorMessageContains)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
