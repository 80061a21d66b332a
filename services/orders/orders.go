package orders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"vegholic-api/apperror"
	"vegholic-api/locks"
	"vegholic-api/models"
	"vegholic-api/services/auth"
	"vegholic-api/services/pricing"
	"vegholic-api/store"
)

// DefaultETA is the delivery estimate quoted for every order.
const DefaultETA = "30-45 mins"

// DepotLocation is the mock rider position reported by Track.
var DepotLocation = models.Location{Lat: 12.9716, Lng: 77.5946}

// CartSource is the part of the cart manager the engine needs. Both
// calls run while the engine holds the user lock.
type CartSource interface {
	List(ctx context.Context, userID string) ([]models.CartItem, error)
	Clear(ctx context.Context, userID string) (int64, error)
}

// Engine turns carts into orders and walks orders through the delivery
// pipeline.
type Engine struct {
	store  store.Store
	cart   CartSource
	locker locks.Locker
	logger *zap.Logger
	now    func() time.Time
}

func NewEngine(s store.Store, cart CartSource, locker locks.Locker, logger *zap.Logger) *Engine {
	return &Engine{store: s, cart: cart, locker: locker, logger: logger, now: time.Now}
}

// Create snapshots the user's cart into a new order and clears the cart.
// If the cart cannot be cleared the order is kept and the error returned.
func (e *Engine) Create(ctx context.Context, userID, addressID, paymentMethod string) (string, error) {
	if _, err := store.ParseID(userID); err != nil {
		return "", apperror.InvalidArgument("invalid user id format")
	}
	if _, err := store.ParseID(addressID); err != nil {
		return "", apperror.InvalidArgument("invalid address id format")
	}
	if paymentMethod == "" {
		return "", apperror.InvalidArgument("payment_method is required")
	}

	unlock, err := e.locker.Lock(ctx, locks.UserKey(userID))
	if err != nil {
		return "", err
	}
	defer unlock()

	lines, err := e.cart.List(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", apperror.InvalidArgument("cart is empty")
	}

	items := make([]models.CartItem, len(lines))
	copy(items, lines)

	now := e.now().UTC()
	order := models.Order{
		UserID:        userID,
		Items:         items,
		AddressID:     addressID,
		PaymentMethod: paymentMethod,
		TotalAmount:   pricing.OrderTotal(items),
		Status:        models.OrderStatusPlaced,
		ETA:           DefaultETA,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	orderID, err := e.store.Insert(ctx, store.OrderCollection, order)
	if err != nil {
		return "", err
	}

	if _, err := e.cart.Clear(ctx, userID); err != nil {
		e.logger.Error("order placed but cart not cleared",
			zap.String("orderId", orderID),
			zap.String("userId", userID),
			zap.Error(err))
		return orderID, err
	}

	e.logger.Info("order placed",
		zap.String("orderId", orderID),
		zap.String("userId", userID),
		zap.Int("lines", len(items)),
		zap.Float64("total", order.TotalAmount))
	return orderID, nil
}

func (e *Engine) Get(ctx context.Context, orderID string) (models.Order, error) {
	oid, err := store.ParseID(orderID)
	if err != nil {
		return models.Order{}, apperror.InvalidArgument("invalid order id format")
	}
	var order models.Order
	if err := e.store.FindOne(ctx, store.OrderCollection, store.ByID(oid), &order); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Order{}, apperror.NotFound("order not found")
		}
		return models.Order{}, err
	}
	if err := auth.CheckOwner(ctx, order.UserID, "order not found"); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// List returns the user's orders, newest first.
func (e *Engine) List(ctx context.Context, userID string) ([]models.Order, error) {
	return e.ListRecent(ctx, userID, 0)
}

// ListRecent returns at most limit of the user's newest orders. A limit
// of zero means no limit.
func (e *Engine) ListRecent(ctx context.Context, userID string, limit int64) ([]models.Order, error) {
	if _, err := store.ParseID(userID); err != nil {
		return nil, apperror.InvalidArgument("invalid user id format")
	}
	orders := []models.Order{}
	if err := e.store.FindMany(ctx, store.OrderCollection, bson.M{"user_id": userID}, store.FindOptions{
		Sort:  bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		Limit: limit,
	}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Advance moves the order one step along the pipeline and returns the
// new status. Delivered orders stay delivered. The write only lands if the
// status is still the one read, so concurrent advances never move an order
// backwards or get lost.
func (e *Engine) Advance(ctx context.Context, orderID string) (models.OrderStatus, error) {
	for attempt := 0; attempt <= len(models.OrderStatuses); attempt++ {
		order, err := e.Get(ctx, orderID)
		if err != nil {
			return "", err
		}

		next := models.OrderStatuses[min(statusIndex(order.Status)+1, len(models.OrderStatuses)-1)]
		if next == order.Status {
			return next, nil
		}

		matched, err := e.store.UpdateOne(ctx, store.OrderCollection, bson.M{
			"_id":    order.ID,
			"status": string(order.Status),
		}, bson.M{
			"status":     next,
			"updated_at": e.now().UTC(),
		})
		if err != nil {
			return "", err
		}
		if matched == 0 {
			// Someone else moved it first; start again from what they wrote.
			continue
		}
		e.logger.Info("order advanced",
			zap.String("orderId", orderID),
			zap.String("from", order.Status.String()),
			zap.String("to", next.String()))
		return next, nil
	}
	return "", apperror.Unavailable("order status changed concurrently", errors.New("advance retries exhausted"))
}

func (e *Engine) Track(ctx context.Context, orderID string) (models.Tracking, error) {
	order, err := e.Get(ctx, orderID)
	if err != nil {
		return models.Tracking{}, err
	}
	steps := make([]models.OrderStatus, len(models.OrderStatuses))
	copy(steps, models.OrderStatuses)
	eta := order.ETA
	if eta == "" {
		eta = DefaultETA
	}
	return models.Tracking{
		Status:      order.Status,
		Steps:       steps,
		ActiveIndex: statusIndex(order.Status),
		ETA:         eta,
		Location:    DepotLocation,
	}, nil
}

// statusIndex is the position of s in the pipeline. Unknown statuses
// count as the first step.
func statusIndex(s models.OrderStatus) int {
	for i, known := range models.OrderStatuses {
		if s == known {
			return i
		}
	}
	return 0
}
