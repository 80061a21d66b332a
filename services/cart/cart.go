package cart

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

// Manager owns the cartitem collection. There is at most one line per
// (user, product, variant) and every line has qty >= 1.
type Manager struct {
	store  store.Store
	locker locks.Locker
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(s store.Store, locker locks.Locker, logger *zap.Logger) *Manager {
	return &Manager{store: s, locker: locker, logger: logger, now: time.Now}
}

// AddItem puts qty units of the product variant in the user's cart,
// merging into an existing line. An add never lowers a line's quantity.
func (m *Manager) AddItem(ctx context.Context, userID, productID, variant string, qty int) (string, error) {
	if _, err := store.ParseID(userID); err != nil {
		return "", apperror.InvalidArgument("invalid user id format")
	}
	productOID, err := store.ParseID(productID)
	if err != nil {
		return "", apperror.InvalidArgument("invalid product id format")
	}
	if variant == "" {
		variant = pricing.DefaultVariant
	}

	var product models.Product
	if err := m.store.FindOne(ctx, store.ProductCollection, store.ByID(productOID), &product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperror.NotFound("product not found")
		}
		return "", err
	}
	price := pricing.UnitPrice(product.PricePerKg, variant)

	unlock, err := m.locker.Lock(ctx, locks.UserKey(userID))
	if err != nil {
		return "", err
	}
	defer unlock()

	now := m.now().UTC()
	var existing models.CartItem
	err = m.store.FindOne(ctx, store.CartItemCollection, bson.M{
		"user_id":    userID,
		"product_id": productID,
		"variant":    variant,
	}, &existing)
	switch {
	case err == nil:
		newQty := existing.Qty + max(qty, 0)
		if newQty < 1 {
			newQty = 1
		}
		if _, err := m.store.UpdateOne(ctx, store.CartItemCollection, store.ByID(existing.ID), bson.M{
			"qty":        newQty,
			"updated_at": now,
		}); err != nil {
			return "", err
		}
		m.logger.Debug("cart line merged",
			zap.String("userId", userID),
			zap.String("itemId", existing.ID.Hex()),
			zap.Int("qty", newQty))
		return existing.ID.Hex(), nil
	case errors.Is(err, store.ErrNotFound):
	default:
		return "", err
	}

	item := models.CartItem{
		UserID:      userID,
		ProductID:   productID,
		ProductName: product.Name,
		ImageURL:    product.ImageURL,
		Variant:     variant,
		Qty:         max(qty, 1),
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := m.store.Insert(ctx, store.CartItemCollection, item)
	if err != nil {
		return "", err
	}
	m.logger.Debug("cart line added",
		zap.String("userId", userID),
		zap.String("itemId", id),
		zap.String("variant", variant))
	return id, nil
}

// SetQuantity overwrites a line's quantity.
func (m *Manager) SetQuantity(ctx context.Context, itemID string, qty int) error {
	if qty < 1 {
		return apperror.InvalidArgument("qty must be at least 1")
	}
	oid, err := store.ParseID(itemID)
	if err != nil {
		return apperror.InvalidArgument("invalid cart item id format")
	}

	var item models.CartItem
	if err := m.store.FindOne(ctx, store.CartItemCollection, store.ByID(oid), &item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("cart item not found")
		}
		return err
	}
	if err := auth.CheckOwner(ctx, item.UserID, "cart item not found"); err != nil {
		return err
	}

	unlock, err := m.locker.Lock(ctx, locks.UserKey(item.UserID))
	if err != nil {
		return err
	}
	defer unlock()

	matched, err := m.store.UpdateOne(ctx, store.CartItemCollection, store.ByID(oid), bson.M{
		"qty":        qty,
		"updated_at": m.now().UTC(),
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperror.NotFound("cart item not found")
	}
	return nil
}

func (m *Manager) RemoveItem(ctx context.Context, itemID string) error {
	oid, err := store.ParseID(itemID)
	if err != nil {
		return apperror.InvalidArgument("invalid cart item id format")
	}

	var item models.CartItem
	if err := m.store.FindOne(ctx, store.CartItemCollection, store.ByID(oid), &item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("cart item not found")
		}
		return err
	}
	if err := auth.CheckOwner(ctx, item.UserID, "cart item not found"); err != nil {
		return err
	}

	unlock, err := m.locker.Lock(ctx, locks.UserKey(item.UserID))
	if err != nil {
		return err
	}
	defer unlock()

	deleted, err := m.store.DeleteOne(ctx, store.CartItemCollection, store.ByID(oid))
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.NotFound("cart item not found")
	}
	return nil
}

// List returns every line in the user's cart.
func (m *Manager) List(ctx context.Context, userID string) ([]models.CartItem, error) {
	if _, err := store.ParseID(userID); err != nil {
		return nil, apperror.InvalidArgument("invalid user id format")
	}
	items := []models.CartItem{}
	if err := m.store.FindMany(ctx, store.CartItemCollection, bson.M{"user_id": userID}, store.FindOptions{
		Sort: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear deletes every line in the user's cart. Callers that snapshot the
// cart first must hold the user lock across both steps.
func (m *Manager) Clear(ctx context.Context, userID string) (int64, error) {
	return m.store.DeleteMany(ctx, store.CartItemCollection, bson.M{"user_id": userID})
}
