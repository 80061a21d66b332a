package catalog

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"vegholic-api/apperror"
	"vegholic-api/cache"
	"vegholic-api/models"
	"vegholic-api/store"
)

// Catalog serves the read-only product collection.
type Catalog struct {
	store  store.Store
	cache  cache.ProductCache
	logger *zap.Logger
	now    func() time.Time
}

func New(s store.Store, productCache cache.ProductCache, logger *zap.Logger) *Catalog {
	if productCache == nil {
		productCache = cache.NoopCache{}
	}
	return &Catalog{store: s, cache: productCache, logger: logger, now: time.Now}
}

// EnsureSeed inserts SeedProducts when the product collection is empty
// and reports how many were inserted.
func (c *Catalog) EnsureSeed(ctx context.Context) (int, error) {
	n, err := c.store.Count(ctx, store.ProductCollection, bson.M{})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	now := c.now().UTC()
	for i, p := range SeedProducts {
		if p.PricePerKg < 0 {
			return i, apperror.InvalidArgumentf("negative price for %s", p.Name)
		}
		p.Variants = append([]string(nil), models.DefaultVariants...)
		p.CreatedAt = now
		p.UpdatedAt = now
		if _, err := c.store.Insert(ctx, store.ProductCollection, p); err != nil {
			return i, err
		}
	}
	c.cache.Invalidate(ctx)
	c.logger.Info("product catalog seeded", zap.Int("products", len(SeedProducts)))
	return len(SeedProducts), nil
}

// List returns the products in category, or every product when category
// is empty.
func (c *Catalog) List(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" {
		if !models.IsCategory(category) {
			return nil, apperror.InvalidArgumentf("unknown category %q", category)
		}
		filter["category"] = category
	}

	if products, ok := c.cache.Get(ctx, category); ok {
		return products, nil
	}

	products := []models.Product{}
	if err := c.store.FindMany(ctx, store.ProductCollection, filter, store.FindOptions{
		Sort: bson.D{{Key: "_id", Value: 1}},
	}, &products); err != nil {
		return nil, err
	}
	c.cache.Set(ctx, category, products)
	return products, nil
}

func (c *Catalog) Get(ctx context.Context, productID string) (models.Product, error) {
	oid, err := store.ParseID(productID)
	if err != nil {
		return models.Product{}, apperror.InvalidArgument("invalid product id format")
	}
	var product models.Product
	if err := c.store.FindOne(ctx, store.ProductCollection, store.ByID(oid), &product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Product{}, apperror.NotFound("product not found")
		}
		return models.Product{}, err
	}
	return product, nil
}
