package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"vegholic-api/apperror"
	"vegholic-api/cache"
	"vegholic-api/models"
	"vegholic-api/store"
)

type mapCache struct {
	entries     map[string][]models.Product
	invalidated int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]models.Product{}}
}

func (m *mapCache) Get(_ context.Context, category string) ([]models.Product, bool) {
	p, ok := m.entries[cache.Key(category)]
	return p, ok
}

func (m *mapCache) Set(_ context.Context, category string, products []models.Product) {
	m.entries[cache.Key(category)] = products
}

func (m *mapCache) Invalidate(context.Context) {
	m.entries = map[string][]models.Product{}
	m.invalidated++
}

func TestEnsureSeed_OnlyOnce(t *testing.T) {
	s := store.NewMemoryStore()
	pc := newMapCache()
	c := New(s, pc, zaptest.NewLogger(t))
	ctx := context.Background()

	n, err := c.EnsureSeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, 1, pc.invalidated)

	n, err = c.EnsureSeed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	products, err := c.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.Equal(t, "Spinach", products[0].Name)
	assert.Equal(t, models.DefaultVariants, products[0].Variants)
}

func TestEnsureSeed_SkipsNonEmptyCollection(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.Insert(context.Background(), store.ProductCollection, models.Product{Name: "Okra", Category: models.CategoryFruits})
	require.NoError(t, err)

	n, err := New(s, nil, zaptest.NewLogger(t)).EnsureSeed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestList_FiltersByCategory(t *testing.T) {
	c := New(store.NewMemoryStore(), nil, zaptest.NewLogger(t))
	ctx := context.Background()
	_, err := c.EnsureSeed(ctx)
	require.NoError(t, err)

	roots, err := c.List(ctx, models.CategoryRoot)
	require.NoError(t, err)
	var names []string
	for _, p := range roots {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Carrot", "Potato", "Beetroot"}, names)

	_, err = c.List(ctx, "meat")
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestList_ReadsThroughCache(t *testing.T) {
	s := store.NewMemoryStore()
	pc := newMapCache()
	c := New(s, pc, zaptest.NewLogger(t))
	ctx := context.Background()
	_, err := c.EnsureSeed(ctx)
	require.NoError(t, err)

	first, err := c.List(ctx, models.CategoryLeafy)
	require.NoError(t, err)
	require.Len(t, first, 2)

	s.InjectFault("find", store.ProductCollection, errors.New("down"))
	cached, err := c.List(ctx, models.CategoryLeafy)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	_, err = c.List(ctx, models.CategoryRoot)
	assert.True(t, apperror.Is(err, apperror.KindUnavailable))
}

func TestGet(t *testing.T) {
	s := store.NewMemoryStore()
	c := New(s, nil, zaptest.NewLogger(t))
	ctx := context.Background()
	_, err := c.EnsureSeed(ctx)
	require.NoError(t, err)

	all, err := c.List(ctx, "")
	require.NoError(t, err)

	p, err := c.Get(ctx, all[2].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Tomato", p.Name)
	assert.Equal(t, 50.0, p.PricePerKg)

	_, err = c.Get(ctx, primitive.NewObjectID().Hex())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = c.Get(ctx, "xyz")
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}
