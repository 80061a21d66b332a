package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"vegholic-api/apperror"
	"vegholic-api/locks"
	"vegholic-api/models"
	"vegholic-api/services/addresses"
	"vegholic-api/services/cart"
	"vegholic-api/services/orders"
	"vegholic-api/store"
)

func TestGet_AssemblesProfile(t *testing.T) {
	s := store.NewMemoryStore()
	locker := locks.NewLocalLocker()
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	cartManager := cart.NewManager(s, locker, logger)
	addressManager := addresses.NewManager(s, locker, logger)
	engine := orders.NewEngine(s, cartManager, locker, logger)
	svc := NewService(s, addressManager, engine)

	userID, err := s.Insert(ctx, store.UserCollection, models.User{Phone: "9999999999", Name: "Asha", Token: "secret"})
	require.NoError(t, err)
	productID, err := s.Insert(ctx, store.ProductCollection, models.Product{Name: "Tomato", PricePerKg: 50, Category: models.CategoryFruits})
	require.NoError(t, err)
	addressID, err := addressManager.Create(ctx, models.Address{
		UserID: userID, Name: "Home", Mobile: "9999999999", Pincode: "560001",
		Street: "1 MG Road", City: "Bengaluru", IsDefault: true,
	})
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err := cartManager.AddItem(ctx, userID, productID, "1kg", 1)
		require.NoError(t, err)
		_, err = engine.Create(ctx, userID, addressID, "COD")
		require.NoError(t, err)
	}

	p, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.User.Name)
	assert.Equal(t, addressID, p.User.DefaultAddressID)
	assert.Empty(t, p.User.Token)
	assert.Len(t, p.Addresses, 1)
	assert.Len(t, p.RecentOrders, RecentOrderLimit)
}

func TestGet_UnknownUser(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewService(s, nil, nil)

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = svc.Get(context.Background(), "bad")
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestUpdate(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewService(s, nil, nil)
	ctx := context.Background()
	userID, err := s.Insert(ctx, store.UserCollection, models.User{Phone: "1", Name: "Old"})
	require.NoError(t, err)

	name := "New"
	email := "new@example.com"
	u, err := svc.Update(ctx, userID, Update{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "New", u.Name)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "1", u.Phone)

	bad := "not-an-email"
	_, err = svc.Update(ctx, userID, Update{Email: &bad})
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), Update{Name: &name})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
