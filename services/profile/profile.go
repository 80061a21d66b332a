package profile

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"vegholic-api/apperror"
	"vegholic-api/models"
	"vegholic-api/store"
)

// RecentOrderLimit caps the orders shown on a profile.
const RecentOrderLimit = 5

type AddressLister interface {
	List(ctx context.Context, userID string) ([]models.Address, error)
}

type OrderLister interface {
	ListRecent(ctx context.Context, userID string, limit int64) ([]models.Order, error)
}

type Profile struct {
	User         models.User      `json:"user"`
	Addresses    []models.Address `json:"addresses"`
	RecentOrders []models.Order   `json:"recent_orders"`
}

// Update is a partial edit of the user's own details. Nil fields are
// left untouched.
type Update struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type Service struct {
	store     store.Store
	addresses AddressLister
	orders    OrderLister
	now       func() time.Time
}

func NewService(s store.Store, addresses AddressLister, orders OrderLister) *Service {
	return &Service{store: s, addresses: addresses, orders: orders, now: time.Now}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	oid, err := store.ParseID(userID)
	if err != nil {
		return Profile{}, apperror.InvalidArgument("invalid user id format")
	}

	var user models.User
	if err := s.store.FindOne(ctx, store.UserCollection, store.ByID(oid), &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, apperror.NotFound("user not found")
		}
		return Profile{}, err
	}
	user.Token = ""

	addresses, err := s.addresses.List(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	orders, err := s.orders.ListRecent(ctx, userID, RecentOrderLimit)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: user, Addresses: addresses, RecentOrders: orders}, nil
}

func (s *Service) Update(ctx context.Context, userID string, update Update) (models.User, error) {
	oid, err := store.ParseID(userID)
	if err != nil {
		return models.User{}, apperror.InvalidArgument("invalid user id format")
	}
	if err := models.Validate(update); err != nil {
		return models.User{}, err
	}

	set := bson.M{"updated_at": s.now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	matched, err := s.store.UpdateOne(ctx, store.UserCollection, store.ByID(oid), set)
	if err != nil {
		return models.User{}, err
	}
	if matched == 0 {
		return models.User{}, apperror.NotFound("user not found")
	}

	var user models.User
	if err := s.store.FindOne(ctx, store.UserCollection, store.ByID(oid), &user); err != nil {
		return models.User{}, err
	}
	user.Token = ""
	return user, nil
}
