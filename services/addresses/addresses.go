package addresses

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"vegholic-api/apperror"
	"vegholic-api/locks"
	"vegholic-api/models"
	"vegholic-api/services/auth"
	"vegholic-api/store"
)

// Manager owns the address collection and keeps at most one default
// address per user, mirrored in user.default_address_id.
type Manager struct {
	store  store.Store
	locker locks.Locker
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(s store.Store, locker locks.Locker, logger *zap.Logger) *Manager {
	return &Manager{store: s, locker: locker, logger: logger, now: time.Now}
}

func (m *Manager) Create(ctx context.Context, address models.Address) (string, error) {
	if err := models.Validate(address); err != nil {
		return "", err
	}
	if _, err := store.ParseID(address.UserID); err != nil {
		return "", apperror.InvalidArgument("invalid user id format")
	}

	unlock, err := m.locker.Lock(ctx, locks.UserKey(address.UserID))
	if err != nil {
		return "", err
	}
	defer unlock()

	now := m.now().UTC()
	address.ID = primitive.NilObjectID
	address.CreatedAt = now
	address.UpdatedAt = now
	id, err := m.store.Insert(ctx, store.AddressCollection, address)
	if err != nil {
		return "", err
	}
	if address.IsDefault {
		oid, _ := store.ParseID(id)
		if err := m.makeDefault(ctx, address.UserID, oid); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Update merges the non-nil patch fields into the stored address. An
// empty patch succeeds without touching the store.
func (m *Manager) Update(ctx context.Context, addressID string, patch models.AddressPatch) error {
	oid, err := store.ParseID(addressID)
	if err != nil {
		return apperror.InvalidArgument("invalid address id format")
	}
	if err := models.Validate(patch); err != nil {
		return err
	}
	set := patchDocument(patch)
	if len(set) == 0 {
		return nil
	}

	var current models.Address
	if err := m.store.FindOne(ctx, store.AddressCollection, store.ByID(oid), &current); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("address not found")
		}
		return err
	}
	if err := auth.CheckOwner(ctx, current.UserID, "address not found"); err != nil {
		return err
	}

	unlock, err := m.locker.Lock(ctx, locks.UserKey(current.UserID))
	if err != nil {
		return err
	}
	defer unlock()

	set["updated_at"] = m.now().UTC()
	matched, err := m.store.UpdateOne(ctx, store.AddressCollection, store.ByID(oid), set)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperror.NotFound("address not found")
	}
	if patch.IsDefault != nil && *patch.IsDefault {
		return m.makeDefault(ctx, current.UserID, oid)
	}
	return nil
}

// Delete removes the address. A user whose default address is deleted
// keeps the stale default_address_id.
func (m *Manager) Delete(ctx context.Context, addressID string) error {
	oid, err := store.ParseID(addressID)
	if err != nil {
		return apperror.InvalidArgument("invalid address id format")
	}
	if actor, ok := auth.ActorFrom(ctx); ok {
		var current models.Address
		err := m.store.FindOne(ctx, store.AddressCollection, store.ByID(oid), &current)
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("address not found")
		}
		if err != nil {
			return err
		}
		if current.UserID != actor {
			return apperror.NotFound("address not found")
		}
	}
	deleted, err := m.store.DeleteOne(ctx, store.AddressCollection, store.ByID(oid))
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.NotFound("address not found")
	}
	return nil
}

func (m *Manager) List(ctx context.Context, userID string) ([]models.Address, error) {
	if _, err := store.ParseID(userID); err != nil {
		return nil, apperror.InvalidArgument("invalid user id format")
	}
	addresses := []models.Address{}
	if err := m.store.FindMany(ctx, store.AddressCollection, bson.M{"user_id": userID}, store.FindOptions{
		Sort: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	}, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// makeDefault clears is_default on the user's other addresses and points
// the user at addressID. The caller holds the user lock.
func (m *Manager) makeDefault(ctx context.Context, userID string, addressID primitive.ObjectID) error {
	now := m.now().UTC()
	if _, err := m.store.UpdateMany(ctx, store.AddressCollection, bson.M{
		"user_id": userID,
		"_id":     bson.M{"$ne": addressID},
	}, bson.M{"is_default": false, "updated_at": now}); err != nil {
		return err
	}

	userOID, err := store.ParseID(userID)
	if err != nil {
		return err
	}
	matched, err := m.store.UpdateOne(ctx, store.UserCollection, store.ByID(userOID), bson.M{
		"default_address_id": addressID.Hex(),
		"updated_at":         now,
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		m.logger.Warn("default address set for unknown user",
			zap.String("userId", userID),
			zap.String("addressId", addressID.Hex()))
	}
	return nil
}

func patchDocument(patch models.AddressPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Mobile != nil {
		set["mobile"] = *patch.Mobile
	}
	if patch.Pincode != nil {
		set["pincode"] = *patch.Pincode
	}
	if patch.Street != nil {
		set["street"] = *patch.Street
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.IsDefault != nil {
		set["is_default"] = *patch.IsDefault
	}
	return set
}
