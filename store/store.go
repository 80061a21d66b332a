package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vegholic-api/apperror"
)

// Collection names.
const (
	UserCollection     = "user"
	ProductCollection  = "product"
	AddressCollection  = "address"
	CartItemCollection = "cartitem"
	OrderCollection    = "order"
)

// Collections lists every collection the API reads or writes.
var Collections = []string{UserCollection, ProductCollection, AddressCollection, CartItemCollection, OrderCollection}

// ErrNotFound is returned by FindOne when no document matches.
var ErrNotFound = errors.New("document not found")

// FindOptions narrows a FindMany call. Sort uses Mongo semantics:
// 1 ascending, -1 descending.
type FindOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// Store is the record store every manager is built on. Filters are
// Mongo-style documents. Patches are applied as $set.
type Store interface {
	Insert(ctx context.Context, collection string, doc interface{}) (string, error)
	FindOne(ctx context.Context, collection string, filter bson.M, out interface{}) error
	FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions, out interface{}) error
	UpdateOne(ctx context.Context, collection string, filter bson.M, patch bson.M) (int64, error)
	UpdateMany(ctx context.Context, collection string, filter bson.M, patch bson.M) (int64, error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)
	DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error)
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
	Ping(ctx context.Context) error
}

// ParseID converts a hex id into an ObjectID, reporting a malformed id
// as InvalidArgument.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.InvalidArgument("invalid id format")
	}
	return oid, nil
}

// ValidID reports whether id is a well-formed hex ObjectID.
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// ByID is the filter matching a single document by its _id.
func ByID(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid}
}

func unavailable(op, collection string, err error) error {
	return apperror.Unavailable("store unavailable", &OpError{Op: op, Collection: collection, Err: err})
}

// OpError records which store operation failed.
type OpError struct {
	Op         string
	Collection string
	Err        error
}

func (e *OpError) Error() string {
	return e.Op + " " + e.Collection + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}
