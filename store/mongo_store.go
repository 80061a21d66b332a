package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore is the Store backed by a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	result, err := s.collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", unavailable("insert", collection, err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert %s: unexpected id type %T", collection, result.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	err := s.collection(collection).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable("findOne", collection, err)
	}
	return nil
}

func (s *MongoStore) FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions, out interface{}) error {
	findOptions := options.Find()
	if len(opts.Sort) > 0 {
		findOptions.SetSort(opts.Sort)
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOptions.SetLimit(opts.Limit)
	}

	cursor, err := s.collection(collection).Find(ctx, filter, findOptions)
	if err != nil {
		return unavailable("find", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return unavailable("find", collection, err)
	}
	return nil
}

func (s *MongoStore) UpdateOne(ctx context.Context, collection string, filter bson.M, patch bson.M) (int64, error) {
	result, err := s.collection(collection).UpdateOne(ctx, filter, bson.M{"$set": patch})
	if err != nil {
		return 0, unavailable("updateOne", collection, err)
	}
	return result.MatchedCount, nil
}

func (s *MongoStore) UpdateMany(ctx context.Context, collection string, filter bson.M, patch bson.M) (int64, error) {
	result, err := s.collection(collection).UpdateMany(ctx, filter, bson.M{"$set": patch})
	if err != nil {
		return 0, unavailable("updateMany", collection, err)
	}
	return result.MatchedCount, nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	result, err := s.collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, unavailable("deleteOne", collection, err)
	}
	return result.DeletedCount, nil
}

func (s *MongoStore) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	result, err := s.collection(collection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, unavailable("deleteMany", collection, err)
	}
	return result.DeletedCount, nil
}

func (s *MongoStore) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	n, err := s.collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, unavailable("count", collection, err)
	}
	return n, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", s.db.Name(), err)
	}
	return nil
}

// CollectionNames lists the collections present in the database.
func (s *MongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, unavailable("listCollections", s.db.Name(), err)
	}
	return names, nil
}

// EnsureIndexes creates the lookup indexes the managers rely on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CartItemCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}, {Key: "variant", Value: 1}}},
		},
		AddressCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		OrderCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		ProductCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	}
	for collection, models := range indexes {
		if _, err := s.collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return unavailable("createIndexes", collection, err)
		}
	}
	return nil
}
