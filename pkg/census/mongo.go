package census

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a MongoDB-backed Store for long-running census builds
// shared between machines.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and prepares the census collection
// with a unique index on the signature field.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "signature", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Put upserts the entry on its signature.
func (s *MongoStore) Put(ctx context.Context, e Entry) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"signature": e.Signature},
		bson.M{"$set": e},
		options.Update().SetUpsert(true),
	)
	return err
}

// Get retrieves an entry by signature.
func (s *MongoStore) Get(ctx context.Context, sig string) (Entry, error) {
	var e Entry
	err := s.coll.FindOne(ctx, bson.M{"signature": sig}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Has reports whether the signature is stored.
func (s *MongoStore) Has(ctx context.Context, sig string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"signature": sig}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of stored entries.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
