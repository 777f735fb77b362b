package cache

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCache stores entries as documents keyed by _id. A TTL index on
// expires_at lets MongoDB purge expired entries; since the TTL monitor only
// runs periodically, Get also checks the expiry itself.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
	owned  bool
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// MongoOptions locate the cache collection.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoCache connects to MongoDB and ensures the TTL index exists.
func NewMongoCache(ctx context.Context, opts MongoOptions) (*MongoCache, error) {
	if opts.Database == "" {
		opts.Database = "iconfinder"
	}
	if opts.Collection == "" {
		opts.Collection = "cache"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, err
	}
	c, err := newMongoCache(ctx, client, client.Database(opts.Database).Collection(opts.Collection))
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	c.owned = true
	return c, nil
}

// NewMongoCacheFromCollection uses an existing collection. Close does not
// disconnect its client.
func NewMongoCacheFromCollection(ctx context.Context, coll *mongo.Collection) (*MongoCache, error) {
	return newMongoCache(ctx, coll.Database().Client(), coll)
}

func newMongoCache(ctx context.Context, client *mongo.Client, coll *mongo.Collection) (*MongoCache, error) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, err
	}
	return &MongoCache{client: client, coll: coll, now: time.Now}, nil
}

func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if e.ExpiresAt != nil && c.now().After(*e.ExpiresAt) {
		return nil, false, nil
	}
	return e.Data, true, nil
}

func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := c.now().Add(ttl).UTC()
		e.ExpiresAt = &exp
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, e, options.Replace().SetUpsert(true))
	return err
}

func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// DeletePrefix removes every entry whose key starts with prefix.
func (c *MongoCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	res, err := c.coll.DeleteMany(ctx, bson.M{
		"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)},
	})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

func (c *MongoCache) Close() error {
	if !c.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

var (
	_ Cache         = (*MongoCache)(nil)
	_ PrefixDeleter = (*MongoCache)(nil)
)
