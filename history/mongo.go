package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultMongoCollection holds one document per slot key.
const DefaultMongoCollection = "history_slots"

type mongoSlotDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoSlot stores the document in a MongoDB collection keyed by _id.
type MongoSlot struct {
	coll *mongo.Collection
	key  string
}

// NewMongoSlot uses coll for key.
func NewMongoSlot(coll *mongo.Collection, key string) *MongoSlot {
	if key == "" {
		key = DefaultKey
	}
	return &MongoSlot{coll: coll, key: key}
}

// ConnectMongo opens a client and verifies it with a ping.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func (s *MongoSlot) Load(ctx context.Context) ([]byte, error) {
	var doc mongoSlotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("load history document: %w", err)
	}
	return doc.Value, nil
}

func (s *MongoSlot) Save(ctx context.Context, data []byte) error {
	update := bson.M{"$set": bson.M{"value": data, "updated_at": time.Now().UTC()}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.key}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save history document: %w", err)
	}
	return nil
}

func (s *MongoSlot) Delete(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.key}); err != nil {
		return fmt.Errorf("delete history document: %w", err)
	}
	return nil
}
