package history

import (
	"context"
	"fmt"
	"path/filepath"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/BaSui01/fluxgen/internal/cache"
	"github.com/BaSui01/fluxgen/internal/database"
)

// StoreType selects a Slot backend.
type StoreType string

const (
	StoreMemory   StoreType = "memory"
	StoreFile     StoreType = "file"
	StoreRedis    StoreType = "redis"
	StoreDatabase StoreType = "database"
	StoreMongo    StoreType = "mongo"
)

// Config 历史存储配置
type Config struct {
	Type     StoreType `yaml:"type" json:"type" env:"TYPE"`
	Key      string    `yaml:"key" json:"key" env:"KEY"`
	Capacity int       `yaml:"capacity" json:"capacity" env:"CAPACITY"`

	// FilePath 用于 file 类型
	FilePath string `yaml:"file_path" json:"file_path" env:"FILE_PATH"`

	// MongoCollection 用于 mongo 类型
	MongoCollection string `yaml:"mongo_collection" json:"mongo_collection" env:"MONGO_COLLECTION"`
}

// DefaultConfig keeps history in a JSON file under ./data.
func DefaultConfig() Config {
	return Config{
		Type:            StoreFile,
		Key:             DefaultKey,
		Capacity:        MaxHistory,
		FilePath:        filepath.Join("data", DefaultKey+".json"),
		MongoCollection: DefaultMongoCollection,
	}
}

// Backends carries the shared connections a slot may need. Only the one
// matching Config.Type is required.
type Backends struct {
	Cache *cache.Manager
	DB    *database.PoolManager
	Mongo *mongo.Database
}

// NewSlot builds the Slot selected by cfg.Type.
func NewSlot(ctx context.Context, cfg Config, b Backends) (Slot, error) {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	switch cfg.Type {
	case StoreMemory, "":
		return NewMemorySlot(), nil
	case StoreFile:
		path := cfg.FilePath
		if path == "" {
			path = DefaultConfig().FilePath
		}
		return NewFileSlot(path)
	case StoreRedis:
		if b.Cache == nil {
			return nil, fmt.Errorf("history store %q requires redis", cfg.Type)
		}
		return NewRedisSlot(b.Cache, key), nil
	case StoreDatabase:
		if b.DB == nil {
			return nil, fmt.Errorf("history store %q requires a database", cfg.Type)
		}
		return NewGormSlot(ctx, b.DB, key)
	case StoreMongo:
		if b.Mongo == nil {
			return nil, fmt.Errorf("history store %q requires mongo", cfg.Type)
		}
		coll := cfg.MongoCollection
		if coll == "" {
			coll = DefaultMongoCollection
		}
		return NewMongoSlot(b.Mongo.Collection(coll), key), nil
	default:
		return nil, fmt.Errorf("unknown history store type: %s", cfg.Type)
	}
}
