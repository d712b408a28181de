package database

import (
	"context"
	"log"
	"time"

	"voicelens/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// MongodbDB holds the optional log/audit sink. DB is nil when MONGO_URI is
// not configured; callers must treat the sink as best-effort.
type MongodbDB struct {
	DB *mongo.Database
}

func (m *MongodbDB) Enabled() bool {
	return m != nil && m.DB != nil
}

// NewMongoDB connects to the log/audit sink with lifecycle management.
// Unlike the primary store, a missing MONGO_URI is not fatal.
func NewMongoDB(lc fx.Lifecycle, cfg *config.Config) (*MongodbDB, error) {
	if cfg.MongoURI == "" {
		log.Println("MONGO_URI not set; log/audit sink disabled")
		return &MongodbDB{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB!")

	db := client.Database(cfg.MongoDBName)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Disconnecting from MongoDB...")
			return client.Disconnect(ctx)
		},
	})

	return &MongodbDB{DB: db}, nil
}
