package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"student-performance-dashboard/config"
	"student-performance-dashboard/logger"
)

// ConnectMongo connects the client and returns the configured database.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
	return client, client.Database(cfg.Mongo.Database), nil
}
