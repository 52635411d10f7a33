package database

import (
	"context"
	"fmt"
	"time"

	"corneradvisor/config"
	"corneradvisor/pkg/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	ServicesCollection = "services"
	ReviewsCollection  = "reviews"

	pingAttempts = 5
	pingInterval = 2 * time.Second
	pingTimeout  = 5 * time.Second
)

// Connect opens the shared client and pings the primary, retrying a few
// times for temporary DNS/network blips. It fails instead of leaving the
// process running without a database.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetServerAPIOptions(serverAPI).
		SetAppName("corneradvisor")

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("open mongo client: %w", err)
	}

	for i := 0; i < pingAttempts; i++ {
		if err = Ping(ctx, client); err == nil {
			logger.Sugar.Info("Successfully connected to the database")
			return client, nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in %s... (%v)", pingInterval, err)

		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.Background())
			return nil, ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	_ = client.Disconnect(context.Background())
	return nil, fmt.Errorf("could not reach database after %d attempts: %w", pingAttempts, err)
}

// Ping checks the primary with a bounded timeout.
func Ping(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

// Collections returns the two collections the API serves.
func Collections(client *mongo.Client, dbName string) (services, reviews *mongo.Collection) {
	db := client.Database(dbName)
	return db.Collection(ServicesCollection), db.Collection(ReviewsCollection)
}
