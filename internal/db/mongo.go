package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/config"
	"github.com/Sandy4321/MovieRecommend/internal/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

var errNotConnected = errors.New("mongo: not connected")

// Connect opens a client, pings it and returns the configured database.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(database), nil
}

// InitMongo connects the process-wide client used by the commands.
func InitMongo(ctx context.Context, cfg *config.Config) error {
	client, database, err := Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	mongoClient = client
	mongoDB = database

	log := logging.Component("mongo")
	log.Info().
		Str("database", cfg.Mongo.Database).
		Msg("connected")
	return nil
}

func DB() *mongo.Database {
	return mongoDB
}

// Ping checks the process-wide client against the primary.
func Ping(ctx context.Context) error {
	if mongoClient == nil {
		return errNotConnected
	}
	return mongoClient.Ping(ctx, nil)
}

// Close disconnects the process-wide client.
func Close(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}
