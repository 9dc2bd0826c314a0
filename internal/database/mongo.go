package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo dials the listing store and verifies the primary is reachable.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo URI must not be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// propertyIndexes cover the newest-first listing sort and the owner and city filters.
func propertyIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_by"),
		},
		{
			Keys:    bson.D{{Key: "location.city", Value: 1}},
			Options: options.Index().SetName("location_city"),
		},
	}
}

type indexCreator interface {
	CreateMany(ctx context.Context, models []mongo.IndexModel, opts ...*options.CreateIndexesOptions) ([]string, error)
}

// EnsureIndexes creates the listing indexes. Existing indexes with the same
// definition are left untouched by the server.
func EnsureIndexes(ctx context.Context, indexes indexCreator) error {
	if _, err := indexes.CreateMany(ctx, propertyIndexes()); err != nil {
		return fmt.Errorf("create property indexes: %w", err)
	}
	return nil
}
