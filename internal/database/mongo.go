package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names used by the admin console.
const (
	ColMedia     = "media"
	ColPackages  = "packages"
	ColBookings  = "bookings"
	ColCustomers = "customers"
	ColInquiries = "inquiries"
	ColOffers    = "offers"
)

func Connect(uri, dbName string, log *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Errorf("mongo connect failed: %v", err)
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Errorf("mongo ping failed: %v", err)
		return nil, nil, err
	}
	log.Info("mongo connected")
	return client.Database(dbName), client, nil
}

// EnsureIndexes creates the indexes the admin queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ColMedia).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "uploadDate", Value: -1}}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(ColCustomers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(ColBookings).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reference", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
