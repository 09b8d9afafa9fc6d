package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the uniqueness invariants rely
// on: account email, product SKU, and car plate number. Safe to run on
// every startup.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)

	// Emails stay unique even across deactivated accounts; SKUs and plate
	// numbers only have to be unique among active documents, so a
	// deactivated car's plate can be registered again.
	_, err := db.Collection("accounts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	uniqueActive := func(collection, field string) error {
		_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		})
		return err
	}

	if err := uniqueActive("products", "sku"); err != nil {
		return err
	}
	if err := uniqueActive("cars", "plate_number"); err != nil {
		return err
	}

	// Non-unique lookup indexes for the hot list paths.
	_, err = db.Collection("expenses").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}
