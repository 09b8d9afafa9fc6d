package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetstock/apierr"
	"fleetstock/models"
)

type MongoProductRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoProductRepo(db *mongo.Client, dbName string) *MongoProductRepo {
	return &MongoProductRepo{DB: db, DBName: dbName}
}

func (r *MongoProductRepo) col() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("products")
}

func (r *MongoProductRepo) Create(ctx context.Context, product *models.Product) error {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	product.Active = true

	res, err := r.col().InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apierr.Duplicate()
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *MongoProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product := &models.Product{}
	err := r.col().FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

func (r *MongoProductRepo) List(ctx context.Context, category string, page, limit int64) (*models.Page, error) {
	filter := bson.M{"active": true}
	if category != "" {
		filter["category"] = category
	}

	total, err := r.col().CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Product{}
	for cur.Next(ctx) {
		var p models.Product
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return &models.Page{Data: out, Total: total, Page: page, Limit: limit}, nil
}

func (r *MongoProductRepo) Update(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*models.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}

	product := &models.Product{}
	err := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

func (r *MongoProductRepo) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int64) (*models.Product, error) {
	product := &models.Product{}
	err := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{
			"$inc": bson.M{"quantity": delta},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

func (r *MongoProductRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("Product")
	}
	return nil
}

func (r *MongoProductRepo) CountActive(ctx context.Context) (int64, error) {
	return r.col().CountDocuments(ctx, bson.M{"active": true})
}
