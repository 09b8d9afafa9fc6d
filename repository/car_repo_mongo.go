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

type MongoCarRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoCarRepo(db *mongo.Client, dbName string) *MongoCarRepo {
	return &MongoCarRepo{DB: db, DBName: dbName}
}

func (r *MongoCarRepo) db() *mongo.Database {
	return r.DB.Database(r.DBName)
}

func (r *MongoCarRepo) Create(ctx context.Context, car *models.Car) error {
	if car.CreatedAt.IsZero() {
		car.CreatedAt = time.Now().UTC()
	}
	car.Active = true
	car.Driver = nil

	res, err := r.db().Collection("cars").InsertOne(ctx, car)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apierr.Duplicate()
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		car.ID = oid
	}
	return nil
}

func (r *MongoCarRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	car := &models.Car{}
	err := r.db().Collection("cars").FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.populateDriver(ctx, car), nil
}

func (r *MongoCarRepo) List(ctx context.Context, page, limit int64) (*models.Page, error) {
	filter := bson.M{"active": true}
	cars := r.db().Collection("cars")

	total, err := cars.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := cars.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Car{}
	for cur.Next(ctx) {
		var c models.Car
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, r.populateDriver(ctx, &c))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return &models.Page{Data: out, Total: total, Page: page, Limit: limit}, nil
}

func (r *MongoCarRepo) Update(ctx context.Context, id primitive.ObjectID, update CarUpdate) (*models.Car, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.PlateNumber != nil {
		set["plate_number"] = *update.PlateNumber
	}
	if update.Model != nil {
		set["model"] = *update.Model
	}
	if update.Brand != nil {
		set["brand"] = *update.Brand
	}
	if update.Year != nil {
		set["year"] = *update.Year
	}

	car := &models.Car{}
	err := r.db().Collection("cars").FindOneAndUpdate(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apierr.Duplicate()
		}
		return nil, err
	}
	return r.populateDriver(ctx, car), nil
}

func (r *MongoCarRepo) AssignDriver(ctx context.Context, id primitive.ObjectID, driverID *primitive.ObjectID) (*models.Car, error) {
	change := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if driverID != nil {
		change["$set"].(bson.M)["driver_id"] = *driverID
	} else {
		change["$unset"] = bson.M{"driver_id": ""}
	}

	car := &models.Car{}
	err := r.db().Collection("cars").FindOneAndUpdate(ctx,
		bson.M{"_id": id, "active": true},
		change,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.populateDriver(ctx, car), nil
}

func (r *MongoCarRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db().Collection("cars").UpdateOne(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("Car")
	}
	return nil
}

func (r *MongoCarRepo) CountActive(ctx context.Context) (int64, error) {
	return r.db().Collection("cars").CountDocuments(ctx, bson.M{"active": true})
}

// populateDriver loads the assigned driver account as a plain struct.
func (r *MongoCarRepo) populateDriver(ctx context.Context, c *models.Car) *models.Car {
	if c.DriverID == nil {
		return c
	}
	var a models.Account
	err := r.db().Collection("accounts").
		FindOne(ctx, bson.M{"_id": *c.DriverID, "active": true}).Decode(&a)
	if err == nil {
		a.Password = ""
		c.Driver = &a
	}
	return c
}
