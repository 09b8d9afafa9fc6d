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

type MongoAccountRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoAccountRepo(db *mongo.Client, dbName string) *MongoAccountRepo {
	return &MongoAccountRepo{DB: db, DBName: dbName}
}

func (r *MongoAccountRepo) col() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("accounts")
}

func (r *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	account.Active = true

	res, err := r.col().InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apierr.DuplicateAccount()
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid
	}
	return nil
}

func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account := &models.Account{}
	err := r.col().FindOne(ctx, bson.M{"email": email}).Decode(account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	account := &models.Account{}
	err := r.col().FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func (r *MongoAccountRepo) List(ctx context.Context, page, limit int64) (*models.Page, error) {
	filter := bson.M{"active": true}

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

	out := []*models.Account{}
	for cur.Next(ctx) {
		var a models.Account
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		a.Password = ""
		out = append(out, &a)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return &models.Page{Data: out, Total: total, Page: page, Limit: limit}, nil
}

func (r *MongoAccountRepo) ListByRole(ctx context.Context, role models.Role) ([]*models.Account, error) {
	cur, err := r.col().Find(ctx, bson.M{"role": role, "active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Account{}
	for cur.Next(ctx) {
		var a models.Account
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		a.Password = ""
		out = append(out, &a)
	}
	return out, cur.Err()
}

func (r *MongoAccountRepo) Update(ctx context.Context, id primitive.ObjectID, update AccountUpdate) (*models.Account, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Role != nil {
		set["role"] = *update.Role
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}

	account := &models.Account{}
	err := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	account.Password = ""
	return account, nil
}

func (r *MongoAccountRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("Account")
	}
	return nil
}

func (r *MongoAccountRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, t time.Time) error {
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": t}},
	)
	return err
}

func (r *MongoAccountRepo) CountActive(ctx context.Context) (int64, error) {
	return r.col().CountDocuments(ctx, bson.M{"active": true})
}
