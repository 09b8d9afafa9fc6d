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

type MongoExpenseRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoExpenseRepo(db *mongo.Client, dbName string) *MongoExpenseRepo {
	return &MongoExpenseRepo{DB: db, DBName: dbName}
}

func (r *MongoExpenseRepo) col() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("expenses")
}

func (r *MongoExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}
	expense.Active = true
	expense.Car = nil

	res, err := r.col().InsertOne(ctx, expense)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		expense.ID = oid
	}
	return nil
}

func (r *MongoExpenseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	expense := &models.Expense{}
	err := r.col().FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(expense)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return expense, nil
}

func (r *MongoExpenseRepo) List(ctx context.Context, filter ExpenseFilter, page, limit int64) (*models.Page, error) {
	query := bson.M{"active": true}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.CarID != nil {
		query["car_id"] = *filter.CarID
	}
	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lt"] = filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	total, err := r.col().CountDocuments(ctx, query)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := r.col().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Expense{}
	for cur.Next(ctx) {
		var e models.Expense
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return &models.Page{Data: out, Total: total, Page: page, Limit: limit}, nil
}

func (r *MongoExpenseRepo) Update(ctx context.Context, id primitive.ObjectID, update ExpenseUpdate) (*models.Expense, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Amount != nil {
		set["amount"] = *update.Amount
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Date != nil {
		set["date"] = *update.Date
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}

	expense := &models.Expense{}
	err := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(expense)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return expense, nil
}

func (r *MongoExpenseRepo) SetReceiptURL(ctx context.Context, id primitive.ObjectID, url string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": bson.M{"receipt_url": url, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(expense)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return expense, nil
}

func (r *MongoExpenseRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("Expense")
	}
	return nil
}

func (r *MongoExpenseRepo) ListRange(ctx context.Context, from, to time.Time) ([]*models.Expense, error) {
	cur, err := r.col().Find(ctx,
		bson.M{"active": true, "date": bson.M{"$gte": from, "$lt": to}},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Expense{}
	for cur.Next(ctx) {
		var e models.Expense
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, cur.Err()
}

func (r *MongoExpenseRepo) TotalAmount(ctx context.Context) (float64, error) {
	cur, err := r.col().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"active": true}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var row struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
	}
	return row.Total, cur.Err()
}

func (r *MongoExpenseRepo) TotalsByCategory(ctx context.Context) ([]models.CategoryTotal, error) {
	cur, err := r.col().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"active": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"total": -1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CategoryTotal{}
	for cur.Next(ctx) {
		var row models.CategoryTotal
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, cur.Err()
}
