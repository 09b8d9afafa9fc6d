package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/models"
)

// ProductUpdate carries the mutable product fields. Nil fields are left
// untouched.
type ProductUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int64   `json:"quantity,omitempty"`
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, category string, page, limit int64) (*models.Page, error)
	Update(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*models.Product, error)
	// AdjustQuantity changes stock by delta (negative to consume) and
	// returns the updated product, or nil when the id does not resolve.
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int64) (*models.Product, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	CountActive(ctx context.Context) (int64, error)
}
