package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/models"
)

// CarUpdate carries the mutable car fields. Nil fields are left untouched.
type CarUpdate struct {
	PlateNumber *string `json:"plate_number,omitempty"`
	Model       *string `json:"model,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Year        *int    `json:"year,omitempty"`
}

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	// GetByID resolves an active car with its assigned driver populated,
	// returning nil when absent.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	List(ctx context.Context, page, limit int64) (*models.Page, error)
	Update(ctx context.Context, id primitive.ObjectID, update CarUpdate) (*models.Car, error)
	// AssignDriver sets or clears (nil) the car's driver reference.
	AssignDriver(ctx context.Context, id primitive.ObjectID, driverID *primitive.ObjectID) (*models.Car, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	CountActive(ctx context.Context) (int64, error)
}
