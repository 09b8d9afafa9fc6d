package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Car struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PlateNumber string              `json:"plate_number" bson:"plate_number"`
	Model       string              `json:"model" bson:"model"`
	Brand       string              `json:"brand" bson:"brand"`
	Year        int                 `json:"year,omitempty" bson:"year,omitempty"`
	DriverID    *primitive.ObjectID `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	Active      bool                `json:"active" bson:"active"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`

	// Populated for responses (denormalized)
	Driver *Account `json:"driver,omitempty" bson:"-"`
}
