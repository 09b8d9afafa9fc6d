package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Expense struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title      string              `json:"title" bson:"title"`
	Amount     float64             `json:"amount" bson:"amount"`
	Category   string              `json:"category" bson:"category"`
	Date       time.Time           `json:"date" bson:"date"`
	CarID      *primitive.ObjectID `json:"car_id,omitempty" bson:"car_id,omitempty"`
	ReceiptURL *string             `json:"receipt_url,omitempty" bson:"receipt_url,omitempty"`
	Notes      *string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Active     bool                `json:"active" bson:"active"`
	CreatedBy  primitive.ObjectID  `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  *time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`

	// Populated for responses (denormalized)
	Car *Car `json:"car,omitempty" bson:"-"`
}

// CategoryTotal is one row of the per-category expense aggregation.
type CategoryTotal struct {
	Category string  `json:"category" bson:"_id"`
	Total    float64 `json:"total" bson:"total"`
	Count    int64   `json:"count" bson:"count"`
}

// DashboardSummary aggregates the counts shown on the admin dashboard.
type DashboardSummary struct {
	ActiveProducts int64           `json:"active_products"`
	ActiveCars     int64           `json:"active_cars"`
	ActiveAccounts int64           `json:"active_accounts"`
	TotalExpenses  float64         `json:"total_expenses"`
	ByCategory     []CategoryTotal `json:"expenses_by_category"`
}
