package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/models"
)

// ExpenseFilter narrows expense listings. Zero values mean "no filter".
type ExpenseFilter struct {
	Category string
	CarID    *primitive.ObjectID
	From     time.Time
	To       time.Time
}

// ExpenseUpdate carries the mutable expense fields. Nil fields are left
// untouched.
type ExpenseUpdate struct {
	Title    *string    `json:"title,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Category *string    `json:"category,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Expense, error)
	List(ctx context.Context, filter ExpenseFilter, page, limit int64) (*models.Page, error)
	Update(ctx context.Context, id primitive.ObjectID, update ExpenseUpdate) (*models.Expense, error)
	SetReceiptURL(ctx context.Context, id primitive.ObjectID, url string) (*models.Expense, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	// ListRange returns all active expenses in [from, to), dated ascending.
	ListRange(ctx context.Context, from, to time.Time) ([]*models.Expense, error)
	// TotalAmount sums all active expense amounts.
	TotalAmount(ctx context.Context) (float64, error)
	// TotalsByCategory aggregates active expenses per category.
	TotalsByCategory(ctx context.Context) ([]models.CategoryTotal, error)
}
