package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/models"
)

// AccountUpdate carries the mutable account fields for administrative
// edits. Nil fields are left untouched.
type AccountUpdate struct {
	Name   *string      `json:"name,omitempty"`
	Role   *models.Role `json:"role,omitempty"`
	Active *bool        `json:"active,omitempty"`
}

// AccountRepository defines the credential/account store. Accounts are
// never hard-deleted, only deactivated.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	// GetByEmail looks an account up regardless of its active flag; the
	// caller decides whether an inactive account may authenticate.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// GetByID resolves an active account, returning nil when absent.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	List(ctx context.Context, page, limit int64) (*models.Page, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.Account, error)
	Update(ctx context.Context, id primitive.ObjectID, update AccountUpdate) (*models.Account, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, t time.Time) error
	CountActive(ctx context.Context) (int64, error)
}
