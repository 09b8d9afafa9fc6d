package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is one of the fixed set of account roles. There is no hierarchy:
// super_admin does not implicitly satisfy admin-only routes.
type Role string

const (
	RoleSuperAdmin       Role = "super_admin"
	RoleAdmin            Role = "admin"
	RoleInventoryManager Role = "inventory_manager"
	RoleDriver           Role = "driver"
)

// ValidRole reports whether r belongs to the declared role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleInventoryManager, RoleDriver:
		return true
	}
	return false
}

type Account struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"password,omitempty" bson:"password"`
	Role        Role               `json:"role" bson:"role"`
	Active      bool               `json:"active" bson:"active"`
	LastLoginAt *time.Time         `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
