package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/apierr"
	"fleetstock/auth"
	"fleetstock/gate"
	"fleetstock/models"
	"fleetstock/repository"
	"fleetstock/response"
)

type AuthHandler struct {
	Repo   repository.AccountRepository
	Tokens *auth.TokenManager
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  *models.Account `json:"user"`
}

// Register provisions a new account and returns it with a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}

	var details []string
	if req.Name == "" {
		details = append(details, "name is required")
	}
	if req.Email == "" {
		details = append(details, "email is required")
	}
	if len(req.Password) < 8 {
		details = append(details, "password must be at least 8 characters")
	}
	if !models.ValidRole(req.Role) {
		details = append(details, "role must be one of super_admin, admin, inventory_manager, driver")
	}
	if len(details) > 0 {
		response.WriteError(w, apierr.Validation(details...))
		return
	}

	existing, err := h.Repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if existing != nil {
		response.WriteError(w, apierr.DuplicateAccount())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	account := &models.Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
	}
	if err := h.Repo.Create(r.Context(), account); err != nil {
		response.WriteError(w, err)
		return
	}

	token, err := h.Tokens.Issue(account)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	account.Password = "" // hide password hash
	response.WriteSuccess(w, http.StatusCreated, authResponse{Token: token, User: account}, "Account registered successfully")
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the identical error so account existence never
// leaks.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}

	account, err := h.Repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if account == nil || !account.Active {
		response.WriteError(w, apierr.InvalidCredentials())
		return
	}

	if err := auth.CheckPassword(account.Password, req.Password); err != nil {
		response.WriteError(w, apierr.InvalidCredentials())
		return
	}

	now := time.Now().UTC()
	if err := h.Repo.UpdateLastLogin(r.Context(), account.ID, now); err != nil {
		response.WriteError(w, err)
		return
	}
	account.LastLoginAt = &now

	token, err := h.Tokens.Issue(account)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	account.Password = "" // hide password hash
	response.WriteSuccess(w, http.StatusOK, authResponse{Token: token, User: account}, "Login successful")
}

// Profile returns the authenticated caller's account.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := gate.IdentityFromContext(r.Context())
	if identity == nil {
		response.WriteError(w, apierr.Unauthenticated(""))
		return
	}

	id, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		response.WriteError(w, apierr.InvalidID())
		return
	}

	account, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if account == nil {
		response.WriteError(w, apierr.NotFound("Account"))
		return
	}

	account.Password = ""
	response.WriteSuccess(w, http.StatusOK, account, "")
}
