package handlers

import (
	"encoding/json"
	"net/http"

	"fleetstock/apierr"
	"fleetstock/models"
	"fleetstock/repository"
	"fleetstock/response"
)

type AccountHandler struct {
	Repo repository.AccountRepository
}

// List returns active accounts, paginated.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	result, err := h.Repo.List(r.Context(), page, limit)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WritePage(w, result)
}

// ListDrivers returns active driver-role accounts for vehicle assignment.
func (h *AccountHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Repo.ListByRole(r.Context(), models.RoleDriver)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, drivers, "")
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
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

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	var update repository.AccountUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}
	if update.Role != nil && !models.ValidRole(*update.Role) {
		response.WriteError(w, apierr.Validation("role must be one of super_admin, admin, inventory_manager, driver"))
		return
	}

	account, err := h.Repo.Update(r.Context(), id, update)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if account == nil {
		response.WriteError(w, apierr.NotFound("Account"))
		return
	}

	response.WriteSuccess(w, http.StatusOK, account, "Account updated successfully")
}

// Deactivate soft-deletes an account; the record stays for audit purposes.
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if err := h.Repo.Deactivate(r.Context(), id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, nil, "Account deactivated successfully")
}
