package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/apierr"
	"fleetstock/models"
	"fleetstock/repository"
	"fleetstock/response"
)

type CarHandler struct {
	Repo     repository.CarRepository
	Accounts repository.AccountRepository
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var car models.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}

	var details []string
	if car.PlateNumber == "" {
		details = append(details, "plate_number is required")
	}
	if car.Model == "" {
		details = append(details, "model is required")
	}
	if len(details) > 0 {
		response.WriteError(w, apierr.Validation(details...))
		return
	}

	car.DriverID = nil // drivers are assigned through the dedicated route
	if err := h.Repo.Create(r.Context(), &car); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, car, "Car created successfully")
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	result, err := h.Repo.List(r.Context(), page, limit)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WritePage(w, result)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	car, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if car == nil {
		response.WriteError(w, apierr.NotFound("Car"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, car, "")
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	var update repository.CarUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}

	car, err := h.Repo.Update(r.Context(), id, update)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if car == nil {
		response.WriteError(w, apierr.NotFound("Car"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, car, "Car updated successfully")
}

// AssignDriver binds a driver-role account to the car, or unbinds it when
// driver_id is null.
func (h *CarHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	var req struct {
		DriverID *string `json:"driver_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}

	var driverID *primitive.ObjectID
	if req.DriverID != nil {
		oid, err := primitive.ObjectIDFromHex(*req.DriverID)
		if err != nil {
			response.WriteError(w, apierr.InvalidID())
			return
		}

		driver, err := h.Accounts.GetByID(r.Context(), oid)
		if err != nil {
			response.WriteError(w, err)
			return
		}
		if driver == nil {
			response.WriteError(w, apierr.NotFound("Driver"))
			return
		}
		if driver.Role != models.RoleDriver {
			response.WriteError(w, apierr.Validation("account is not a driver"))
			return
		}
		driverID = &oid
	}

	car, err := h.Repo.AssignDriver(r.Context(), id, driverID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if car == nil {
		response.WriteError(w, apierr.NotFound("Car"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, car, "Driver assignment updated")
}

func (h *CarHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if err := h.Repo.Deactivate(r.Context(), id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, nil, "Car deactivated successfully")
}
