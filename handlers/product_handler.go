package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/apierr"
	"fleetstock/gate"
	"fleetstock/models"
	"fleetstock/repository"
	"fleetstock/response"
)

type ProductHandler struct {
	Repo repository.ProductRepository
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}

	var details []string
	if product.Name == "" {
		details = append(details, "name is required")
	}
	if product.SKU == "" {
		details = append(details, "sku is required")
	}
	if product.Price < 0 {
		details = append(details, "price must not be negative")
	}
	if product.Quantity < 0 {
		details = append(details, "quantity must not be negative")
	}
	if len(details) > 0 {
		response.WriteError(w, apierr.Validation(details...))
		return
	}

	if identity := gate.IdentityFromContext(r.Context()); identity != nil {
		if creator, err := primitive.ObjectIDFromHex(identity.ID); err == nil {
			product.CreatedBy = creator
		}
	}

	if err := h.Repo.Create(r.Context(), &product); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, product, "Product created successfully")
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	result, err := h.Repo.List(r.Context(), r.URL.Query().Get("category"), page, limit)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WritePage(w, result)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	product, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if product == nil {
		response.WriteError(w, apierr.NotFound("Product"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, product, "")
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	var update repository.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}
	if update.Price != nil && *update.Price < 0 {
		response.WriteError(w, apierr.Validation("price must not be negative"))
		return
	}

	product, err := h.Repo.Update(r.Context(), id, update)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if product == nil {
		response.WriteError(w, apierr.NotFound("Product"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, product, "Product updated successfully")
}

// AdjustStock increments or decrements stock by the given delta.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}
	if req.Delta == 0 {
		response.WriteError(w, apierr.Validation("delta must not be zero"))
		return
	}

	product, err := h.Repo.AdjustQuantity(r.Context(), id, req.Delta)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if product == nil {
		response.WriteError(w, apierr.NotFound("Product"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, product, "Stock adjusted successfully")
}

func (h *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if err := h.Repo.Deactivate(r.Context(), id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, nil, "Product deactivated successfully")
}
