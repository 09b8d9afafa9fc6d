package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/apierr"
	"fleetstock/gate"
	"fleetstock/models"
	"fleetstock/repository"
	"fleetstock/response"
)

// ReceiptStorage uploads receipt images and returns their public URL.
type ReceiptStorage interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

type ExpenseHandler struct {
	Repo    repository.ExpenseRepository
	Cars    repository.CarRepository
	Storage ReceiptStorage
}

const maxReceiptSize = 10 << 20 // 10 MiB

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}

	var details []string
	if expense.Title == "" {
		details = append(details, "title is required")
	}
	if expense.Amount <= 0 {
		details = append(details, "amount must be positive")
	}
	if expense.Category == "" {
		details = append(details, "category is required")
	}
	if len(details) > 0 {
		response.WriteError(w, apierr.Validation(details...))
		return
	}

	if expense.CarID != nil {
		car, err := h.Cars.GetByID(r.Context(), *expense.CarID)
		if err != nil {
			response.WriteError(w, err)
			return
		}
		if car == nil {
			response.WriteError(w, apierr.NotFound("Car"))
			return
		}
	}

	if identity := gate.IdentityFromContext(r.Context()); identity != nil {
		if creator, err := primitive.ObjectIDFromHex(identity.ID); err == nil {
			expense.CreatedBy = creator
		}
	}

	if err := h.Repo.Create(r.Context(), &expense); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, expense, "Expense recorded successfully")
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	q := r.URL.Query()

	filter := repository.ExpenseFilter{Category: q.Get("category")}
	if raw := q.Get("car_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.WriteError(w, apierr.InvalidID())
			return
		}
		filter.CarID = &oid
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.WriteError(w, apierr.Validation("from must be formatted YYYY-MM-DD"))
			return
		}
		filter.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.WriteError(w, apierr.Validation("to must be formatted YYYY-MM-DD"))
			return
		}
		filter.To = t
	}

	result, err := h.Repo.List(r.Context(), filter, page, limit)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WritePage(w, result)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	expense, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if expense == nil {
		response.WriteError(w, apierr.NotFound("Expense"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, expense, "")
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	var update repository.ExpenseUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.WriteError(w, apierr.Validation("invalid request payload"))
		return
	}
	if update.Amount != nil && *update.Amount <= 0 {
		response.WriteError(w, apierr.Validation("amount must be positive"))
		return
	}

	expense, err := h.Repo.Update(r.Context(), id, update)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if expense == nil {
		response.WriteError(w, apierr.NotFound("Expense"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, expense, "Expense updated successfully")
}

// UploadReceipt accepts a multipart "receipt" file, stores it in object
// storage, and records the public URL on the expense.
func (h *ExpenseHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		response.WriteError(w, apierr.Validation("invalid multipart payload"))
		return
	}
	file, header, err := r.FormFile("receipt")
	if err != nil {
		response.WriteError(w, apierr.Validation("receipt file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReceiptSize+1))
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if len(data) > maxReceiptSize {
		response.WriteError(w, apierr.Validation("receipt must be 10 MiB or smaller"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	filename := fmt.Sprintf("receipts/%s_%d_%s", id.Hex(), time.Now().Unix(), header.Filename)
	url, err := h.Storage.Upload(r.Context(), data, filename, contentType)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	expense, err := h.Repo.SetReceiptURL(r.Context(), id, url)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if expense == nil {
		response.WriteError(w, apierr.NotFound("Expense"))
		return
	}
	response.WriteSuccess(w, http.StatusOK, expense, "Receipt uploaded successfully")
}

func (h *ExpenseHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if err := h.Repo.Deactivate(r.Context(), id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, nil, "Expense deactivated successfully")
}
