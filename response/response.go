// Package response shapes every outcome into the uniform envelope the
// mobile client expects. It is the single layer translating faults into
// wire-level error bodies.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetstock/apierr"
	"fleetstock/models"
)

// ApiResponse is the success/error envelope. Exactly one envelope shape is
// emitted per request.
type ApiResponse struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

// PaginatedResponse is the list envelope. It intentionally carries no
// "success" field; the existing client depends on this exact shape.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// Normalize maps a raw handler result onto an envelope. Already-shaped
// envelopes pass through unchanged, page results are repackaged with a
// recomputed totalPages, and anything else wraps as a success.
func Normalize(v any) any {
	switch t := v.(type) {
	case ApiResponse:
		return t
	case *ApiResponse:
		return *t
	case PaginatedResponse:
		return t
	case *PaginatedResponse:
		return *t
	case models.Page:
		return Paginate(t)
	case *models.Page:
		return Paginate(*t)
	default:
		return ApiResponse{Success: true, Data: v}
	}
}

// Paginate repackages a raw page, computing totalPages = ceil(total/limit).
func Paginate(p models.Page) PaginatedResponse {
	var totalPages int64
	if p.Limit > 0 {
		totalPages = (p.Total + p.Limit - 1) / p.Limit
	}
	return PaginatedResponse{
		Data:       p.Data,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}

// WriteJSON writes any payload through Normalize.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Normalize(payload))
}

// WriteSuccess wraps data in the success envelope.
func WriteSuccess(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, ApiResponse{Success: true, Data: data, Message: message})
}

// WritePage writes a raw page as the paginated envelope.
func WritePage(w http.ResponseWriter, p *models.Page) {
	WriteJSON(w, http.StatusOK, Paginate(*p))
}

// WriteError translates a fault into the error envelope and status code.
func WriteError(w http.ResponseWriter, err error) {
	status, body := errorEnvelope(err)
	WriteJSON(w, status, body)
}

// errorEnvelope applies the fault-to-status mapping, first match wins:
//  1. declared status and message → verbatim (detail arrays join with ", "
//     for the summary and survive in the details field)
//  2. validation kind → 400 "Validation failed"
//  3. malformed id kind → 400 "Invalid ID format"
//  4. uniqueness kind → 409 "Duplicate entry"
//  5. anything else → 500 "Internal server error"
func errorEnvelope(err error) (int, ApiResponse) {
	var fault *apierr.Error
	if errors.As(err, &fault) {
		if fault.Status != 0 && (fault.Message != "" || len(fault.Details) > 0) {
			return fault.Status, ApiResponse{
				Success: false,
				Error:   fault.Summary(),
				Details: fault.Details,
			}
		}
		switch fault.Kind {
		case apierr.KindValidation:
			summary := fault.Summary()
			if summary == "" {
				summary = "Validation failed"
			}
			return http.StatusBadRequest, ApiResponse{
				Success: false,
				Error:   summary,
				Message: "Validation failed",
				Details: fault.Details,
			}
		case apierr.KindInvalidID:
			return http.StatusBadRequest, ApiResponse{
				Success: false,
				Error:   "Invalid ID format",
			}
		case apierr.KindDuplicate:
			return http.StatusConflict, ApiResponse{
				Success: false,
				Error:   "Duplicate entry",
			}
		}
	}
	return http.StatusInternalServerError, ApiResponse{
		Success: false,
		Error:   "Internal server error",
	}
}
