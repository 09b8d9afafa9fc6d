package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fleetstock/apierr"
	"fleetstock/models"
	"fleetstock/repository"
	"fleetstock/response"
)

// ReportGenerator renders a monthly expense report to PDF bytes.
type ReportGenerator func(ctx context.Context, period time.Time, expenses []*models.Expense) ([]byte, error)

type ReportHandler struct {
	Repo     repository.ExpenseRepository
	Generate ReportGenerator
	Storage  ReceiptStorage
	SavePath string
}

// ExpensesPDF renders the expense report for ?year=&month=, uploads it to
// object storage and returns its URL. Without configured storage the file
// is kept under the local report directory instead.
func (h *ReportHandler) ExpensesPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		response.WriteError(w, apierr.Validation("year is required and must be a four-digit year"))
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.WriteError(w, apierr.Validation("month is required and must be 1-12"))
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	expenses, err := h.Repo.ListRange(r.Context(), from, to)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if len(expenses) == 0 {
		response.WriteError(w, apierr.NotFound("Expense report data"))
		return
	}

	pdfBytes, err := h.Generate(r.Context(), from, expenses)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	filename := fmt.Sprintf("expenses_%04d_%02d_%d.pdf", year, month, time.Now().Unix())

	if h.Storage != nil {
		url, err := h.Storage.Upload(r.Context(), pdfBytes, "reports/"+filename, "application/pdf")
		if err != nil {
			response.WriteError(w, err)
			return
		}
		response.WriteSuccess(w, http.StatusOK, map[string]string{"file": filename, "url": url}, "Report generated successfully")
		return
	}

	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./reports"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		response.WriteError(w, err)
		return
	}
	if err := os.WriteFile(filepath.Join(saveDir, filename), pdfBytes, 0644); err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteSuccess(w, http.StatusOK, map[string]string{"file": filename}, "Report generated successfully")
}
