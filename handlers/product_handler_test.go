package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetstock/models"
	"fleetstock/response"
)

func productRouter(h *ProductHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/products", h.Create)
	r.Get("/api/products", h.List)
	r.Get("/api/products/{id}", h.Get)
	r.Put("/api/products/{id}/stock", h.AdjustStock)
	r.Delete("/api/products/{id}", h.Deactivate)
	return r
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	products := newFakeProductRepo()
	router := productRouter(&ProductHandler{Repo: products})

	first := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"name": "Brake pad", "sku": "BP-100", "price": 42.5, "quantity": 10,
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"name": "Brake pad v2", "sku": "BP-100", "price": 45.0, "quantity": 3,
	})
	assert.Equal(t, http.StatusConflict, second.Code)

	var resp response.ApiResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Duplicate entry", resp.Error)
}

func TestCreateProductValidation(t *testing.T) {
	router := productRouter(&ProductHandler{Repo: newFakeProductRepo()})

	rec := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"sku": "", "price": -1.0, "quantity": -2,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp response.ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Len(t, resp.Details, 4)
}

func TestDeactivatedSKUCanBeReused(t *testing.T) {
	products := newFakeProductRepo()
	router := productRouter(&ProductHandler{Repo: products})

	first := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"name": "Oil filter", "sku": "OF-7", "price": 12.0, "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, first.Code)

	var created response.ApiResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &created))
	data := created.Data.(map[string]any)
	id := data["id"].(string)

	del := doJSON(t, router, http.MethodDelete, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, del.Code)

	// the freed SKU is accepted again once the old product is inactive
	again := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"name": "Oil filter mk2", "sku": "OF-7", "price": 13.0, "quantity": 8,
	})
	assert.Equal(t, http.StatusCreated, again.Code)
}

func TestAdjustStock(t *testing.T) {
	products := newFakeProductRepo()
	router := productRouter(&ProductHandler{Repo: products})

	product := &models.Product{Name: "Coolant", SKU: "CL-1", Quantity: 10}
	require.NoError(t, products.Create(context.Background(), product))
	id := product.ID.Hex()

	rec := doJSON(t, router, http.MethodPut, "/api/products/"+id+"/stock", map[string]any{"delta": -4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(6), products.products[id].Quantity)

	zero := doJSON(t, router, http.MethodPut, "/api/products/"+id+"/stock", map[string]any{"delta": 0})
	assert.Equal(t, http.StatusBadRequest, zero.Code)
}

func TestListProductsFiltersByCategory(t *testing.T) {
	products := newFakeProductRepo()
	router := productRouter(&ProductHandler{Repo: products})

	require.NoError(t, products.Create(context.Background(), &models.Product{Name: "Pad", SKU: "A1", Category: "brakes"}))
	require.NoError(t, products.Create(context.Background(), &models.Product{Name: "Disc", SKU: "A2", Category: "brakes"}))
	require.NoError(t, products.Create(context.Background(), &models.Product{Name: "Bulb", SKU: "A3", Category: "lighting"}))

	rec := doJSON(t, router, http.MethodGet, "/api/products?category=brakes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, int64(1), resp.TotalPages)
}
