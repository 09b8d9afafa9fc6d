package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/auth"
	"fleetstock/gate"
	"fleetstock/handlers"
	"fleetstock/models"
	"fleetstock/repository"
	"fleetstock/response"
)

// memAccounts is the minimal in-memory store the mounted routes touch.
type memAccounts struct {
	accounts map[string]*models.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: make(map[string]*models.Account)}
}

func (m *memAccounts) seed(a *models.Account) *models.Account {
	a.ID = primitive.NewObjectID()
	a.Active = true
	m.accounts[a.ID.Hex()] = a
	return a
}

func (m *memAccounts) Create(_ context.Context, account *models.Account) error {
	m.seed(account)
	return nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			copy := *a
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) GetByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	a, ok := m.accounts[id.Hex()]
	if !ok || !a.Active {
		return nil, nil
	}
	copy := *a
	return &copy, nil
}

func (m *memAccounts) List(_ context.Context, page, limit int64) (*models.Page, error) {
	out := []*models.Account{}
	for _, a := range m.accounts {
		if a.Active {
			c := *a
			c.Password = ""
			out = append(out, &c)
		}
	}
	return &models.Page{Data: out, Total: int64(len(out)), Page: page, Limit: limit}, nil
}

func (m *memAccounts) ListByRole(_ context.Context, role models.Role) ([]*models.Account, error) {
	out := []*models.Account{}
	for _, a := range m.accounts {
		if a.Active && a.Role == role {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memAccounts) Update(_ context.Context, id primitive.ObjectID, update repository.AccountUpdate) (*models.Account, error) {
	a, ok := m.accounts[id.Hex()]
	if !ok {
		return nil, nil
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	copy := *a
	return &copy, nil
}

func (m *memAccounts) Deactivate(_ context.Context, id primitive.ObjectID) error {
	if a, ok := m.accounts[id.Hex()]; ok {
		a.Active = false
	}
	return nil
}

func (m *memAccounts) UpdateLastLogin(_ context.Context, id primitive.ObjectID, t time.Time) error {
	if a, ok := m.accounts[id.Hex()]; ok {
		a.LastLoginAt = &t
	}
	return nil
}

func (m *memAccounts) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, a := range m.accounts {
		if a.Active {
			n++
		}
	}
	return n, nil
}

func newTestServer(t *testing.T) (http.Handler, *memAccounts, *auth.TokenManager) {
	t.Helper()
	accounts := newMemAccounts()
	tokens := auth.NewTokenManager("routes-test-secret", "fleetstock", time.Hour)
	g := gate.New(tokens)
	h := Handlers{
		Auth:      &handlers.AuthHandler{Repo: accounts, Tokens: tokens},
		Accounts:  &handlers.AccountHandler{Repo: accounts},
		Products:  &handlers.ProductHandler{},
		Cars:      &handlers.CarHandler{},
		Expenses:  &handlers.ExpenseHandler{},
		Dashboard: &handlers.DashboardHandler{Accounts: accounts},
		Reports:   &handlers.ReportHandler{},
	}
	return SetupRoutes(g, h), accounts, tokens
}

func tokenFor(t *testing.T, tokens *auth.TokenManager, account *models.Account) string {
	t.Helper()
	token, err := tokens.Issue(account)
	require.NoError(t, err)
	return token
}

func get(router http.Handler, path, token string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := get(router, "/api/users", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp response.ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Authentication required", resp.Error)
}

func TestDriverCannotListAccounts(t *testing.T) {
	router, accounts, tokens := newTestServer(t)
	driver := accounts.seed(&models.Account{Name: "Driver", Email: "d@example.com", Role: models.RoleDriver})

	rec := get(router, "/api/users", tokenFor(t, tokens, driver))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var resp response.ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data) // no account data may leak
}

func TestAdminListsAccounts(t *testing.T) {
	router, accounts, tokens := newTestServer(t)
	admin := accounts.seed(&models.Account{Name: "Admin", Email: "a@example.com", Role: models.RoleAdmin})
	accounts.seed(&models.Account{Name: "Driver", Email: "d@example.com", Role: models.RoleDriver})

	rec := get(router, "/api/users", tokenFor(t, tokens, admin))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp response.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Total)
}

func TestAdminOverviewIsSuperAdminOnly(t *testing.T) {
	router, accounts, tokens := newTestServer(t)
	admin := accounts.seed(&models.Account{Name: "Admin", Email: "a@example.com", Role: models.RoleAdmin})
	super := accounts.seed(&models.Account{Name: "Root", Email: "root@example.com", Role: models.RoleSuperAdmin})

	denied := get(router, "/api/admin/overview", tokenFor(t, tokens, admin))
	assert.Equal(t, http.StatusForbidden, denied.Code)

	allowed := get(router, "/api/admin/overview", tokenFor(t, tokens, super))
	assert.Equal(t, http.StatusOK, allowed.Code)
}

func TestSuperAdminDoesNotSatisfyAdminOnlyRoute(t *testing.T) {
	router, accounts, tokens := newTestServer(t)
	super := accounts.seed(&models.Account{Name: "Root", Email: "root@example.com", Role: models.RoleSuperAdmin})

	rec := get(router, "/api/reports/expenses?year=2026&month=1", tokenFor(t, tokens, super))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginFlowEndToEnd(t *testing.T) {
	router, accounts, _ := newTestServer(t)

	hash, err := auth.HashPassword("open-sesame-42")
	require.NoError(t, err)
	accounts.seed(&models.Account{Name: "Admin", Email: "a@example.com", Password: hash, Role: models.RoleAdmin})

	body, err := json.Marshal(map[string]string{"email": "a@example.com", "password": "open-sesame-42"})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	// the freshly issued token opens protected routes
	profile := get(router, "/api/auth/profile", token)
	assert.Equal(t, http.StatusOK, profile.Code)
}

func TestPreflightBypassesGate(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
