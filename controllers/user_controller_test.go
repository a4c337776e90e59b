package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"github.com/printshop/printshop-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMockAuth0Server simulates Auth0's /userinfo endpoint keyed by access token
func setupMockAuth0Server(t *testing.T, userInfoMap map[string]*services.Auth0UserInfo) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		userInfo, exists := userInfoMap[token]
		if r.URL.Path != "/userinfo" || !exists {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userInfo)
	}))
	t.Cleanup(server.Close)

	previous := config.GetConfig()
	config.SetConfig(&config.Config{Auth0Domain: server.URL})
	t.Cleanup(func() { config.SetConfig(previous) })
}

func (e *testEnv) doWithToken(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name         string
		auth0ID      string
		role         string
		token        string
		wantStatus   int
		wantUsername string
		wantRole     models.UserRole
	}{
		{name: "Accountant from the role claim", auth0ID: "auth0|ke-toan", role: "accountant", token: "token-kt", wantStatus: http.StatusCreated, wantUsername: "ketoan", wantRole: models.RoleAccountant},
		{name: "Unknown role falls back to designer", auth0ID: "auth0|moi", role: "intern", token: "token-moi", wantStatus: http.StatusCreated, wantUsername: "moi", wantRole: models.RoleDesigner},
		{name: "Already registered", auth0ID: "auth0|manager", role: "manager", token: "token-dup", wantStatus: http.StatusConflict},
		{name: "Auth0 missing email", auth0ID: "auth0|noemail", token: "token-noemail", wantStatus: http.StatusBadRequest},
		{name: "Auth0 rejects token", auth0ID: "auth0|x", token: "token-bad", wantStatus: http.StatusInternalServerError},
		{name: "No bearer token", auth0ID: "auth0|x", token: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, testutil.MockAuth(tt.auth0ID, tt.role))
			setupMockAuth0Server(t, map[string]*services.Auth0UserInfo{
				"token-kt":      {Sub: "ignored", Email: "ketoan@printshop.test", Name: "Võ Kế Toán", Nickname: "ketoan"},
				"token-moi":     {Email: "moi@printshop.test", Name: "Nhân Viên Mới"},
				"token-dup":     {Email: "other@printshop.test", Name: "Dup"},
				"token-noemail": {Name: "No Email"},
			})

			w := env.doWithToken(t, http.MethodPost, "/api/users", tt.token)
			if tt.wantStatus != http.StatusCreated {
				requireError(t, w, tt.wantStatus)
				return
			}

			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			user := decode[models.User](t, w)
			assert.Equal(t, tt.auth0ID, user.Auth0ID, "the token subject wins over userinfo")
			assert.Equal(t, tt.wantUsername, user.Username)
			assert.Equal(t, tt.wantRole, user.Role)

			w = env.do(t, http.MethodGet, "/api/users/me", nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, user.ID, decode[models.User](t, w).ID)
		})
	}
}

func TestGetMyProfile(t *testing.T) {
	env := setupTestEnv(t, testutil.MockAuth("auth0|proofer", "proofer"))

	w := env.do(t, http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "proofer", decode[models.User](t, w).Username)

	env = setupTestEnv(t, testutil.MockAuth("auth0|stranger", ""))
	requireError(t, env.do(t, http.MethodGet, "/api/users/me", nil), http.StatusNotFound)

	env = setupTestEnv(t)
	requireError(t, env.do(t, http.MethodGet, "/api/users/me", nil), http.StatusUnauthorized)
}

func TestListUsers(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[models.PagedResult[models.User]](t, w)
	require.Equal(t, 3, page.Total)
	assert.Equal(t, "designer", page.Items[0].Username, "sorted by username")

	w = env.do(t, http.MethodGet, "/api/users?status=manager", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[models.PagedResult[models.User]](t, w)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, models.RoleManager, page.Items[0].Role)

	w = env.do(t, http.MethodGet, "/api/users/by-username/proofer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lê Văn Bình", decode[models.User](t, w).FullName)

	requireError(t, env.do(t, http.MethodGet, "/api/users/by-username/ghost", nil), http.StatusNotFound)
}

func TestDashboards(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/dashboard/manager", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	manager := decode[models.ManagerDashboard](t, w)
	assert.Equal(t, 2, manager.Orders.TotalOrders)
	assert.Equal(t, float64(2300000), manager.Orders.Revenue)
	assert.Equal(t, float64(1000000), manager.Orders.Deposits)
	assert.Equal(t, 1, manager.ProofingByStatus[models.ProofingStatusWaitingPlate])
	assert.Equal(t, float64(0), manager.ProductionCompletionRate)

	w = env.do(t, http.MethodGet, "/api/dashboard/employees/2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	employee := decode[models.EmployeeDashboard](t, w)
	assert.Equal(t, uint(2), employee.UserID)
	assert.Equal(t, 2, employee.Designs.Completed)
	assert.Equal(t, 1, employee.Designs.InProgress)
	assert.Equal(t, 0, employee.Designs.Pending)

	requireError(t, env.do(t, http.MethodGet, "/api/dashboard/employees/99", nil), http.StatusNotFound)
}
