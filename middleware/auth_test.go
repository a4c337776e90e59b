package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scope strings as the tenant issues them per role
const (
	designerScopes   = ScopeReadOrders
	accountantScopes = ScopeReadOrders + " " + ScopeWriteOrders
	managerScopes    = ScopeReadOrders + " " + ScopeWriteOrders + " " + ScopeManageCatalog
)

func claimsWith(subject, role, scope string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: subject},
		CustomClaims:     &CustomClaims{Scope: scope, Role: role},
	}
}

func TestCustomClaims_HasScope(t *testing.T) {
	tests := []struct {
		role  string
		scope string
		want  map[string]bool
	}{
		{
			role:  "designer",
			scope: designerScopes,
			want:  map[string]bool{ScopeReadOrders: true, ScopeWriteOrders: false, ScopeManageCatalog: false},
		},
		{
			role:  "accountant",
			scope: accountantScopes,
			want:  map[string]bool{ScopeReadOrders: true, ScopeWriteOrders: true, ScopeManageCatalog: false},
		},
		{
			role:  "manager",
			scope: managerScopes,
			want:  map[string]bool{ScopeReadOrders: true, ScopeWriteOrders: true, ScopeManageCatalog: true},
		},
		{
			role:  "manager with padded scope",
			scope: "  " + ScopeManageCatalog + "\t" + ScopeReadOrders + "  ",
			want:  map[string]bool{ScopeReadOrders: true, ScopeWriteOrders: false, ScopeManageCatalog: true},
		},
		{
			role:  "no scopes",
			scope: "",
			want:  map[string]bool{ScopeReadOrders: false, ScopeWriteOrders: false, ScopeManageCatalog: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			claims := CustomClaims{Scope: tt.scope}
			for scope, want := range tt.want {
				assert.Equal(t, want, claims.HasScope(scope), scope)
			}
			assert.False(t, claims.HasScope("manage"), "prefixes never match")
			assert.False(t, claims.HasScope("read:orders write:orders"), "only single scopes match")
		})
	}
}

// scopedRouter mirrors the mock backend's guard layout. The claims for a
// request are taken from the test's table, not from a real token.
func scopedRouter(claims *validator.ValidatedClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set("user_id", claims.RegisteredClaims.Subject)
			c.Set("validated_claims", claims)
		}
		c.Next()
	})

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	api.GET("/orders", RequireScope(ScopeReadOrders), ok)
	api.PUT("/orders/:id", RequireScope(ScopeWriteOrders), ok)
	api.GET("/design-types", RequireScope(ScopeReadOrders), ok)
	api.POST("/design-types", RequireScope(ScopeManageCatalog), ok)
	api.PUT("/design-types/:id", RequireScope(ScopeManageCatalog), ok)
	api.DELETE("/design-types/:id", RequireScope(ScopeManageCatalog), ok)
	return r
}

func TestRequireScope(t *testing.T) {
	tests := []struct {
		name     string
		claims   *validator.ValidatedClaims
		method   string
		path     string
		want     int
		wantCode string
	}{
		{"designer lists orders", claimsWith("auth0|designer", "designer", designerScopes), http.MethodGet, "/api/orders", http.StatusOK, ""},
		{"designer cannot update an order", claimsWith("auth0|designer", "designer", designerScopes), http.MethodPut, "/api/orders/1", http.StatusForbidden, "INSUFFICIENT_SCOPE"},
		{"designer reads the catalog", claimsWith("auth0|designer", "designer", designerScopes), http.MethodGet, "/api/design-types", http.StatusOK, ""},
		{"accountant updates an order", claimsWith("auth0|accountant", "accountant", accountantScopes), http.MethodPut, "/api/orders/1", http.StatusOK, ""},
		{"accountant cannot add a design type", claimsWith("auth0|accountant", "accountant", accountantScopes), http.MethodPost, "/api/design-types", http.StatusForbidden, "INSUFFICIENT_SCOPE"},
		{"manager adds a design type", claimsWith("auth0|manager", "manager", managerScopes), http.MethodPost, "/api/design-types", http.StatusOK, ""},
		{"manager edits a design type", claimsWith("auth0|manager", "manager", managerScopes), http.MethodPut, "/api/design-types/6", http.StatusOK, ""},
		{"catalog scope alone cannot read orders", claimsWith("auth0|bot", "", ScopeManageCatalog), http.MethodGet, "/api/orders", http.StatusForbidden, "INSUFFICIENT_SCOPE"},
		{"foreign custom claims", &validator.ValidatedClaims{CustomClaims: nil}, http.MethodDelete, "/api/design-types/6", http.StatusForbidden, "INSUFFICIENT_SCOPE"},
		{"no claims at all", nil, http.MethodDelete, "/api/design-types/6", http.StatusUnauthorized, "MISSING_CLAIMS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			scopedRouter(tt.claims).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, tt.want, w.Code)
			if tt.wantCode == "" {
				return
			}
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.StatusCode)
			assert.Equal(t, []string{tt.wantCode}, body.Details)
			assert.False(t, body.TimeStamp.IsZero())
		})
	}
}

func TestEnsureValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ensure, err := EnsureValidToken(&config.Config{
		Auth0Domain:   "printshop.eu.auth0.com",
		Auth0Audience: "https://api.printshop.test",
	})
	require.NoError(t, err)

	reached := false
	r := gin.New()
	r.GET("/api/orders", ensure, RequireScope(ScopeReadOrders), func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no authorization header", ""},
		{"garbage bearer token", "Bearer not-a-jwt"},
		{"unsigned token shape", "Bearer eyJhbGciOiJub25lIn0.eyJzY29wZSI6InJlYWQ6b3JkZXJzIn0."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, reached, "scope check and handler never run")
			assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))

			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, []string{"INVALID_TOKEN"}, body.Details)
		})
	}
}

func TestContextAccessors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("after a validated manager token", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		claims := claimsWith("auth0|manager", "manager", managerScopes)
		c.Set("user_id", claims.RegisteredClaims.Subject)
		c.Set("validated_claims", claims)

		id, err := GetUserID(c)
		require.NoError(t, err)
		assert.Equal(t, "auth0|manager", id)

		got, err := GetClaims(c)
		require.NoError(t, err)
		assert.Same(t, claims, got)
		assert.Equal(t, "manager", GetRole(c))
	})

	t.Run("nothing in context", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		_, err := GetUserID(c)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "MISSING_USER_ID", authErr.Code)

		_, err = GetClaims(c)
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "MISSING_CLAIMS", authErr.Code)
		assert.Empty(t, GetRole(c))
	})

	t.Run("wrong types in context", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("user_id", 42)
		c.Set("validated_claims", "read:orders")

		_, err := GetUserID(c)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "INVALID_USER_ID", authErr.Code)

		_, err = GetClaims(c)
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "INVALID_CLAIMS", authErr.Code)
		assert.Equal(t, "Claims are not in the expected format", authErr.Error())
	})
}

func TestGetAccessToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   bool
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"scheme is case-insensitive", "bearer abc", "abc", false},
		{"missing header", "", "", true},
		{"basic auth", "Basic dXNlcjpwYXNz", "", true},
		{"empty token", "Bearer   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			token, err := GetAccessToken(c)
			if tt.wantErr {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, "MISSING_TOKEN", authErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
