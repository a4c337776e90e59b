package acceptance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/routes"
	"github.com/printshop/printshop-api/services"
	"github.com/printshop/printshop-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// AuthAcceptanceTestSuite checks the router as deployed with Auth0 enabled
type AuthAcceptanceTestSuite struct {
	suite.Suite
	server *httptest.Server
}

// SetupSuite starts one server for all tests
func (suite *AuthAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")

	db := testutil.NewTestDB(suite.T())
	suite.Require().NoError(services.SeedFixtures(db))
	config.SetDB(db)
	services.InitFileService(services.NewMockS3Service())
	services.InitDesignTypeService(services.NewDesignTypeService(services.DefaultDesignTypes()))

	router, err := routes.SetupRouter(&config.Config{
		Port:          "8080",
		GoEnv:         "test",
		LogLevel:      "info",
		Auth0Domain:   "test.auth0.com",
		Auth0Audience: "https://api.printshop.test",
		CORSOrigins:   []string{"http://localhost:3000"},
	}, zap.NewNop())
	suite.Require().NoError(err)

	suite.server = httptest.NewServer(router)
}

// TearDownSuite stops the server
func (suite *AuthAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
}

func (suite *AuthAcceptanceTestSuite) makeRequest(method, path, authHeader string) *http.Response {
	req, err := http.NewRequest(method, suite.server.URL+path, nil)
	suite.Require().NoError(err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if method == http.MethodOptions {
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		req.Header.Set("Access-Control-Request-Headers", "Authorization")
	}

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	return resp
}

func (suite *AuthAcceptanceTestSuite) TestPublicEndpoints() {
	resp := suite.makeRequest(http.MethodGet, "/api/health", "")
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	// Uploads stay public so image tags can load them; a missing file is 404, not 401
	resp = suite.makeRequest(http.MethodGet, "/api/uploads/proofing/missing.png", "")
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}

func (suite *AuthAcceptanceTestSuite) TestProtectedEndpointsRequireToken() {
	tests := []struct {
		name       string
		method     string
		path       string
		authHeader string
	}{
		{"order list without token", http.MethodGet, "/api/orders", ""},
		{"order update without token", http.MethodPut, "/api/orders/1", ""},
		{"design types without token", http.MethodGet, "/api/design-types", ""},
		{"profile without token", http.MethodGet, "/api/users/me", ""},
		{"invalid token", http.MethodGet, "/api/orders", "Bearer invalid-token"},
		{"malformed header", http.MethodGet, "/api/orders", "InvalidFormat token"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			resp := suite.makeRequest(tt.method, tt.path, tt.authHeader)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
			assert.NotEmpty(t, body.Error)
			assert.False(t, body.TimeStamp.IsZero())
		})
	}
}

func (suite *AuthAcceptanceTestSuite) TestInvalidTokenDetail() {
	resp := suite.makeRequest(http.MethodGet, "/api/orders", "Bearer invalid-token")
	defer resp.Body.Close()

	var body models.ErrorResponse
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(suite.T(), []string{"INVALID_TOKEN"}, body.Details)
}

func (suite *AuthAcceptanceTestSuite) TestCORSPreflightSkipsAuth() {
	resp := suite.makeRequest(http.MethodOptions, "/api/orders", "")
	defer resp.Body.Close()

	assert.Equal(suite.T(), http.StatusNoContent, resp.StatusCode)
	assert.Equal(suite.T(), "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

// TestAuthAcceptanceTestSuite runs the test suite
func TestAuthAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthAcceptanceTestSuite))
}
