package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServerStartup is an acceptance test that verifies the server can start
func TestServerStartup(t *testing.T) {
	router := setupRouter(t)
	assert.NotNil(t, router, "Router should be initialized")
}

// TestAPIHealthEndpointAcceptance is an end-to-end acceptance test over a real listener
func TestAPIHealthEndpointAcceptance(t *testing.T) {
	server := httptest.NewServer(setupRouter(t))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/health")
	require.NoError(t, err, "Should be able to reach the server")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Health endpoint should return 200 OK")

	var response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response), "Response should be valid JSON")

	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "Print Shop API is running", response.Message)
}

// TestHealthEndpointAvailability tests that the health endpoint is available immediately
func TestHealthEndpointAvailability(t *testing.T) {
	router := setupRouter(t)

	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest("GET", "/api/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("Request %d should succeed", i+1))

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "ok", response["status"], fmt.Sprintf("Request %d should report ok", i+1))
	}
}

// TestHealthEndpointResponseTime tests that the endpoint responds quickly
func TestHealthEndpointResponseTime(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	start := time.Now()
	router.ServeHTTP(w, req)
	duration := time.Since(start)

	assert.Less(t, duration, 100*time.Millisecond, "Health endpoint should respond in less than 100ms")
}
