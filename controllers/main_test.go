package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"github.com/printshop/printshop-api/tests/testutil"
	"github.com/stretchr/testify/require"
)

// TestMain guards the database-backed controller tests
func TestMain(m *testing.M) {
	if env := os.Getenv("GO_ENV"); env != "test" {
		fmt.Fprintf(os.Stderr, "SAFETY CHECK FAILED: tests must run with GO_ENV=test (current: %q)\n", env)
		os.Exit(1)
	}

	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testEnv is a seeded database plus a router carrying every handler
type testEnv struct {
	router  *gin.Engine
	storage *services.MockS3Service
}

// setupTestEnv seeds fixtures into a private database and installs mock
// storage and a fresh design type catalog. Extra middleware runs before
// every handler.
func setupTestEnv(t *testing.T, middleware ...gin.HandlerFunc) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	require.NoError(t, services.SeedFixtures(db))
	config.SetDB(db)

	storage := services.NewMockS3Service()
	services.InitFileService(storage)
	services.InitDesignTypeService(services.NewDesignTypeService(services.DefaultDesignTypes()))

	router := gin.New()
	api := router.Group("/api", middleware...)

	api.GET("/orders", ListOrders)
	api.GET("/orders/:id", GetOrder)
	api.PUT("/orders/:id", UpdateOrder)
	api.GET("/orders/:id/timeline", ListTimeline)
	api.POST("/orders/:id/timeline", AddTimelineEntry)
	api.GET("/exports/orders", ExportOrders)
	api.PUT("/order-details/:id", UpdateOrderDetail)
	api.GET("/order-details/available", ListAvailableOrderDetails)

	api.GET("/customers", ListCustomers)
	api.GET("/customers/:id", GetCustomer)
	api.PUT("/customers/:id", UpdateCustomer)

	api.GET("/designs", ListDesigns)
	api.POST("/designs/:id/file", UploadDesignFile)
	api.GET("/material-types", ListMaterialTypes)
	api.GET("/plate-vendors", ListPlateVendors)
	api.GET("/design-types", ListDesignTypes)
	api.GET("/design-types/:id", GetDesignType)
	api.POST("/design-types", CreateDesignType)
	api.PUT("/design-types/:id", UpdateDesignType)
	api.DELETE("/design-types/:id", DeleteDesignType)
	api.POST("/design-types/generate-code", GenerateDesignCode)
	api.GET("/paper-sizes", ListPaperSizes)
	api.POST("/paper-sizes", CreatePaperSize)

	api.GET("/proofing-orders", ListProofingOrders)
	api.GET("/proofing-orders/:id", GetProofingOrder)
	api.POST("/proofing-orders", CreateProofingOrder)
	api.POST("/proofing-orders/:id/designs", AddDesignsToProofingOrder)
	api.POST("/proofing-orders/:id/image", UploadProofingImage)
	api.GET("/productions", ListProductions)
	api.PUT("/productions/:id", UpdateProduction)
	api.GET("/plate-exports", ListPlateExports)
	api.POST("/plate-exports", CreatePlateExport)
	api.GET("/die-exports", ListDieExports)
	api.POST("/die-exports", CreateDieExport)

	api.GET("/payments", ListPayments)
	api.POST("/payments", CreatePayment)
	api.GET("/invoices", ListInvoices)
	api.GET("/invoices/:id/export", ExportInvoice)
	api.GET("/delivery-notes", ListDeliveryNotes)

	api.POST("/users", CreateUser)
	api.GET("/users/me", GetMyProfile)
	api.GET("/users", ListUsers)
	api.GET("/users/by-username/:username", GetUserByUsername)
	api.GET("/dashboard/manager", GetManagerDashboard)
	api.GET("/dashboard/employees/:id", GetEmployeeDashboard)

	api.GET("/uploads/*key", GetUploadedFile)

	return &testEnv{router: router, storage: storage}
}

// do sends a request with an optional JSON body
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// upload posts a multipart form with the given fields and an optional file
func (e *testEnv) upload(t *testing.T, path string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// requireError checks the status and the ErrorResponse body
func requireError(t *testing.T, w *httptest.ResponseRecorder, status int) models.ErrorResponse {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	resp := decode[models.ErrorResponse](t, w)
	require.Equal(t, status, resp.StatusCode)
	require.NotEmpty(t, resp.Error)
	require.NotNil(t, resp.Details)
	return resp
}
