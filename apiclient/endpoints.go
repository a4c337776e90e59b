package apiclient

import (
	"net/http"
	"strings"

	"github.com/printshop/printshop-api/models"
)

// ParamLocation says where a parameter travels.
type ParamLocation string

const (
	InPath  ParamLocation = "path"
	InQuery ParamLocation = "query"
	InBody  ParamLocation = "body"
	InForm  ParamLocation = "form"
)

// Parameter declares one input of an endpoint. Schema is a zero value of the
// Go type the parameter is validated against.
type Parameter struct {
	Name     string
	In       ParamLocation
	Schema   any
	Required bool
}

// ErrorSpec declares an error status the endpoint may answer with. Declared
// statuses carry a models.ErrorResponse body.
type ErrorSpec struct {
	Status      int
	Description string
}

// Endpoint is one operation of the REST contract.
type Endpoint struct {
	Method     string
	Path       string
	Alias      string
	Parameters []Parameter
	// Response is a zero value of the success body; nil for file downloads
	// and empty responses.
	Response any
	Errors   []ErrorSpec
}

// Declares reports whether status is a declared error of the endpoint.
func (e Endpoint) Declares(status int) bool {
	for _, spec := range e.Errors {
		if spec.Status == status {
			return true
		}
	}
	return false
}

// PathParams lists the :name placeholders of the path in order.
func (e Endpoint) PathParams() []string {
	var names []string
	for _, seg := range strings.Split(e.Path, "/") {
		if strings.HasPrefix(seg, ":") {
			names = append(names, seg[1:])
		}
	}
	return names
}

var standardErrors = []ErrorSpec{
	{Status: http.StatusBadRequest, Description: "Bad Request"},
	{Status: http.StatusUnauthorized, Description: "Unauthorized"},
	{Status: http.StatusForbidden, Description: "Forbidden"},
	{Status: http.StatusNotFound, Description: "Not Found"},
}

func withConflict() []ErrorSpec {
	return append(append([]ErrorSpec{}, standardErrors...),
		ErrorSpec{Status: http.StatusConflict, Description: "Conflict"})
}

func idParam(name string) Parameter {
	return Parameter{Name: name, In: InPath, Schema: uint(0), Required: true}
}

func queryParam(schema any) Parameter {
	return Parameter{Name: "params", In: InQuery, Schema: schema}
}

func bodyParam(schema any) Parameter {
	return Parameter{Name: "body", In: InBody, Schema: schema, Required: true}
}

var fileParam = Parameter{Name: "file", In: InForm, Schema: []byte(nil), Required: true}

// Endpoints is the REST contract, in declaration order.
var Endpoints = []Endpoint{
	// Orders
	{Method: http.MethodGet, Path: "/api/orders", Alias: "getOrders",
		Parameters: []Parameter{queryParam(models.ListOrdersParams{})},
		Response:   models.PagedResult[models.Order]{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/orders/:id", Alias: "getOrder",
		Parameters: []Parameter{idParam("id")},
		Response:   models.Order{}, Errors: standardErrors},
	{Method: http.MethodPut, Path: "/api/orders/:id", Alias: "updateOrder",
		Parameters: []Parameter{idParam("id"), bodyParam(models.UpdateOrderRequest{})},
		Response:   models.Order{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/orders/:id/timeline", Alias: "getOrderTimeline",
		Parameters: []Parameter{idParam("id")},
		Response:   []models.TimelineEntry{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/orders/:id/timeline", Alias: "addTimelineEntry",
		Parameters: []Parameter{idParam("id"), {Name: "text", In: InForm, Schema: "", Required: true}, {Name: "file", In: InForm, Schema: []byte(nil)}},
		Response:   models.TimelineEntry{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/exports/orders", Alias: "exportOrders",
		Parameters: []Parameter{queryParam(models.ListOrdersParams{})},
		Errors:     standardErrors},

	// Order details
	{Method: http.MethodPut, Path: "/api/order-details/:id", Alias: "updateOrderDetail",
		Parameters: []Parameter{idParam("id"), bodyParam(models.UpdateOrderDetailRequest{})},
		Response:   models.OrderDetail{}, Errors: withConflict()},
	{Method: http.MethodGet, Path: "/api/order-details/available", Alias: "getAvailableOrderDetails",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.OrderDetail]{}, Errors: standardErrors},

	// Customers
	{Method: http.MethodGet, Path: "/api/customers", Alias: "getCustomers",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.Customer]{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/customers/:id", Alias: "getCustomer",
		Parameters: []Parameter{idParam("id")},
		Response:   models.Customer{}, Errors: standardErrors},
	{Method: http.MethodPut, Path: "/api/customers/:id", Alias: "updateCustomer",
		Parameters: []Parameter{idParam("id"), bodyParam(models.UpdateCustomerRequest{})},
		Response:   models.Customer{}, Errors: standardErrors},

	// Designs and catalogs
	{Method: http.MethodGet, Path: "/api/designs", Alias: "getDesigns",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.Design]{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/designs/:id/file", Alias: "uploadDesignFile",
		Parameters: []Parameter{idParam("id"), fileParam},
		Response:   models.Design{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/material-types", Alias: "getMaterialTypes",
		Response: []models.MaterialType{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/plate-vendors", Alias: "getPlateVendors",
		Response: []models.PlateVendor{}, Errors: standardErrors},

	// Design types
	{Method: http.MethodGet, Path: "/api/design-types", Alias: "getDesignTypes",
		Response: []models.DesignType{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/design-types", Alias: "getActiveDesignTypes",
		Parameters: []Parameter{{Name: "active", In: InQuery, Schema: true}},
		Response:   []models.DesignType{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/design-types/:id", Alias: "getDesignType",
		Parameters: []Parameter{{Name: "id", In: InPath, Schema: "", Required: true}},
		Response:   models.DesignType{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/design-types", Alias: "createDesignType",
		Parameters: []Parameter{bodyParam(models.CreateDesignTypeRequest{})},
		Response:   models.DesignType{}, Errors: withConflict()},
	{Method: http.MethodPut, Path: "/api/design-types/:id", Alias: "updateDesignType",
		Parameters: []Parameter{{Name: "id", In: InPath, Schema: "", Required: true}, bodyParam(models.UpdateDesignTypeRequest{})},
		Response:   models.DesignType{}, Errors: withConflict()},
	{Method: http.MethodDelete, Path: "/api/design-types/:id", Alias: "deleteDesignType",
		Parameters: []Parameter{{Name: "id", In: InPath, Schema: "", Required: true}},
		Errors:     withConflict()},
	{Method: http.MethodPost, Path: "/api/design-types/generate-code", Alias: "generateDesignCode",
		Parameters: []Parameter{bodyParam(models.GenerateDesignCodeRequest{})},
		Response:   models.GenerateDesignCodeResponse{}, Errors: standardErrors},

	// Paper sizes
	{Method: http.MethodGet, Path: "/api/paper-sizes", Alias: "getPaperSizes",
		Response: []models.PaperSize{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/paper-sizes", Alias: "createPaperSize",
		Parameters: []Parameter{bodyParam(models.CreatePaperSizeRequest{})},
		Response:   models.PaperSize{}, Errors: withConflict()},

	// Proofing
	{Method: http.MethodGet, Path: "/api/proofing-orders", Alias: "getProofingOrders",
		Parameters: []Parameter{queryParam(models.ListProofingOrdersParams{})},
		Response:   models.PagedResult[models.ProofingOrder]{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/proofing-orders/:id", Alias: "getProofingOrder",
		Parameters: []Parameter{idParam("id")},
		Response:   models.ProofingOrder{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/proofing-orders", Alias: "createProofingOrder",
		Parameters: []Parameter{bodyParam(models.CreateProofingOrderRequest{})},
		Response:   models.ProofingOrder{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/proofing-orders/:id/designs", Alias: "addDesignsToProofingOrder",
		Parameters: []Parameter{idParam("id"), bodyParam(models.AddDesignsToProofingOrderRequest{})},
		Response:   models.ProofingOrder{}, Errors: withConflict()},
	{Method: http.MethodPost, Path: "/api/proofing-orders/:id/image", Alias: "uploadProofingImage",
		Parameters: []Parameter{idParam("id"), fileParam},
		Response:   models.ProofingOrder{}, Errors: standardErrors},

	// Production
	{Method: http.MethodGet, Path: "/api/productions", Alias: "getProductions",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.Production]{}, Errors: standardErrors},
	{Method: http.MethodPut, Path: "/api/productions/:id", Alias: "updateProduction",
		Parameters: []Parameter{idParam("id"), bodyParam(models.UpdateProductionRequest{})},
		Response:   models.Production{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/plate-exports", Alias: "getPlateExports",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.PlateExport]{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/plate-exports", Alias: "createPlateExport",
		Parameters: []Parameter{bodyParam(models.CreatePlateExportRequest{})},
		Response:   models.PlateExport{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/die-exports", Alias: "getDieExports",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.DieExport]{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/die-exports", Alias: "createDieExport",
		Parameters: []Parameter{bodyParam(models.CreateDieExportRequest{})},
		Response:   models.DieExport{}, Errors: standardErrors},

	// Accounting
	{Method: http.MethodGet, Path: "/api/payments", Alias: "getPayments",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.Payment]{}, Errors: standardErrors},
	{Method: http.MethodPost, Path: "/api/payments", Alias: "createPayment",
		Parameters: []Parameter{bodyParam(models.CreatePaymentRequest{})},
		Response:   models.Payment{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/invoices", Alias: "getInvoices",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.Invoice]{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/invoices/:id/export", Alias: "exportInvoice",
		Parameters: []Parameter{idParam("id")},
		Errors:     standardErrors},
	{Method: http.MethodGet, Path: "/api/delivery-notes", Alias: "getDeliveryNotes",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.DeliveryNote]{}, Errors: standardErrors},

	// Users
	{Method: http.MethodGet, Path: "/api/users", Alias: "getUsers",
		Parameters: []Parameter{queryParam(models.ListParams{})},
		Response:   models.PagedResult[models.User]{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/users/by-username/:username", Alias: "getUserByUsername",
		Parameters: []Parameter{{Name: "username", In: InPath, Schema: "", Required: true}},
		Response:   models.User{}, Errors: standardErrors},

	// Dashboards
	{Method: http.MethodGet, Path: "/api/dashboard/manager", Alias: "getManagerDashboard",
		Response: models.ManagerDashboard{}, Errors: standardErrors},
	{Method: http.MethodGet, Path: "/api/dashboard/employees/:id", Alias: "getEmployeeDashboard",
		Parameters: []Parameter{idParam("id")},
		Response:   models.EmployeeDashboard{}, Errors: standardErrors},

	{Method: http.MethodGet, Path: "/api/health", Alias: "health"},
}

var endpointsByAlias = func() map[string]Endpoint {
	m := make(map[string]Endpoint, len(Endpoints))
	for _, e := range Endpoints {
		m[e.Alias] = e
	}
	return m
}()

// Lookup finds an endpoint by alias.
func Lookup(alias string) (Endpoint, bool) {
	e, ok := endpointsByAlias[alias]
	return e, ok
}
