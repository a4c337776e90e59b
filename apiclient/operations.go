package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/utils"
)

func call[T any](ctx context.Context, c *Client, req request) (*T, error) {
	var out T
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func callList[T any](ctx context.Context, c *Client, req request) ([]T, error) {
	var out []T
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func idPath(id uint) (map[string]string, error) {
	if err := utils.ValidateID("id", id); err != nil {
		return nil, err
	}
	return map[string]string{"id": strconv.FormatUint(uint64(id), 10)}, nil
}

func stringPath(name, value string) (map[string]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, utils.NewValidationError(name, "required", "")
	}
	return map[string]string{name: value}, nil
}

// byID calls an endpoint whose only input is the :id path parameter.
func byID[T any](ctx context.Context, c *Client, alias string, id uint) (*T, error) {
	path, err := idPath(id)
	if err != nil {
		return nil, err
	}
	return call[T](ctx, c, request{alias: alias, path: path})
}

// updateByID validates body and sends it to an :id endpoint.
func updateByID[T any](ctx context.Context, c *Client, alias string, id uint, body any) (*T, error) {
	path, err := idPath(id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(body); err != nil {
		return nil, err
	}
	return call[T](ctx, c, request{alias: alias, path: path, body: body})
}

// create validates body and posts it.
func create[T any](ctx context.Context, c *Client, alias string, body any) (*T, error) {
	if err := utils.ValidateStruct(body); err != nil {
		return nil, err
	}
	return call[T](ctx, c, request{alias: alias, body: body})
}

type queryEncoder interface {
	Query() url.Values
}

// page validates list params and fetches one page.
func page[T any](ctx context.Context, c *Client, alias string, params queryEncoder) (*models.PagedResult[T], error) {
	if err := utils.ValidateStruct(params); err != nil {
		return nil, err
	}
	result, err := call[models.PagedResult[T]](ctx, c, request{alias: alias, query: params.Query()})
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s returned size=%d total=%d totalPages=%d with %d items",
			ErrInvalidResponse, alias, result.Size, result.Total, result.TotalPages, len(result.Items))
	}
	return result, nil
}

// Orders

func (c *Client) GetOrders(ctx context.Context, params models.ListOrdersParams) (*models.PagedResult[models.Order], error) {
	return page[models.Order](ctx, c, "getOrders", params)
}

func (c *Client) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return byID[models.Order](ctx, c, "getOrder", id)
}

// UpdateOrder sends a partial update. Unset fields are not transmitted.
func (c *Client) UpdateOrder(ctx context.Context, id uint, req models.UpdateOrderRequest) (*models.Order, error) {
	return updateByID[models.Order](ctx, c, "updateOrder", id, req)
}

func (c *Client) GetOrderTimeline(ctx context.Context, orderID uint) ([]models.TimelineEntry, error) {
	path, err := idPath(orderID)
	if err != nil {
		return nil, err
	}
	return callList[models.TimelineEntry](ctx, c, request{alias: "getOrderTimeline", path: path})
}

// AddTimelineEntry posts a note with an optional attachment.
func (c *Client) AddTimelineEntry(ctx context.Context, orderID uint, req models.CreateTimelineEntryRequest, attachment *File) (*models.TimelineEntry, error) {
	path, err := idPath(orderID)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return call[models.TimelineEntry](ctx, c, request{
		alias:  "addTimelineEntry",
		path:   path,
		fields: map[string]string{"text": req.Text},
		file:   attachment,
	})
}

// ExportOrders downloads the filtered order list as CSV.
func (c *Client) ExportOrders(ctx context.Context, params models.ListOrdersParams) (*FileDownload, error) {
	if err := utils.ValidateStruct(params); err != nil {
		return nil, err
	}
	return c.download(ctx, request{alias: "exportOrders", query: params.Query()})
}

// Order details

func (c *Client) UpdateOrderDetail(ctx context.Context, id uint, req models.UpdateOrderDetailRequest) (*models.OrderDetail, error) {
	return updateByID[models.OrderDetail](ctx, c, "updateOrderDetail", id, req)
}

// GetAvailableOrderDetails lists order lines that still have quantity to proof.
func (c *Client) GetAvailableOrderDetails(ctx context.Context, params models.ListParams) (*models.PagedResult[models.OrderDetail], error) {
	return page[models.OrderDetail](ctx, c, "getAvailableOrderDetails", params)
}

// Customers

func (c *Client) GetCustomers(ctx context.Context, params models.ListParams) (*models.PagedResult[models.Customer], error) {
	return page[models.Customer](ctx, c, "getCustomers", params)
}

func (c *Client) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	return byID[models.Customer](ctx, c, "getCustomer", id)
}

func (c *Client) UpdateCustomer(ctx context.Context, id uint, req models.UpdateCustomerRequest) (*models.Customer, error) {
	return updateByID[models.Customer](ctx, c, "updateCustomer", id, req)
}

// Designs and catalogs

func (c *Client) GetDesigns(ctx context.Context, params models.ListParams) (*models.PagedResult[models.Design], error) {
	return page[models.Design](ctx, c, "getDesigns", params)
}

// UploadDesignFile attaches the artwork file to a design.
func (c *Client) UploadDesignFile(ctx context.Context, designID uint, file File) (*models.Design, error) {
	path, err := idPath(designID)
	if err != nil {
		return nil, err
	}
	return call[models.Design](ctx, c, request{alias: "uploadDesignFile", path: path, file: &file})
}

func (c *Client) GetMaterialTypes(ctx context.Context) ([]models.MaterialType, error) {
	return callList[models.MaterialType](ctx, c, request{alias: "getMaterialTypes"})
}

func (c *Client) GetPlateVendors(ctx context.Context) ([]models.PlateVendor, error) {
	return callList[models.PlateVendor](ctx, c, request{alias: "getPlateVendors"})
}

// Design types

func (c *Client) GetDesignTypes(ctx context.Context) ([]models.DesignType, error) {
	return callList[models.DesignType](ctx, c, request{alias: "getDesignTypes"})
}

func (c *Client) GetActiveDesignTypes(ctx context.Context) ([]models.DesignType, error) {
	return callList[models.DesignType](ctx, c, request{
		alias: "getActiveDesignTypes",
		query: url.Values{"active": []string{"true"}},
	})
}

func (c *Client) GetDesignType(ctx context.Context, id string) (*models.DesignType, error) {
	path, err := stringPath("id", id)
	if err != nil {
		return nil, err
	}
	return call[models.DesignType](ctx, c, request{alias: "getDesignType", path: path})
}

func (c *Client) CreateDesignType(ctx context.Context, req models.CreateDesignTypeRequest) (*models.DesignType, error) {
	return create[models.DesignType](ctx, c, "createDesignType", req)
}

func (c *Client) UpdateDesignType(ctx context.Context, id string, req models.UpdateDesignTypeRequest) (*models.DesignType, error) {
	path, err := stringPath("id", id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return call[models.DesignType](ctx, c, request{alias: "updateDesignType", path: path, body: req})
}

func (c *Client) DeleteDesignType(ctx context.Context, id string) error {
	path, err := stringPath("id", id)
	if err != nil {
		return err
	}
	return c.do(ctx, request{alias: "deleteDesignType", path: path}, nil)
}

// GenerateDesignCode asks the backend for the code of a new design.
func (c *Client) GenerateDesignCode(ctx context.Context, req models.GenerateDesignCodeRequest) (string, error) {
	resp, err := create[models.GenerateDesignCodeResponse](ctx, c, "generateDesignCode", req)
	if err != nil {
		return "", err
	}
	return resp.Code, nil
}

// Paper sizes

func (c *Client) GetPaperSizes(ctx context.Context) ([]models.PaperSize, error) {
	return callList[models.PaperSize](ctx, c, request{alias: "getPaperSizes"})
}

func (c *Client) CreatePaperSize(ctx context.Context, req models.CreatePaperSizeRequest) (*models.PaperSize, error) {
	return create[models.PaperSize](ctx, c, "createPaperSize", req)
}

// Proofing

func (c *Client) GetProofingOrders(ctx context.Context, params models.ListProofingOrdersParams) (*models.PagedResult[models.ProofingOrder], error) {
	return page[models.ProofingOrder](ctx, c, "getProofingOrders", params)
}

func (c *Client) GetProofingOrder(ctx context.Context, id uint) (*models.ProofingOrder, error) {
	return byID[models.ProofingOrder](ctx, c, "getProofingOrder", id)
}

func (c *Client) CreateProofingOrder(ctx context.Context, req models.CreateProofingOrderRequest) (*models.ProofingOrder, error) {
	return create[models.ProofingOrder](ctx, c, "createProofingOrder", req)
}

// AddDesignsToProofingOrder allocates a batch of order lines in one call.
func (c *Client) AddDesignsToProofingOrder(ctx context.Context, proofingOrderID uint, req models.AddDesignsToProofingOrderRequest) (*models.ProofingOrder, error) {
	return updateByID[models.ProofingOrder](ctx, c, "addDesignsToProofingOrder", proofingOrderID, req)
}

func (c *Client) UploadProofingImage(ctx context.Context, proofingOrderID uint, file File) (*models.ProofingOrder, error) {
	path, err := idPath(proofingOrderID)
	if err != nil {
		return nil, err
	}
	return call[models.ProofingOrder](ctx, c, request{alias: "uploadProofingImage", path: path, file: &file})
}

// Production

func (c *Client) GetProductions(ctx context.Context, params models.ListParams) (*models.PagedResult[models.Production], error) {
	return page[models.Production](ctx, c, "getProductions", params)
}

func (c *Client) UpdateProduction(ctx context.Context, id uint, req models.UpdateProductionRequest) (*models.Production, error) {
	return updateByID[models.Production](ctx, c, "updateProduction", id, req)
}

func (c *Client) GetPlateExports(ctx context.Context, params models.ListParams) (*models.PagedResult[models.PlateExport], error) {
	return page[models.PlateExport](ctx, c, "getPlateExports", params)
}

func (c *Client) CreatePlateExport(ctx context.Context, req models.CreatePlateExportRequest) (*models.PlateExport, error) {
	return create[models.PlateExport](ctx, c, "createPlateExport", req)
}

func (c *Client) GetDieExports(ctx context.Context, params models.ListParams) (*models.PagedResult[models.DieExport], error) {
	return page[models.DieExport](ctx, c, "getDieExports", params)
}

func (c *Client) CreateDieExport(ctx context.Context, req models.CreateDieExportRequest) (*models.DieExport, error) {
	return create[models.DieExport](ctx, c, "createDieExport", req)
}

// Accounting

func (c *Client) GetPayments(ctx context.Context, params models.ListParams) (*models.PagedResult[models.Payment], error) {
	return page[models.Payment](ctx, c, "getPayments", params)
}

func (c *Client) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	return create[models.Payment](ctx, c, "createPayment", req)
}

func (c *Client) GetInvoices(ctx context.Context, params models.ListParams) (*models.PagedResult[models.Invoice], error) {
	return page[models.Invoice](ctx, c, "getInvoices", params)
}

// ExportInvoice downloads one invoice as a file.
func (c *Client) ExportInvoice(ctx context.Context, id uint) (*FileDownload, error) {
	path, err := idPath(id)
	if err != nil {
		return nil, err
	}
	return c.download(ctx, request{alias: "exportInvoice", path: path})
}

func (c *Client) GetDeliveryNotes(ctx context.Context, params models.ListParams) (*models.PagedResult[models.DeliveryNote], error) {
	return page[models.DeliveryNote](ctx, c, "getDeliveryNotes", params)
}

// Users

func (c *Client) GetUsers(ctx context.Context, params models.ListParams) (*models.PagedResult[models.User], error) {
	return page[models.User](ctx, c, "getUsers", params)
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	path, err := stringPath("username", username)
	if err != nil {
		return nil, err
	}
	return call[models.User](ctx, c, request{alias: "getUserByUsername", path: path})
}

// Dashboards

func (c *Client) GetManagerDashboard(ctx context.Context) (*models.ManagerDashboard, error) {
	return call[models.ManagerDashboard](ctx, c, request{alias: "getManagerDashboard"})
}

func (c *Client) GetEmployeeDashboard(ctx context.Context, userID uint) (*models.EmployeeDashboard, error) {
	return byID[models.EmployeeDashboard](ctx, c, "getEmployeeDashboard", userID)
}

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{alias: "health"}, nil)
}
