package models

import (
	"net/url"
	"strconv"
	"time"
)

// MaxSheetQuantity is the largest sheet count the backend accepts (int32).
const MaxSheetQuantity = 2147483647

// UpdateOrderRequest is a partial update of an order. Unset fields are left
// alone, null fields are cleared.
type UpdateOrderRequest struct {
	Status           Nullable[OrderStatus] `json:"status,omitzero" validate:"omitempty,oneof=pending designing waiting_for_proofing in_production completed delivered cancelled"`
	TotalAmount      Nullable[float64]     `json:"totalAmount,omitzero" validate:"omitempty,gte=0"`
	DepositAmount    Nullable[float64]     `json:"depositAmount,omitzero" validate:"omitempty,gte=0"`
	PaymentMethod    Nullable[string]      `json:"paymentMethod,omitzero" validate:"omitempty,max=50"`
	DeliveryDate     Nullable[time.Time]   `json:"deliveryDate,omitzero"`
	Note             Nullable[string]      `json:"note,omitzero" validate:"omitempty,max=2000"`
	RecipientName    Nullable[string]      `json:"recipientName,omitzero" validate:"omitempty,max=255"`
	RecipientPhone   Nullable[string]      `json:"recipientPhone,omitzero" validate:"omitempty,max=20"`
	RecipientAddress Nullable[string]      `json:"recipientAddress,omitzero" validate:"omitempty,max=500"`
}

// Updates converts the request into a column update map.
func (r UpdateOrderRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	r.Status.Apply(updates, "status")
	r.TotalAmount.Apply(updates, "total_amount")
	r.DepositAmount.Apply(updates, "deposit_amount")
	r.PaymentMethod.Apply(updates, "payment_method")
	r.DeliveryDate.Apply(updates, "delivery_date")
	r.Note.Apply(updates, "note")
	r.RecipientName.Apply(updates, "recipient_name")
	r.RecipientPhone.Apply(updates, "recipient_phone")
	r.RecipientAddress.Apply(updates, "recipient_address")
	return updates
}

// UpdateOrderDetailRequest is a partial update of one order line.
type UpdateOrderDetailRequest struct {
	Quantity     Nullable[int]             `json:"quantity,omitzero" validate:"omitempty,gte=0"`
	UnitPrice    Nullable[float64]         `json:"unitPrice,omitzero" validate:"omitempty,gte=0"`
	Requirements Nullable[string]          `json:"requirements,omitzero" validate:"omitempty,max=2000"`
	ItemStatus   Nullable[OrderItemStatus] `json:"itemStatus,omitzero" validate:"omitempty,oneof=pending designing proofing in_production completed cancelled"`
}

// Updates converts the request into a column update map.
func (r UpdateOrderDetailRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	r.Quantity.Apply(updates, "quantity")
	r.UnitPrice.Apply(updates, "unit_price")
	r.Requirements.Apply(updates, "requirements")
	r.ItemStatus.Apply(updates, "item_status")
	return updates
}

// UpdateCustomerRequest is a partial update of a customer.
type UpdateCustomerRequest struct {
	Name        Nullable[string] `json:"name,omitzero" validate:"omitempty,max=255"`
	CompanyName Nullable[string] `json:"companyName,omitzero" validate:"omitempty,max=255"`
	Phone       Nullable[string] `json:"phone,omitzero" validate:"omitempty,max=20"`
	Email       Nullable[string] `json:"email,omitzero" validate:"omitempty,email"`
	Address     Nullable[string] `json:"address,omitzero" validate:"omitempty,max=500"`
	TaxCode     Nullable[string] `json:"taxCode,omitzero" validate:"omitempty,max=20"`
}

// Updates converts the request into a column update map.
func (r UpdateCustomerRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	r.Name.Apply(updates, "name")
	r.CompanyName.Apply(updates, "company_name")
	r.Phone.Apply(updates, "phone")
	r.Email.Apply(updates, "email")
	r.Address.Apply(updates, "address")
	r.TaxCode.Apply(updates, "tax_code")
	return updates
}

// CreateDesignTypeRequest creates a design type catalog entry.
type CreateDesignTypeRequest struct {
	Code        string  `json:"code" validate:"required,max=20"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	CodeFormat  string  `json:"codeFormat,omitempty" validate:"omitempty,max=100"`
	SortOrder   *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateDesignTypeRequest is a partial update of a design type.
type UpdateDesignTypeRequest struct {
	Code        Nullable[string] `json:"code,omitzero" validate:"omitempty,max=20"`
	Name        Nullable[string] `json:"name,omitzero" validate:"omitempty,max=255"`
	Description Nullable[string] `json:"description,omitzero" validate:"omitempty,max=1000"`
	CodeFormat  Nullable[string] `json:"codeFormat,omitzero" validate:"omitempty,max=100"`
	SortOrder   Nullable[int]    `json:"sortOrder,omitzero" validate:"omitempty,gte=0"`
	IsActive    Nullable[bool]   `json:"isActive,omitzero"`
}

// GenerateDesignCodeRequest asks for the next design code of a type.
type GenerateDesignCodeRequest struct {
	DesignTypeID string     `json:"designTypeId" validate:"required"`
	CustomerCode string     `json:"customerCode" validate:"required,max=20"`
	DesignNumber int        `json:"designNumber" validate:"gte=0"`
	Date         *time.Time `json:"date,omitempty"`
}

// GenerateDesignCodeResponse carries a generated design code.
type GenerateDesignCodeResponse struct {
	Code string `json:"code"`
}

// CreatePaperSizeRequest registers a paper size.
type CreatePaperSizeRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Width    *float64 `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height   *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	IsCustom bool     `json:"isCustom"`
}

// CreateProofingOrderRequest opens an empty proofing order for a material.
type CreateProofingOrderRequest struct {
	MaterialTypeID uint    `json:"materialTypeId" validate:"required"`
	PaperSizeID    *uint   `json:"paperSizeId,omitempty"`
	TotalQuantity  int     `json:"totalQuantity" validate:"gte=0,lte=2147483647"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ProofingItemRequest allocates a quantity of one order line.
type ProofingItemRequest struct {
	OrderDetailID uint `json:"orderDetailId" validate:"required"`
	Quantity      int  `json:"quantity" validate:"gt=0"`
}

// AddDesignsToProofingOrderRequest adds a batch of order-line allocations to
// a proofing order.
type AddDesignsToProofingOrderRequest struct {
	Items         []ProofingItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalQuantity int                   `json:"totalQuantity" validate:"gt=0,lte=2147483647"`
	PaperSizeID   *uint                 `json:"paperSizeId,omitempty"`
	Notes         *string               `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateProductionRequest is a partial update of a production run.
type UpdateProductionRequest struct {
	Status   Nullable[ProductionStatus] `json:"status,omitzero" validate:"omitempty,oneof=waiting in_progress completed failed"`
	Progress Nullable[int]              `json:"progress,omitzero" validate:"omitempty,gte=0,lte=100"`
	Notes    Nullable[string]           `json:"notes,omitzero" validate:"omitempty,max=2000"`
}

// Updates converts the request into a column update map.
func (r UpdateProductionRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	r.Status.Apply(updates, "status")
	r.Progress.Apply(updates, "progress")
	r.Notes.Apply(updates, "notes")
	return updates
}

// CreatePlateExportRequest records plates sent to a vendor.
type CreatePlateExportRequest struct {
	ProofingOrderID uint       `json:"proofingOrderId" validate:"required"`
	PlateVendorID   uint       `json:"plateVendorId" validate:"required"`
	PlateCount      int        `json:"plateCount" validate:"gt=0"`
	SentAt          *time.Time `json:"sentAt,omitempty"`
	Notes           *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreateDieExportRequest records dies sent to a vendor.
type CreateDieExportRequest struct {
	ProofingOrderID uint       `json:"proofingOrderId" validate:"required"`
	VendorName      string     `json:"vendorName" validate:"required,max=255"`
	DieCount        int        `json:"dieCount" validate:"gt=0"`
	SentAt          *time.Time `json:"sentAt,omitempty"`
	Notes           *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreatePaymentRequest records money received against an order.
type CreatePaymentRequest struct {
	OrderID uint       `json:"orderId" validate:"required"`
	Amount  float64    `json:"amount" validate:"gt=0"`
	Method  string     `json:"method" validate:"required,oneof=cash bank_transfer card"`
	PaidAt  *time.Time `json:"paidAt,omitempty"`
	Note    *string    `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// CreateTimelineEntryRequest adds a note to an order's timeline.
type CreateTimelineEntryRequest struct {
	Text string `json:"text" form:"text" validate:"required,max=4000"`
}

// ListOrdersParams filters the order list.
type ListOrdersParams struct {
	PageParams
	Status     OrderStatus `form:"status" validate:"omitempty,oneof=pending designing waiting_for_proofing in_production completed delivered cancelled"`
	CustomerID uint        `form:"customerId"`
	FromDate   string      `form:"fromDate" validate:"omitempty,datetime=2006-01-02"`
	ToDate     string      `form:"toDate" validate:"omitempty,datetime=2006-01-02"`
	Search     string      `form:"search" validate:"omitempty,max=255"`
}

// Query encodes the parameters as a query string.
func (p ListOrdersParams) Query() url.Values {
	q := url.Values{}
	p.PageParams.Encode(q)
	setString(q, "status", string(p.Status))
	setUint(q, "customerId", p.CustomerID)
	setString(q, "fromDate", p.FromDate)
	setString(q, "toDate", p.ToDate)
	setString(q, "search", p.Search)
	return q
}

// ListProofingOrdersParams filters the proofing order list.
type ListProofingOrdersParams struct {
	PageParams
	Status         ProofingStatus `form:"status" validate:"omitempty,oneof=draft waiting_for_plate ready_to_print in_production completed cancelled"`
	MaterialTypeID uint           `form:"materialTypeId"`
	Search         string         `form:"search" validate:"omitempty,max=255"`
}

// Query encodes the parameters as a query string.
func (p ListProofingOrdersParams) Query() url.Values {
	q := url.Values{}
	p.PageParams.Encode(q)
	setString(q, "status", string(p.Status))
	setUint(q, "materialTypeId", p.MaterialTypeID)
	setString(q, "search", p.Search)
	return q
}

// ListParams is the generic filter set shared by the simpler list endpoints.
type ListParams struct {
	PageParams
	Search          string `form:"search" validate:"omitempty,max=255"`
	Status          string `form:"status" validate:"omitempty,max=50"`
	OrderID         uint   `form:"orderId"`
	ProofingOrderID uint   `form:"proofingOrderId"`
	MaterialTypeID  uint   `form:"materialTypeId"`
	DesignerID      uint   `form:"designerId"`
}

// Query encodes the parameters as a query string.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	p.PageParams.Encode(q)
	setString(q, "search", p.Search)
	setString(q, "status", p.Status)
	setUint(q, "orderId", p.OrderID)
	setUint(q, "proofingOrderId", p.ProofingOrderID)
	setUint(q, "materialTypeId", p.MaterialTypeID)
	setUint(q, "designerId", p.DesignerID)
	return q
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setUint(q url.Values, key string, value uint) {
	if value != 0 {
		q.Set(key, strconv.FormatUint(uint64(value), 10))
	}
}
