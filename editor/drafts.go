package editor

import (
	"strconv"
	"strings"
	"time"

	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/utils"
)

// DateLayout is the layout of date inputs.
const DateLayout = "2006-01-02"

// Drafts hold raw form input. ToRequest turns blank inputs into explicit
// nulls, trims strings and parses numbers and dates.

// CustomerInfoDraft edits the order's customer.
type CustomerInfoDraft struct {
	Name        string
	CompanyName string
	Phone       string
	Email       string
	Address     string
	TaxCode     string
}

func newCustomerInfoDraft(c *models.Customer) *CustomerInfoDraft {
	if c == nil {
		return &CustomerInfoDraft{}
	}
	return &CustomerInfoDraft{
		Name:        c.Name,
		CompanyName: deref(c.CompanyName),
		Phone:       deref(c.Phone),
		Email:       deref(c.Email),
		Address:     deref(c.Address),
		TaxCode:     deref(c.TaxCode),
	}
}

func (d CustomerInfoDraft) ToRequest() (models.UpdateCustomerRequest, error) {
	req := models.UpdateCustomerRequest{
		Name:        text(d.Name),
		CompanyName: text(d.CompanyName),
		Phone:       text(d.Phone),
		Email:       text(d.Email),
		Address:     text(d.Address),
		TaxCode:     text(d.TaxCode),
	}
	return req, utils.ValidateStruct(req)
}

// OrderInfoDraft edits status, delivery date and note.
type OrderInfoDraft struct {
	Status       string
	DeliveryDate string
	Note         string
}

func newOrderInfoDraft(o *models.Order, loc *time.Location) *OrderInfoDraft {
	d := &OrderInfoDraft{Status: string(o.Status), Note: deref(o.Note)}
	if o.DeliveryDate != nil {
		d.DeliveryDate = o.DeliveryDate.In(loc).Format(DateLayout)
	}
	return d
}

// ToRequest parses DeliveryDate as midnight in loc and sends it as UTC.
func (d OrderInfoDraft) ToRequest(loc *time.Location) (models.UpdateOrderRequest, error) {
	date, err := dateInput("deliveryDate", d.DeliveryDate, loc)
	if err != nil {
		return models.UpdateOrderRequest{}, err
	}
	req := models.UpdateOrderRequest{
		Status:       typedText[models.OrderStatus](d.Status),
		DeliveryDate: date,
		Note:         text(d.Note),
	}
	return req, utils.ValidateStruct(req)
}

// PaymentInfoDraft edits the money fields.
type PaymentInfoDraft struct {
	TotalAmount   string
	DepositAmount string
	PaymentMethod string
}

func newPaymentInfoDraft(o *models.Order) *PaymentInfoDraft {
	return &PaymentInfoDraft{
		TotalAmount:   formatFloat(o.TotalAmount),
		DepositAmount: formatFloat(o.DepositAmount),
		PaymentMethod: deref(o.PaymentMethod),
	}
}

func (d PaymentInfoDraft) ToRequest() (models.UpdateOrderRequest, error) {
	total, err := number("totalAmount", d.TotalAmount)
	if err != nil {
		return models.UpdateOrderRequest{}, err
	}
	deposit, err := number("depositAmount", d.DepositAmount)
	if err != nil {
		return models.UpdateOrderRequest{}, err
	}
	req := models.UpdateOrderRequest{
		TotalAmount:   total,
		DepositAmount: deposit,
		PaymentMethod: text(d.PaymentMethod),
	}
	return req, utils.ValidateStruct(req)
}

// RecipientInfoDraft edits the delivery recipient.
type RecipientInfoDraft struct {
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
}

func newRecipientInfoDraft(o *models.Order) *RecipientInfoDraft {
	return &RecipientInfoDraft{
		RecipientName:    deref(o.RecipientName),
		RecipientPhone:   deref(o.RecipientPhone),
		RecipientAddress: deref(o.RecipientAddress),
	}
}

func (d RecipientInfoDraft) ToRequest() (models.UpdateOrderRequest, error) {
	req := models.UpdateOrderRequest{
		RecipientName:    text(d.RecipientName),
		RecipientPhone:   text(d.RecipientPhone),
		RecipientAddress: text(d.RecipientAddress),
	}
	return req, utils.ValidateStruct(req)
}

// OrderDetailDraft edits one line item.
type OrderDetailDraft struct {
	ID           uint
	Quantity     string
	UnitPrice    string
	Requirements string
	ItemStatus   string
}

func newOrderDetailDraft(d *models.OrderDetail) *OrderDetailDraft {
	draft := &OrderDetailDraft{
		ID:           d.ID,
		Quantity:     strconv.Itoa(d.Quantity),
		UnitPrice:    formatFloat(d.UnitPrice),
		Requirements: deref(d.Requirements),
	}
	if d.ItemStatus != nil {
		draft.ItemStatus = string(*d.ItemStatus)
	}
	return draft
}

func (d OrderDetailDraft) ToRequest() (models.UpdateOrderDetailRequest, error) {
	quantity, err := integer("quantity", d.Quantity)
	if err != nil {
		return models.UpdateOrderDetailRequest{}, err
	}
	price, err := number("unitPrice", d.UnitPrice)
	if err != nil {
		return models.UpdateOrderDetailRequest{}, err
	}
	req := models.UpdateOrderDetailRequest{
		Quantity:     quantity,
		UnitPrice:    price,
		Requirements: text(d.Requirements),
		ItemStatus:   typedText[models.OrderItemStatus](d.ItemStatus),
	}
	return req, utils.ValidateStruct(req)
}

func text(s string) models.Nullable[string] {
	return typedText[string](s)
}

func typedText[T ~string](s string) models.Nullable[T] {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Null[T]()
	}
	return models.Value(T(s))
}

func number(field, s string) (models.Nullable[float64], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Null[float64](), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Nullable[float64]{}, utils.NewValidationError(field, "numeric", "")
	}
	return models.Value(v), nil
}

func integer(field, s string) (models.Nullable[int], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Null[int](), nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return models.Nullable[int]{}, utils.NewValidationError(field, "number", "")
	}
	return models.Value(v), nil
}

func dateInput(field, s string, loc *time.Location) (models.Nullable[time.Time], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Null[time.Time](), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return models.Nullable[time.Time]{}, utils.NewValidationError(field, "datetime", DateLayout)
	}
	return models.Value(t.UTC()), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
