package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func filterByOrder(query *gorm.DB, params models.ListParams) *gorm.DB {
	if params.OrderID != 0 {
		query = query.Where("order_id = ?", params.OrderID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	return query
}

// ListPayments handles GET /api/payments
func ListPayments(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := config.GetDB().Model(&models.Payment{})
	if params.OrderID != 0 {
		query = query.Where("order_id = ?", params.OrderID)
	}
	result, err := paginate[models.Payment](query, params.PageParams, "paid_at DESC, id DESC")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreatePayment handles POST /api/payments - records the payment and adds
// it to the order's deposit
func CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	payment := models.Payment{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.Method,
		PaidAt:  paidAt,
		Note:    req.Note,
	}

	err := config.GetDB().Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", errNotFound, req.OrderID)
			}
			return err
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		deposit, _ := decimal.NewFromFloat(order.DepositAmount).Add(decimal.NewFromFloat(req.Amount)).Float64()
		return tx.Model(&order).Update("deposit_amount", deposit).Error
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// ListInvoices handles GET /api/invoices
func ListInvoices(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := filterByOrder(config.GetDB().Model(&models.Invoice{}), params)
	if params.Search != "" {
		query = query.Where("invoice_number LIKE ?", "%"+params.Search+"%")
	}
	result, err := paginate[models.Invoice](query, params.PageParams, "id DESC")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportInvoice handles GET /api/invoices/:id/export - the invoice with its
// order lines as CSV
func ExportInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var invoice models.Invoice
	if err := db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("%w: invoice %d", errNotFound, id)
		}
		handleError(c, err)
		return
	}

	order, err := loadOrder(db, invoice.OrderID)
	if err != nil {
		handleError(c, err)
		return
	}

	customer := ""
	if order.Customer != nil {
		customer = order.Customer.Name
	}
	issued := ""
	if invoice.IssuedAt != nil {
		issued = invoice.IssuedAt.Format(dateLayout)
	}

	rows := [][]string{
		{"invoiceNumber", invoice.InvoiceNumber},
		{"orderCode", order.Code},
		{"customer", customer},
		{"issuedAt", issued},
		{"status", string(invoice.Status)},
		{},
		{"designCode", "designName", "quantity", "unitPrice", "totalPrice"},
	}
	for _, d := range order.OrderDetails {
		code, name := "", ""
		if d.Design != nil {
			code, name = d.Design.Code, d.Design.Name
		}
		rows = append(rows, []string{code, name, fmt.Sprint(d.Quantity), money(d.UnitPrice), money(d.LineTotal())})
	}

	amount := decimal.NewFromFloat(invoice.Amount)
	tax := decimal.NewFromFloat(invoice.TaxAmount)
	rows = append(rows,
		[]string{},
		[]string{"amount", amount.String()},
		[]string{"taxAmount", tax.String()},
		[]string{"grandTotal", amount.Add(tax).String()},
	)

	sendCSV(c, invoice.InvoiceNumber+".csv", rows)
}

// ListDeliveryNotes handles GET /api/delivery-notes
func ListDeliveryNotes(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := filterByOrder(config.GetDB().Model(&models.DeliveryNote{}), params)
	if params.Search != "" {
		query = query.Where("code LIKE ?", "%"+params.Search+"%")
	}
	result, err := paginate[models.DeliveryNote](query, params.PageParams, "id DESC")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
