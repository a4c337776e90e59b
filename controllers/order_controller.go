package controllers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// filterOrders applies the list filters shared by the order list and export
func filterOrders(db *gorm.DB, params models.ListOrdersParams) (*gorm.DB, error) {
	query := db.Model(&models.Order{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CustomerID != 0 {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.FromDate != "" {
		from, err := time.Parse(dateLayout, params.FromDate)
		if err != nil {
			return nil, err
		}
		query = query.Where("created_at >= ?", from)
	}
	if params.ToDate != "" {
		to, err := time.Parse(dateLayout, params.ToDate)
		if err != nil {
			return nil, err
		}
		query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("code LIKE ? OR recipient_name LIKE ?", like, like)
	}
	return query, nil
}

// loadOrder fetches an order with its customer, lines, designs and the
// quantity each line still has available for proofing
func loadOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Customer").
		Preload("OrderDetails", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("OrderDetails.Design.MaterialType").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", errNotFound, id)
		}
		return nil, err
	}
	if err := services.FillAvailableQuantities(db, order.OrderDetails); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders handles GET /api/orders - lists orders page by page
func ListOrders(c *gin.Context) {
	var params models.ListOrdersParams
	if !bindQuery(c, &params) {
		return
	}

	query, err := filterOrders(config.GetDB(), params)
	if err != nil {
		handleError(c, err)
		return
	}

	result, err := paginate[models.Order](query, params.PageParams, "created_at DESC, id DESC", "Customer")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetOrder handles GET /api/orders/:id
func GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := loadOrder(config.GetDB(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder handles PUT /api/orders/:id - applies a partial update.
// Clearing a money field resets it to zero; the status cannot be cleared.
func UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if !rejectNulls(c, map[string]interface{ IsNull() bool }{"status": req.Status}) {
		return
	}

	db := config.GetDB()
	order, err := loadOrder(db, id)
	if err != nil {
		handleError(c, err)
		return
	}

	updates := req.Updates()
	for _, column := range []string{"total_amount", "deposit_amount"} {
		if v, ok := updates[column]; ok && v == nil {
			updates[column] = 0
		}
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Order{ID: order.ID}).Updates(updates).Error; err != nil {
			handleError(c, err)
			return
		}
		if order, err = loadOrder(db, id); err != nil {
			handleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, order)
}

// ExportOrders handles GET /api/exports/orders - every matching order as CSV
func ExportOrders(c *gin.Context) {
	var params models.ListOrdersParams
	if !bindQuery(c, &params) {
		return
	}

	query, err := filterOrders(config.GetDB(), params)
	if err != nil {
		handleError(c, err)
		return
	}

	var orders []models.Order
	if err := query.Preload("Customer").Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		handleError(c, err)
		return
	}

	rows := [][]string{{"code", "customer", "status", "totalAmount", "depositAmount", "remainingAmount", "deliveryDate", "createdAt"}}
	for _, o := range orders {
		customer := ""
		if o.Customer != nil {
			customer = o.Customer.Name
		}
		delivery := ""
		if o.DeliveryDate != nil {
			delivery = o.DeliveryDate.Format(dateLayout)
		}
		rows = append(rows, []string{
			o.Code,
			customer,
			string(o.Status),
			money(o.TotalAmount),
			money(o.DepositAmount),
			money(o.RemainingAmount()),
			delivery,
			o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	sendCSV(c, fmt.Sprintf("orders-%s.csv", time.Now().UTC().Format("20060102")), rows)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// sendCSV writes rows as a CSV attachment
func sendCSV(c *gin.Context, filename string, rows [][]string) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
