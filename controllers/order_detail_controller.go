package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"gorm.io/gorm"
)

const unallocatedCondition = `order_details.quantity > COALESCE((
	SELECT SUM(pod.quantity) FROM proofing_order_designs pod
	WHERE pod.order_detail_id = order_details.id), 0)`

func loadOrderDetail(db *gorm.DB, id uint) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	if err := db.Preload("Design.MaterialType").First(&detail, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order detail %d", errNotFound, id)
		}
		return nil, err
	}
	details := []models.OrderDetail{detail}
	if err := services.FillAvailableQuantities(db, details); err != nil {
		return nil, err
	}
	return &details[0], nil
}

// UpdateOrderDetail handles PUT /api/order-details/:id - partial update of
// one line. The line total follows quantity and unit price.
func UpdateOrderDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderDetailRequest
	if !bindJSON(c, &req) {
		return
	}
	if !rejectNulls(c, map[string]interface{ IsNull() bool }{"quantity": req.Quantity}) {
		return
	}

	db := config.GetDB()
	detail, err := loadOrderDetail(db, id)
	if err != nil {
		handleError(c, err)
		return
	}

	updates := req.Updates()
	if len(updates) == 0 {
		c.JSON(http.StatusOK, detail)
		return
	}
	if v, ok := updates["unit_price"]; ok && v == nil {
		updates["unit_price"] = 0
	}

	quantity := detail.Quantity
	if q, ok := req.Quantity.Get(); ok {
		quantity = q
	}
	unitPrice := detail.UnitPrice
	if p, ok := req.UnitPrice.Get(); ok {
		unitPrice = p
	} else if req.UnitPrice.IsNull() {
		unitPrice = 0
	}
	updates["total_price"] = float64(quantity) * unitPrice

	if req.Quantity.IsSet() {
		allocated, err := services.AllocatedQuantities(db, []uint{detail.ID})
		if err != nil {
			handleError(c, err)
			return
		}
		if quantity < allocated[detail.ID] {
			handleError(c, fmt.Errorf("%w: order detail %d has %d allocated to proofing, quantity %d is too low",
				services.ErrAllocationExceeded, detail.ID, allocated[detail.ID], quantity))
			return
		}
	}

	if err := db.Model(&models.OrderDetail{ID: detail.ID}).Updates(updates).Error; err != nil {
		handleError(c, err)
		return
	}

	detail, err = loadOrderDetail(db, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListAvailableOrderDetails handles GET /api/order-details/available - order
// lines that still have quantity to put on a proofing order
func ListAvailableOrderDetails(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.OrderDetail{}).Where(unallocatedCondition)
	if params.OrderID != 0 {
		query = query.Where("order_details.order_id = ?", params.OrderID)
	}
	if params.MaterialTypeID != 0 {
		query = query.Where("order_details.design_id IN (?)",
			db.Model(&models.Design{}).Select("id").Where("material_type_id = ?", params.MaterialTypeID))
	}
	if params.Search != "" {
		query = query.Where("order_details.design_id IN (?)",
			db.Model(&models.Design{}).Select("id").Where("code LIKE ? OR name LIKE ?", "%"+params.Search+"%", "%"+params.Search+"%"))
	}

	result, err := paginate[models.OrderDetail](query, params.PageParams, "order_details.id ASC", "Design.MaterialType")
	if err != nil {
		handleError(c, err)
		return
	}
	if err := services.FillAvailableQuantities(db, result.Items); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
