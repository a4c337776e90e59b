package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"gorm.io/gorm"
)

func findCustomer(db *gorm.DB, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", errNotFound, id)
		}
		return nil, err
	}
	return &customer, nil
}

// ListCustomers handles GET /api/customers
func ListCustomers(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := config.GetDB().Model(&models.Customer{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ? OR phone LIKE ?", like, like, like)
	}

	result, err := paginate[models.Customer](query, params.PageParams, "code ASC")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCustomer handles GET /api/customers/:id
func GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := findCustomer(config.GetDB(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /api/customers/:id - partial update. The name
// is required and cannot be cleared.
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	if !rejectNulls(c, map[string]interface{ IsNull() bool }{"name": req.Name}) {
		return
	}

	db := config.GetDB()
	customer, err := findCustomer(db, id)
	if err != nil {
		handleError(c, err)
		return
	}

	if updates := req.Updates(); len(updates) > 0 {
		if err := db.Model(customer).Updates(updates).Error; err != nil {
			handleError(c, err)
			return
		}
		if customer, err = findCustomer(db, id); err != nil {
			handleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, customer)
}
