package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
)

// GetManagerDashboard handles GET /api/dashboard/manager
func GetManagerDashboard(c *gin.Context) {
	db := config.GetDB()

	var (
		orders      []models.Order
		proofing    []models.ProofingOrder
		productions []models.Production
		designs     []models.Design
	)
	for _, load := range []func() error{
		func() error { return db.Find(&orders).Error },
		func() error { return db.Find(&proofing).Error },
		func() error { return db.Find(&productions).Error },
		func() error { return db.Find(&designs).Error },
	} {
		if err := load(); err != nil {
			handleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, services.BuildManagerDashboard(orders, proofing, productions, designs))
}

// GetEmployeeDashboard handles GET /api/dashboard/employees/:id - the
// designs and production runs of one staff member
func GetEmployeeDashboard(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	if err := requireRecord(db, &models.User{}, userID, "user"); err != nil {
		handleError(c, err)
		return
	}

	var designs []models.Design
	if err := db.Where("designer_id = ?", userID).Find(&designs).Error; err != nil {
		handleError(c, err)
		return
	}
	var productions []models.Production
	if err := db.Where("operator_id = ?", userID).Find(&productions).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, services.BuildEmployeeDashboard(userID, designs, productions))
}
