package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
)

// HealthCheck handles GET /api/health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Print Shop API is running",
	})
}

// DatabaseStatus handles GET /api/database/status - pings the database and
// lists its tables
func DatabaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		handleError(c, err)
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "Database connection failed", err.Error())
		return
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"driver": db.Dialector.Name(),
		"tables": tables,
	})
}
