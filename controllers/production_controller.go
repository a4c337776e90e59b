package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"gorm.io/gorm"
)

// requireRecord answers 404 unless a row of model with the given id exists
func requireRecord(db *gorm.DB, model interface{}, id uint, name string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d", errNotFound, name, id)
	}
	return nil
}

// filterByProofingOrder narrows an export or production list
func filterByProofingOrder(query *gorm.DB, params models.ListParams) *gorm.DB {
	if params.ProofingOrderID != 0 {
		query = query.Where("proofing_order_id = ?", params.ProofingOrderID)
	}
	return query
}

// ListProductions handles GET /api/productions
func ListProductions(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := filterByProofingOrder(config.GetDB().Model(&models.Production{}), params)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	result, err := paginate[models.Production](query, params.PageParams, "id DESC")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateProduction handles PUT /api/productions/:id. Starting a run stamps
// startedAt; completing it stamps completedAt and sets progress to 100.
func UpdateProduction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProductionRequest
	if !bindJSON(c, &req) {
		return
	}
	if !rejectNulls(c, map[string]interface{ IsNull() bool }{"status": req.Status, "progress": req.Progress}) {
		return
	}

	db := config.GetDB()
	var production models.Production
	if err := db.First(&production, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("%w: production %d", errNotFound, id)
		}
		handleError(c, err)
		return
	}

	updates := req.Updates()
	now := time.Now().UTC()
	if status, ok := req.Status.Get(); ok {
		switch status {
		case models.ProductionStatusInProgress:
			if production.StartedAt == nil {
				updates["started_at"] = now
			}
		case models.ProductionStatusCompleted:
			updates["completed_at"] = now
			updates["progress"] = 100
			if production.StartedAt == nil {
				updates["started_at"] = now
			}
		}
	}

	if len(updates) > 0 {
		if err := db.Model(&production).Updates(updates).Error; err != nil {
			handleError(c, err)
			return
		}
		if err := db.First(&production, id).Error; err != nil {
			handleError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, production)
}

// ListPlateExports handles GET /api/plate-exports
func ListPlateExports(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := filterByProofingOrder(config.GetDB().Model(&models.PlateExport{}), params)
	result, err := paginate[models.PlateExport](query, params.PageParams, "id DESC", "PlateVendor")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreatePlateExport handles POST /api/plate-exports
func CreatePlateExport(c *gin.Context) {
	var req models.CreatePlateExportRequest
	if !bindJSON(c, &req) {
		return
	}

	db := config.GetDB()
	if err := requireRecord(db, &models.ProofingOrder{}, req.ProofingOrderID, "proofing order"); err != nil {
		handleError(c, err)
		return
	}
	if err := requireRecord(db, &models.PlateVendor{}, req.PlateVendorID, "plate vendor"); err != nil {
		handleError(c, err)
		return
	}

	export := models.PlateExport{
		ProofingOrderID: req.ProofingOrderID,
		PlateVendorID:   req.PlateVendorID,
		PlateCount:      req.PlateCount,
		SentAt:          sentAtOrNow(req.SentAt),
		Notes:           req.Notes,
	}
	if err := db.Create(&export).Error; err != nil {
		handleError(c, err)
		return
	}
	if err := db.Preload("PlateVendor").First(&export, export.ID).Error; err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}

// ListDieExports handles GET /api/die-exports
func ListDieExports(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := filterByProofingOrder(config.GetDB().Model(&models.DieExport{}), params)
	if params.Search != "" {
		query = query.Where("vendor_name LIKE ?", "%"+params.Search+"%")
	}
	result, err := paginate[models.DieExport](query, params.PageParams, "id DESC")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateDieExport handles POST /api/die-exports
func CreateDieExport(c *gin.Context) {
	var req models.CreateDieExportRequest
	if !bindJSON(c, &req) {
		return
	}

	db := config.GetDB()
	if err := requireRecord(db, &models.ProofingOrder{}, req.ProofingOrderID, "proofing order"); err != nil {
		handleError(c, err)
		return
	}

	export := models.DieExport{
		ProofingOrderID: req.ProofingOrderID,
		VendorName:      req.VendorName,
		DieCount:        req.DieCount,
		SentAt:          sentAtOrNow(req.SentAt),
		Notes:           req.Notes,
	}
	if err := db.Create(&export).Error; err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}

func sentAtOrNow(t *time.Time) *time.Time {
	if t != nil {
		return t
	}
	now := time.Now().UTC()
	return &now
}
