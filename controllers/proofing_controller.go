package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"github.com/printshop/printshop-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListPaperSizes handles GET /api/paper-sizes
func ListPaperSizes(c *gin.Context) {
	var sizes []models.PaperSize
	if err := config.GetDB().Order("is_custom ASC, name ASC").Find(&sizes).Error; err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sizes)
}

// CreatePaperSize handles POST /api/paper-sizes. Names are unique.
func CreatePaperSize(c *gin.Context) {
	var req models.CreatePaperSizeRequest
	if !bindJSON(c, &req) {
		return
	}

	size := models.PaperSize{
		Name:     strings.TrimSpace(req.Name),
		Width:    req.Width,
		Height:   req.Height,
		IsCustom: req.IsCustom,
	}
	if err := config.GetDB().Create(&size).Error; err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, size)
}

// ListProofingOrders handles GET /api/proofing-orders
func ListProofingOrders(c *gin.Context) {
	var params models.ListProofingOrdersParams
	if !bindQuery(c, &params) {
		return
	}

	query := config.GetDB().Model(&models.ProofingOrder{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.MaterialTypeID != 0 {
		query = query.Where("material_type_id = ?", params.MaterialTypeID)
	}
	if params.Search != "" {
		query = query.Where("code LIKE ?", "%"+params.Search+"%")
	}

	result, err := paginate[models.ProofingOrder](query, params.PageParams, "created_at DESC, id DESC",
		"MaterialType", "PaperSize", "ProofingOrderDesigns")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetProofingOrder handles GET /api/proofing-orders/:id
func GetProofingOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	po, err := services.LoadProofingOrder(config.GetDB(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, po)
}

// CreateProofingOrder handles POST /api/proofing-orders - opens an empty
// proofing order for one material type
func CreateProofingOrder(c *gin.Context) {
	var req models.CreateProofingOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	db := config.GetDB()
	var material models.MaterialType
	if err := db.First(&material, req.MaterialTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("%w: material type %d", errNotFound, req.MaterialTypeID)
		}
		handleError(c, err)
		return
	}

	po := models.ProofingOrder{
		MaterialTypeID: material.ID,
		PaperSizeID:    req.PaperSizeID,
		TotalQuantity:  req.TotalQuantity,
		Status:         models.ProofingStatusDraft,
		Notes:          req.Notes,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var last uint
		if err := tx.Model(&models.ProofingOrder{}).Select("COALESCE(MAX(id), 0)").Scan(&last).Error; err != nil {
			return err
		}
		po.Code = fmt.Sprintf("PO-%04d", last+1)
		return tx.Create(&po).Error
	})
	if err != nil {
		handleError(c, err)
		return
	}

	created, err := services.LoadProofingOrder(db, po.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AddDesignsToProofingOrder handles POST /api/proofing-orders/:id/designs.
// Every line must share the proofing order's material type and fit within
// its available quantity, otherwise nothing is stored.
func AddDesignsToProofingOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.AddDesignsToProofingOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	po, err := services.AddDesignsToProofingOrder(config.GetDB(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	zap.L().Info("Designs added to proofing order",
		zap.Uint("proofing_order_id", id),
		zap.Int("items", len(req.Items)),
		zap.Int("total_quantity", req.TotalQuantity))
	c.JSON(http.StatusOK, po)
}

// UploadProofingImage handles POST /api/proofing-orders/:id/image
func UploadProofingImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "A file is required", err.Error())
		return
	}

	db := config.GetDB()
	po, err := services.LoadProofingOrder(db, id)
	if err != nil {
		handleError(c, err)
		return
	}

	key, err := services.GetFileService().Upload(utils.FileKindProofing, fileHeader)
	if err != nil {
		handleError(c, err)
		return
	}
	if err := db.Model(&models.ProofingOrder{ID: po.ID}).Update("image_key", key).Error; err != nil {
		handleError(c, err)
		return
	}

	po.ImageKey = &key
	c.JSON(http.StatusOK, po)
}
