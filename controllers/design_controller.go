package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"github.com/printshop/printshop-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func findDesign(db *gorm.DB, id uint) (*models.Design, error) {
	var design models.Design
	if err := db.Preload("MaterialType").First(&design, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: design %d", errNotFound, id)
		}
		return nil, err
	}
	return &design, nil
}

// attachFileURL fills the fetchable URL of a design's stored file
func attachFileURL(design *models.Design) error {
	fs := services.GetFileService()
	if fs == nil || design.FileKey == nil {
		return nil
	}
	url, err := fs.URL(*design.FileKey)
	if err != nil {
		return err
	}
	design.FileURL = &url
	return nil
}

// ListDesigns handles GET /api/designs
func ListDesigns(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := config.GetDB().Model(&models.Design{})
	if params.DesignerID != 0 {
		query = query.Where("designer_id = ?", params.DesignerID)
	}
	if params.MaterialTypeID != 0 {
		query = query.Where("material_type_id = ?", params.MaterialTypeID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ?", like, like)
	}

	result, err := paginate[models.Design](query, params.PageParams, "id ASC", "MaterialType")
	if err != nil {
		handleError(c, err)
		return
	}
	for i := range result.Items {
		if err := attachFileURL(&result.Items[i]); err != nil {
			handleError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, result)
}

// UploadDesignFile handles POST /api/designs/:id/file - stores the artwork
// and replaces any previous file
func UploadDesignFile(c *gin.Context) {
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
	design, err := findDesign(db, id)
	if err != nil {
		handleError(c, err)
		return
	}

	fs := services.GetFileService()
	key, err := fs.Upload(utils.FileKindDesign, fileHeader)
	if err != nil {
		handleError(c, err)
		return
	}

	previous := design.FileKey
	if err := db.Model(design).Update("file_key", key).Error; err != nil {
		handleError(c, err)
		return
	}
	if previous != nil && *previous != key {
		if err := fs.Delete(*previous); err != nil {
			zap.L().Warn("Failed to delete replaced design file", zap.String("key", *previous), zap.Error(err))
		}
	}

	design.FileKey = &key
	if err := attachFileURL(design); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, design)
}

// ListMaterialTypes handles GET /api/material-types
func ListMaterialTypes(c *gin.Context) {
	var materials []models.MaterialType
	if err := config.GetDB().Order("code ASC").Find(&materials).Error; err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// ListPlateVendors handles GET /api/plate-vendors
func ListPlateVendors(c *gin.Context) {
	var vendors []models.PlateVendor
	if err := config.GetDB().Where("is_active = ?", true).Order("name ASC").Find(&vendors).Error; err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}
