package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
)

func designTypeID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, "Invalid id", "id is required")
		return "", false
	}
	return id, true
}

// ListDesignTypes handles GET /api/design-types; ?active=true keeps only
// active types
func ListDesignTypes(c *gin.Context) {
	svc := services.GetDesignTypeService()

	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid query parameters", "active must be a boolean")
			return
		}
		activeOnly = v
	}

	var (
		items []models.DesignType
		err   error
	)
	if activeOnly {
		items, err = svc.GetActive(c.Request.Context())
	} else {
		items, err = svc.GetAll(c.Request.Context())
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetDesignType handles GET /api/design-types/:id
func GetDesignType(c *gin.Context) {
	id, ok := designTypeID(c)
	if !ok {
		return
	}

	dt, err := services.GetDesignTypeService().GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dt)
}

// CreateDesignType handles POST /api/design-types
func CreateDesignType(c *gin.Context) {
	var req models.CreateDesignTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	dt, err := services.GetDesignTypeService().Create(c.Request.Context(), req, actor(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dt)
}

// UpdateDesignType handles PUT /api/design-types/:id
func UpdateDesignType(c *gin.Context) {
	id, ok := designTypeID(c)
	if !ok {
		return
	}

	var req models.UpdateDesignTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	dt, err := services.GetDesignTypeService().Update(c.Request.Context(), id, req, actor(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dt)
}

// DeleteDesignType handles DELETE /api/design-types/:id
func DeleteDesignType(c *gin.Context) {
	id, ok := designTypeID(c)
	if !ok {
		return
	}

	if err := services.GetDesignTypeService().Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateDesignCode handles POST /api/design-types/generate-code
func GenerateDesignCode(c *gin.Context) {
	var req models.GenerateDesignCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	code, err := services.GetDesignTypeService().GenerateDesignCode(c.Request.Context(), req.DesignTypeID, req.CustomerCode, req.DesignNumber, date)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.GenerateDesignCodeResponse{Code: code})
}
