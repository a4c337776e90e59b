package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"github.com/printshop/printshop-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errNotFound is returned by handlers when a referenced record does not exist
var errNotFound = errors.New("record not found")

// respondError writes the ErrorResponse body shared by every error status
func respondError(c *gin.Context, status int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		StatusCode: status,
		Error:      message,
		TimeStamp:  time.Now().UTC(),
		Details:    details,
	})
}

// handleError maps a service or storage error to its HTTP status
func handleError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	var ferr *utils.FileUploadError

	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, "Invalid request data", verr.Details()...)
	case errors.As(err, &ferr):
		respondError(c, http.StatusBadRequest, ferr.Message, ferr.Code)
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, errNotFound),
		errors.Is(err, services.ErrDesignTypeNotFound),
		errors.Is(err, services.ErrProofingOrderNotFound),
		errors.Is(err, services.ErrOrderDetailNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateDesignTypeCode),
		errors.Is(err, services.ErrDesignTypeInUse),
		errors.Is(err, services.ErrMaterialMismatch),
		errors.Is(err, services.ErrAllocationExceeded),
		errors.Is(err, services.ErrUserExists),
		isUniqueViolation(err):
		respondError(c, http.StatusConflict, err.Error())
	default:
		zap.L().Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// isUniqueViolation recognizes duplicate key errors from PostgreSQL and SQLite
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}

// parseID reads a positive integer path parameter, answering 400 otherwise
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Invalid "+name, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes and validates the request body
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		handleError(c, err)
		return false
	}
	return true
}

// bindQuery decodes and validates query parameters
func bindQuery(c *gin.Context, params interface{}) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return false
	}
	if err := utils.ValidateStruct(params); err != nil {
		handleError(c, err)
		return false
	}
	return true
}

// paginate counts the filtered rows and loads one page of them with the
// given associations preloaded
func paginate[T any](query *gorm.DB, params models.PageParams, order string, preloads ...string) (models.PagedResult[T], error) {
	p := params.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return models.PagedResult[T]{}, err
	}

	find := query.Session(&gorm.Session{})
	for _, assoc := range preloads {
		find = find.Preload(assoc)
	}

	var items []T
	if err := find.
		Order(order).
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&items).Error; err != nil {
		return models.PagedResult[T]{}, err
	}

	return models.NewPagedResult(items, p.PageNumber, p.PageSize, int(total)), nil
}

// rejectNulls answers 400 when a required column is being cleared
func rejectNulls(c *gin.Context, fields map[string]interface{ IsNull() bool }) bool {
	for name, f := range fields {
		if f.IsNull() {
			respondError(c, http.StatusBadRequest, "Invalid request data", name+" cannot be null")
			return false
		}
	}
	return true
}

// actor names the caller for audit fields
func actor(c *gin.Context) string {
	if id, ok := c.Get("user_id"); ok {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	return "anonymous"
}
