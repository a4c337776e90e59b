package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/middleware"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"gorm.io/gorm"
)

var validRoles = map[models.UserRole]bool{
	models.RoleAdmin:      true,
	models.RoleManager:    true,
	models.RoleDesigner:   true,
	models.RoleProofer:    true,
	models.RoleAccountant: true,
	models.RoleProduction: true,
}

// CreateUser handles POST /api/users - creates the staff record for the
// caller from Auth0's /userinfo endpoint
func CreateUser(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user ID from token")
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Access token not found")
		return
	}

	userInfo, err := services.NewAuth0Service(config.GetConfig()).GetUserInfo(c.Request.Context(), accessToken)
	if err != nil {
		handleError(c, fmt.Errorf("failed to fetch user information from Auth0: %w", err))
		return
	}
	userInfo.Sub = auth0ID

	if userInfo.Email == "" {
		respondError(c, http.StatusBadRequest, "Email not provided by Auth0", "MISSING_EMAIL")
		return
	}
	if userInfo.Name == "" {
		respondError(c, http.StatusBadRequest, "Name not provided by Auth0", "MISSING_NAME")
		return
	}

	role := models.UserRole(middleware.GetRole(c))
	if !validRoles[role] {
		role = models.RoleDesigner
	}

	user, err := services.RegisterUser(config.GetDB(), userInfo, role)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetMyProfile handles GET /api/users/me - the caller's staff record
func GetMyProfile(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user information")
		return
	}

	var user models.User
	if err := config.GetDB().Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User profile not found. Please create a profile first.")
			return
		}
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/users; status filters by role
func ListUsers(c *gin.Context) {
	var params models.ListParams
	if !bindQuery(c, &params) {
		return
	}

	query := config.GetDB().Model(&models.User{})
	if params.Status != "" {
		query = query.Where("role = ?", params.Status)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("username LIKE ? OR full_name LIKE ? OR email LIKE ?", like, like, like)
	}

	result, err := paginate[models.User](query, params.PageParams, "username ASC")
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUserByUsername handles GET /api/users/by-username/:username
func GetUserByUsername(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		respondError(c, http.StatusBadRequest, "Invalid username", "username is required")
		return
	}

	var user models.User
	if err := config.GetDB().Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("%w: user %q", errNotFound, username)
		}
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
