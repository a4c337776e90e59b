package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/services"
	"github.com/printshop/printshop-api/utils"
	"gorm.io/gorm"
)

// attachTimelineURL fills the fetchable URL of an entry's attachment
func attachTimelineURL(entry *models.TimelineEntry) error {
	fs := services.GetFileService()
	if fs == nil || entry.AttachmentKey == nil {
		return nil
	}
	url, err := fs.URL(*entry.AttachmentKey)
	if err != nil {
		return err
	}
	entry.AttachmentURL = &url
	return nil
}

// currentUserID resolves the caller's staff id, or nil when unauthenticated
// or not registered
func currentUserID(c *gin.Context, db *gorm.DB) *uint {
	auth0ID := actor(c)
	if auth0ID == "anonymous" {
		return nil
	}
	var user models.User
	if err := db.Select("id").Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		return nil
	}
	return &user.ID
}

// ListTimeline handles GET /api/orders/:id/timeline - entries oldest first
func ListTimeline(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	if err := requireRecord(db, &models.Order{}, orderID, "order"); err != nil {
		handleError(c, err)
		return
	}

	var entries []models.TimelineEntry
	if err := db.Where("order_id = ?", orderID).
		Preload("Author").
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		handleError(c, err)
		return
	}
	for i := range entries {
		if err := attachTimelineURL(&entries[i]); err != nil {
			handleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, entries)
}

// AddTimelineEntry handles POST /api/orders/:id/timeline - a multipart form
// with a text field and an optional image attachment
func AddTimelineEntry(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.CreateTimelineEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := utils.ValidateStruct(&req); err != nil {
		handleError(c, err)
		return
	}

	db := config.GetDB()
	if err := requireRecord(db, &models.Order{}, orderID, "order"); err != nil {
		handleError(c, err)
		return
	}

	entry := models.TimelineEntry{
		OrderID:  orderID,
		AuthorID: currentUserID(c, db),
		Text:     req.Text,
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		key, err := services.GetFileService().Upload(utils.FileKindAttachment, fileHeader)
		if err != nil {
			handleError(c, err)
			return
		}
		entry.AttachmentKey = &key
	} else if !errors.Is(err, http.ErrMissingFile) {
		respondError(c, http.StatusBadRequest, "Invalid attachment", err.Error())
		return
	}

	if err := db.Create(&entry).Error; err != nil {
		handleError(c, err)
		return
	}
	if err := db.Preload("Author").First(&entry, entry.ID).Error; err != nil {
		handleError(c, err)
		return
	}
	if err := attachTimelineURL(&entry); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
