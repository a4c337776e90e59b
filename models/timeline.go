package models

import (
	"time"
)

// TimelineEntry is a note on an order's timeline, optionally with an attachment
type TimelineEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;index" json:"orderId"`
	AuthorID      *uint     `gorm:"index" json:"authorId"`
	Author        *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	AttachmentKey *string   `json:"attachmentKey"`
	AttachmentURL *string   `gorm:"-" json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName specifies the table name for the TimelineEntry model
func (TimelineEntry) TableName() string {
	return "order_timeline_entries"
}
