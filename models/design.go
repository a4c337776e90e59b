package models

import (
	"time"
)

// MaterialType is the stock a design is printed on (paper, decal, carton...).
type MaterialType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName specifies the table name for the MaterialType model
func (MaterialType) TableName() string {
	return "material_types"
}

// Design is an artwork produced for an order line.
type Design struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Code           string        `gorm:"uniqueIndex;not null" json:"code"`
	Name           string        `gorm:"not null" json:"name"`
	DesignTypeID   *string       `gorm:"index" json:"designTypeId"`
	MaterialTypeID uint          `gorm:"not null;index" json:"materialTypeId"`
	MaterialType   *MaterialType `gorm:"foreignKey:MaterialTypeID" json:"materialType,omitempty"`
	DesignerID     *uint         `gorm:"index" json:"designerId"`
	Status         DesignStatus  `gorm:"not null;default:'pending'" json:"status"`
	Width          *float64      `json:"width"`
	Height         *float64      `json:"height"`
	FileKey        *string       `json:"fileKey"`
	FileURL        *string       `gorm:"-" json:"fileUrl,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// TableName specifies the table name for the Design model
func (Design) TableName() string {
	return "designs"
}

// DesignType is a catalog entry describing a kind of design and how its
// codes are formed. It lives in the mock design type service, not the database.
type DesignType struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CodeFormat  string    `json:"codeFormat"`
	SortOrder   int       `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   string    `json:"createdBy"`
	UpdatedBy   string    `json:"updatedBy"`
}
