package models

import (
	"time"
)

// Production is the print run of a proofing order.
type Production struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	ProofingOrderID uint             `gorm:"not null;index" json:"proofingOrderId"`
	Status          ProductionStatus `gorm:"not null;default:'waiting'" json:"status"`
	Progress        int              `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	OperatorID      *uint            `gorm:"index" json:"operatorId"`
	StartedAt       *time.Time       `json:"startedAt"`
	CompletedAt     *time.Time       `json:"completedAt"`
	Notes           *string          `json:"notes"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// TableName specifies the table name for the Production model
func (Production) TableName() string {
	return "productions"
}

// PlateVendor makes printing plates.
type PlateVendor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the PlateVendor model
func (PlateVendor) TableName() string {
	return "plate_vendors"
}

// PlateExport records plates sent to a vendor for a proofing order.
type PlateExport struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	ProofingOrderID uint         `gorm:"not null;index" json:"proofingOrderId"`
	PlateVendorID   uint         `gorm:"not null;index" json:"plateVendorId"`
	PlateVendor     *PlateVendor `gorm:"foreignKey:PlateVendorID" json:"plateVendor,omitempty"`
	PlateCount      int          `gorm:"not null;check:plate_count > 0" json:"plateCount"`
	SentAt          *time.Time   `json:"sentAt"`
	ReceivedAt      *time.Time   `json:"receivedAt"`
	Notes           *string      `json:"notes"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// TableName specifies the table name for the PlateExport model
func (PlateExport) TableName() string {
	return "plate_exports"
}

// DieExport records cutting dies sent out for a proofing order.
type DieExport struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ProofingOrderID uint       `gorm:"not null;index" json:"proofingOrderId"`
	VendorName      string     `gorm:"not null" json:"vendorName"`
	DieCount        int        `gorm:"not null;check:die_count > 0" json:"dieCount"`
	SentAt          *time.Time `json:"sentAt"`
	ReceivedAt      *time.Time `json:"receivedAt"`
	Notes           *string    `json:"notes"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// TableName specifies the table name for the DieExport model
func (DieExport) TableName() string {
	return "die_exports"
}
