package models

import (
	"time"
)

// PaperSize is a print sheet format. Custom sizes are created on the fly
// from free text.
type PaperSize struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Width     *float64  `json:"width"`
	Height    *float64  `json:"height"`
	IsCustom  bool      `gorm:"not null;default:false" json:"isCustom"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the PaperSize model
func (PaperSize) TableName() string {
	return "paper_sizes"
}

// ProofingOrder groups order-line allocations printed on a shared sheet
// of one material.
type ProofingOrder struct {
	ID                   uint                  `gorm:"primaryKey" json:"id"`
	Code                 string                `gorm:"uniqueIndex;not null" json:"code"`
	MaterialTypeID       uint                  `gorm:"not null;index" json:"materialTypeId"`
	MaterialType         *MaterialType         `gorm:"foreignKey:MaterialTypeID" json:"materialType,omitempty"`
	PaperSizeID          *uint                 `gorm:"index" json:"paperSizeId"`
	PaperSize            *PaperSize            `gorm:"foreignKey:PaperSizeID" json:"paperSize,omitempty"`
	TotalQuantity        int                   `gorm:"not null;default:0" json:"totalQuantity"`
	Status               ProofingStatus        `gorm:"not null;default:'draft'" json:"status"`
	Notes                *string               `json:"notes"`
	ImageKey             *string               `json:"imageKey"`
	CreatedByID          *uint                 `gorm:"index" json:"createdById"`
	ProofingOrderDesigns []ProofingOrderDesign `gorm:"foreignKey:ProofingOrderID" json:"proofingOrderDesigns"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// TableName specifies the table name for the ProofingOrder model
func (ProofingOrder) TableName() string {
	return "proofing_orders"
}

// ProofingOrderDesign allocates part of an order line to a proofing order.
type ProofingOrderDesign struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	ProofingOrderID uint         `gorm:"not null;index" json:"proofingOrderId"`
	OrderDetailID   uint         `gorm:"not null;index" json:"orderDetailId"`
	OrderDetail     *OrderDetail `gorm:"foreignKey:OrderDetailID" json:"orderDetail,omitempty"`
	Quantity        int          `gorm:"not null;check:quantity > 0" json:"quantity"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// TableName specifies the table name for the ProofingOrderDesign model
func (ProofingOrderDesign) TableName() string {
	return "proofing_order_designs"
}
