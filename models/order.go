package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a print-shop client.
type Customer struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"not null" json:"name"`
	CompanyName *string        `json:"companyName"`
	Phone       *string        `json:"phone"`
	Email       *string        `json:"email"`
	Address     *string        `json:"address"`
	TaxCode     *string        `json:"taxCode"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Order is a customer order. Money fields are non-negative.
type Order struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Code             string         `gorm:"uniqueIndex;not null" json:"code"`
	CustomerID       uint           `gorm:"not null;index" json:"customerId"`
	Customer         *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status           OrderStatus    `gorm:"not null;default:'pending'" json:"status"`
	TotalAmount      float64        `gorm:"not null;default:0;check:total_amount >= 0" json:"totalAmount"`
	DepositAmount    float64        `gorm:"not null;default:0;check:deposit_amount >= 0" json:"depositAmount"`
	PaymentMethod    *string        `json:"paymentMethod"`
	DeliveryDate     *time.Time     `json:"deliveryDate"`
	Note             *string        `json:"note"`
	RecipientName    *string        `json:"recipientName"`
	RecipientPhone   *string        `json:"recipientPhone"`
	RecipientAddress *string        `json:"recipientAddress"`
	CreatedByID      *uint          `gorm:"index" json:"createdById"`
	OrderDetails     []OrderDetail  `gorm:"foreignKey:OrderID" json:"orderDetails"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// RemainingAmount is what the customer still owes. It is never stored.
func (o Order) RemainingAmount() float64 {
	return o.TotalAmount - o.DepositAmount
}

// PaymentProgress is the deposit as a percentage of the total, within [0, 100].
func (o Order) PaymentProgress() float64 {
	if o.TotalAmount <= 0 {
		return 0
	}
	p := o.DepositAmount / o.TotalAmount * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// OrderDetail is one line of an order: a design printed in some quantity.
type OrderDetail struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	OrderID           uint             `gorm:"not null;index" json:"orderId"`
	DesignID          uint             `gorm:"not null;index" json:"designId"`
	Design            *Design          `gorm:"foreignKey:DesignID" json:"design,omitempty"`
	Quantity          int              `gorm:"not null;check:quantity >= 0" json:"quantity"`
	UnitPrice         float64          `gorm:"not null;default:0;check:unit_price >= 0" json:"unitPrice"`
	TotalPrice        float64          `gorm:"not null;default:0" json:"totalPrice"`
	Requirements      *string          `json:"requirements"`
	IsCutOver         bool             `gorm:"not null;default:false" json:"isCutOver"`
	ItemStatus        *OrderItemStatus `json:"itemStatus"`
	DerivedStatus     *OrderItemStatus `json:"derivedStatus"`
	// AvailableQuantity is quantity minus what proofing orders already took.
	AvailableQuantity int              `gorm:"-" json:"availableQuantity"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// TableName specifies the table name for the OrderDetail model
func (OrderDetail) TableName() string {
	return "order_details"
}

// EffectiveStatus picks the status vocabulary gated by IsCutOver.
func (d OrderDetail) EffectiveStatus() *OrderItemStatus {
	if d.IsCutOver {
		return d.ItemStatus
	}
	return d.DerivedStatus
}

// LineTotal is quantity × unit price.
func (d OrderDetail) LineTotal() float64 {
	return float64(d.Quantity) * d.UnitPrice
}

// MaterialTypeID returns the material of the line's design, or 0 when unknown.
func (d OrderDetail) MaterialTypeID() uint {
	if d.Design == nil {
		return 0
	}
	return d.Design.MaterialTypeID
}

// Payment is money received against an order.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"orderId"`
	Amount    float64   `gorm:"not null;check:amount >= 0" json:"amount"`
	Method    string    `gorm:"not null" json:"method"`
	PaidAt    time.Time `json:"paidAt"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// Invoice is a tax invoice issued for an order.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderID       uint          `gorm:"not null;index" json:"orderId"`
	InvoiceNumber string        `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	Amount        float64       `gorm:"not null;check:amount >= 0" json:"amount"`
	TaxAmount     float64       `gorm:"not null;default:0" json:"taxAmount"`
	Status        InvoiceStatus `gorm:"not null;default:'draft'" json:"status"`
	IssuedAt      *time.Time    `json:"issuedAt"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// DeliveryNote records goods handed over to the recipient.
type DeliveryNote struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OrderID       uint           `gorm:"not null;index" json:"orderId"`
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`
	Status        DeliveryStatus `gorm:"not null;default:'pending'" json:"status"`
	RecipientName *string        `json:"recipientName"`
	DeliveredAt   *time.Time     `json:"deliveredAt"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// TableName specifies the table name for the DeliveryNote model
func (DeliveryNote) TableName() string {
	return "delivery_notes"
}
