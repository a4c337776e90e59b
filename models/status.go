package models

// OrderStatus is the lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending            OrderStatus = "pending"
	OrderStatusDesigning          OrderStatus = "designing"
	OrderStatusWaitingForProofing OrderStatus = "waiting_for_proofing"
	OrderStatusInProduction       OrderStatus = "in_production"
	OrderStatusCompleted          OrderStatus = "completed"
	OrderStatusDelivered          OrderStatus = "delivered"
	OrderStatusCancelled          OrderStatus = "cancelled"
)

// OrderItemStatus is the explicit per-line status used after cutover.
type OrderItemStatus string

const (
	ItemStatusPending      OrderItemStatus = "pending"
	ItemStatusDesigning    OrderItemStatus = "designing"
	ItemStatusProofing     OrderItemStatus = "proofing"
	ItemStatusInProduction OrderItemStatus = "in_production"
	ItemStatusCompleted    OrderItemStatus = "completed"
	ItemStatusCancelled    OrderItemStatus = "cancelled"
)

// ProofingStatus is the lifecycle of a proofing order.
type ProofingStatus string

const (
	ProofingStatusDraft        ProofingStatus = "draft"
	ProofingStatusWaitingPlate ProofingStatus = "waiting_for_plate"
	ProofingStatusReadyToPrint ProofingStatus = "ready_to_print"
	ProofingStatusInProduction ProofingStatus = "in_production"
	ProofingStatusCompleted    ProofingStatus = "completed"
	ProofingStatusCancelled    ProofingStatus = "cancelled"
)

// ProductionStatus is the lifecycle of a production run.
type ProductionStatus string

const (
	ProductionStatusWaiting    ProductionStatus = "waiting"
	ProductionStatusInProgress ProductionStatus = "in_progress"
	ProductionStatusCompleted  ProductionStatus = "completed"
	ProductionStatusFailed     ProductionStatus = "failed"
)

// DeliveryStatus is the lifecycle of a delivery note.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusShipping  DeliveryStatus = "shipping"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusReturned  DeliveryStatus = "returned"
)

// DesignStatus tracks a design through the designer's queue.
type DesignStatus string

const (
	DesignStatusPending    DesignStatus = "pending"
	DesignStatusInProgress DesignStatus = "in_progress"
	DesignStatusCompleted  DesignStatus = "completed"
)

// InvoiceStatus tracks issued invoices.
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// UserRole is the role of a staff member.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleDesigner   UserRole = "designer"
	RoleProofer    UserRole = "proofer"
	RoleAccountant UserRole = "accountant"
	RoleProduction UserRole = "production"
)
