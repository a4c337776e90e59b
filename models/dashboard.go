package models

// OrderSummary aggregates a set of orders.
type OrderSummary struct {
	TotalOrders            int                 `json:"totalOrders"`
	CountsByStatus         map[OrderStatus]int `json:"countsByStatus"`
	Revenue                float64             `json:"revenue"`
	Deposits               float64             `json:"deposits"`
	Outstanding            float64             `json:"outstanding"`
	AveragePaymentProgress float64             `json:"averagePaymentProgress"`
}

// DesignerWorkload buckets one designer's designs by status.
type DesignerWorkload struct {
	DesignerID uint `json:"designerId"`
	Pending    int  `json:"pending"`
	InProgress int  `json:"inProgress"`
	Completed  int  `json:"completed"`
}

// Total is the number of designs assigned to the designer.
func (w DesignerWorkload) Total() int {
	return w.Pending + w.InProgress + w.Completed
}

// ManagerDashboard is the manager's overview of the shop.
type ManagerDashboard struct {
	Orders                   OrderSummary           `json:"orders"`
	ProductionCompletionRate float64                `json:"productionCompletionRate"`
	ProofingByStatus         map[ProofingStatus]int `json:"proofingByStatus"`
	DesignerWorkload         []DesignerWorkload     `json:"designerWorkload"`
}

// EmployeeDashboard is one staff member's view of their own work.
type EmployeeDashboard struct {
	UserID               uint             `json:"userId"`
	Designs              DesignerWorkload `json:"designs"`
	ActiveProductions    int              `json:"activeProductions"`
	CompletedProductions int              `json:"completedProductions"`
}
