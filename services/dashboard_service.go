package services

import (
	"sort"

	"github.com/printshop/printshop-api/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SummarizeOrders counts orders by status and totals their money fields.
// Sums are accumulated in decimal so large VND amounts do not drift.
func SummarizeOrders(orders []models.Order) models.OrderSummary {
	summary := models.OrderSummary{
		TotalOrders:    len(orders),
		CountsByStatus: make(map[models.OrderStatus]int),
	}

	revenue := decimal.Zero
	deposits := decimal.Zero
	progress := decimal.Zero
	for _, o := range orders {
		summary.CountsByStatus[o.Status]++
		revenue = revenue.Add(decimal.NewFromFloat(o.TotalAmount))
		deposits = deposits.Add(decimal.NewFromFloat(o.DepositAmount))
		progress = progress.Add(paymentProgress(o))
	}

	summary.Revenue = revenue.InexactFloat64()
	summary.Deposits = deposits.InexactFloat64()
	summary.Outstanding = revenue.Sub(deposits).InexactFloat64()
	if len(orders) > 0 {
		summary.AveragePaymentProgress = progress.
			Div(decimal.NewFromInt(int64(len(orders)))).
			Round(2).
			InexactFloat64()
	}
	return summary
}

func paymentProgress(o models.Order) decimal.Decimal {
	total := decimal.NewFromFloat(o.TotalAmount)
	if !total.IsPositive() {
		return decimal.Zero
	}
	p := decimal.NewFromFloat(o.DepositAmount).Div(total).Mul(hundred)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// ProductionCompletionRate is the completed share of productions in percent.
func ProductionCompletionRate(productions []models.Production) float64 {
	if len(productions) == 0 {
		return 0
	}
	completed := 0
	for _, p := range productions {
		if p.Status == models.ProductionStatusCompleted {
			completed++
		}
	}
	return decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(len(productions)))).
		Mul(hundred).
		Round(2).
		InexactFloat64()
}

// DesignerWorkload buckets designs per designer, ordered by designer id.
// Unassigned designs are skipped.
func DesignerWorkload(designs []models.Design) []models.DesignerWorkload {
	byDesigner := make(map[uint]*models.DesignerWorkload)
	for _, d := range designs {
		if d.DesignerID == nil {
			continue
		}
		w, ok := byDesigner[*d.DesignerID]
		if !ok {
			w = &models.DesignerWorkload{DesignerID: *d.DesignerID}
			byDesigner[*d.DesignerID] = w
		}
		addDesign(w, d.Status)
	}

	out := make([]models.DesignerWorkload, 0, len(byDesigner))
	for _, w := range byDesigner {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DesignerID < out[j].DesignerID })
	return out
}

func addDesign(w *models.DesignerWorkload, status models.DesignStatus) {
	switch status {
	case models.DesignStatusCompleted:
		w.Completed++
	case models.DesignStatusInProgress:
		w.InProgress++
	default:
		w.Pending++
	}
}

// BuildManagerDashboard composes the manager overview.
func BuildManagerDashboard(orders []models.Order, proofingOrders []models.ProofingOrder, productions []models.Production, designs []models.Design) models.ManagerDashboard {
	proofing := make(map[models.ProofingStatus]int)
	for _, po := range proofingOrders {
		proofing[po.Status]++
	}
	return models.ManagerDashboard{
		Orders:                   SummarizeOrders(orders),
		ProductionCompletionRate: ProductionCompletionRate(productions),
		ProofingByStatus:         proofing,
		DesignerWorkload:         DesignerWorkload(designs),
	}
}

// BuildEmployeeDashboard composes the view of one staff member: their designs
// and the productions they operate.
func BuildEmployeeDashboard(userID uint, designs []models.Design, productions []models.Production) models.EmployeeDashboard {
	dash := models.EmployeeDashboard{
		UserID:  userID,
		Designs: models.DesignerWorkload{DesignerID: userID},
	}
	for _, d := range designs {
		if d.DesignerID != nil && *d.DesignerID == userID {
			addDesign(&dash.Designs, d.Status)
		}
	}
	for _, p := range productions {
		if p.OperatorID == nil || *p.OperatorID != userID {
			continue
		}
		switch p.Status {
		case models.ProductionStatusCompleted:
			dash.CompletedProductions++
		case models.ProductionStatusWaiting, models.ProductionStatusInProgress:
			dash.ActiveProductions++
		}
	}
	return dash
}
