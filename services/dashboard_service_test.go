package services

import (
	"testing"

	"github.com/printshop/printshop-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestSummarizeOrders(t *testing.T) {
	orders := []models.Order{
		{Status: models.OrderStatusPending, TotalAmount: 1000000, DepositAmount: 500000},
		{Status: models.OrderStatusPending, TotalAmount: 300000, DepositAmount: 0},
		{Status: models.OrderStatusCompleted, TotalAmount: 0.3, DepositAmount: 0.1},
	}

	s := SummarizeOrders(orders)

	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 2, s.CountsByStatus[models.OrderStatusPending])
	assert.Equal(t, 1, s.CountsByStatus[models.OrderStatusCompleted])
	assert.Equal(t, 1300000.3, s.Revenue)
	assert.Equal(t, 500000.1, s.Deposits)
	assert.Equal(t, 800000.2, s.Outstanding)
	// (50 + 0 + 33.33...) / 3
	assert.InDelta(t, 27.78, s.AveragePaymentProgress, 0.001)
}

func TestSummarizeOrders_Empty(t *testing.T) {
	s := SummarizeOrders(nil)
	assert.Equal(t, 0, s.TotalOrders)
	assert.Equal(t, 0.0, s.AveragePaymentProgress)
	assert.NotNil(t, s.CountsByStatus)
}

func TestProductionCompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.ProductionStatus
		want     float64
	}{
		{"none", nil, 0},
		{"all done", []models.ProductionStatus{models.ProductionStatusCompleted}, 100},
		{"one of three", []models.ProductionStatus{
			models.ProductionStatusCompleted,
			models.ProductionStatusWaiting,
			models.ProductionStatusFailed,
		}, 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var productions []models.Production
			for _, s := range tt.statuses {
				productions = append(productions, models.Production{Status: s})
			}
			assert.Equal(t, tt.want, ProductionCompletionRate(productions))
		})
	}
}

func TestDesignerWorkload(t *testing.T) {
	designs := []models.Design{
		{DesignerID: uintPtr(9), Status: models.DesignStatusCompleted},
		{DesignerID: uintPtr(2), Status: models.DesignStatusPending},
		{DesignerID: uintPtr(2), Status: models.DesignStatusInProgress},
		{DesignerID: uintPtr(2), Status: models.DesignStatusInProgress},
		{Status: models.DesignStatusPending},
	}

	w := DesignerWorkload(designs)
	require.Len(t, w, 2)
	assert.Equal(t, models.DesignerWorkload{DesignerID: 2, Pending: 1, InProgress: 2}, w[0])
	assert.Equal(t, models.DesignerWorkload{DesignerID: 9, Completed: 1}, w[1])
	assert.Equal(t, 3, w[0].Total())
}

func TestBuildManagerDashboard(t *testing.T) {
	dash := BuildManagerDashboard(
		[]models.Order{{Status: models.OrderStatusDesigning, TotalAmount: 100}},
		[]models.ProofingOrder{{Status: models.ProofingStatusDraft}, {Status: models.ProofingStatusDraft}},
		[]models.Production{{Status: models.ProductionStatusCompleted}},
		[]models.Design{{DesignerID: uintPtr(1)}},
	)

	assert.Equal(t, 1, dash.Orders.TotalOrders)
	assert.Equal(t, 2, dash.ProofingByStatus[models.ProofingStatusDraft])
	assert.Equal(t, 100.0, dash.ProductionCompletionRate)
	assert.Len(t, dash.DesignerWorkload, 1)
}

func TestBuildEmployeeDashboard(t *testing.T) {
	designs := []models.Design{
		{DesignerID: uintPtr(5), Status: models.DesignStatusInProgress},
		{DesignerID: uintPtr(6), Status: models.DesignStatusInProgress},
	}
	productions := []models.Production{
		{OperatorID: uintPtr(5), Status: models.ProductionStatusInProgress},
		{OperatorID: uintPtr(5), Status: models.ProductionStatusCompleted},
		{OperatorID: uintPtr(5), Status: models.ProductionStatusFailed},
		{Status: models.ProductionStatusWaiting},
	}

	dash := BuildEmployeeDashboard(5, designs, productions)

	assert.Equal(t, uint(5), dash.UserID)
	assert.Equal(t, 1, dash.Designs.InProgress)
	assert.Equal(t, 1, dash.ActiveProductions)
	assert.Equal(t, 1, dash.CompletedProductions)
}
