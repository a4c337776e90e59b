package editor

import (
	"testing"
	"time"

	"github.com/printshop/printshop-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderInfoDraft_ToRequest(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)

	req, err := OrderInfoDraft{Status: " designing ", DeliveryDate: "2024-03-05", Note: "   "}.ToRequest(loc)
	require.NoError(t, err)

	status, ok := req.Status.Get()
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusDesigning, status)

	date, ok := req.DeliveryDate.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), date, "local midnight sent as UTC")

	assert.True(t, req.Note.IsNull(), "blank note is cleared")
	assert.False(t, req.TotalAmount.IsSet(), "fields of other cards are not sent")
}

func TestOrderInfoDraft_Invalid(t *testing.T) {
	_, err := OrderInfoDraft{Status: "pending", DeliveryDate: "05/03/2024"}.ToRequest(time.UTC)
	assert.Error(t, err)

	_, err = OrderInfoDraft{Status: "shipped"}.ToRequest(time.UTC)
	assert.Error(t, err)
}

func TestOrderInfoDraftSeedsLocalDate(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	delivery := time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)
	d := newOrderInfoDraft(&models.Order{DeliveryDate: &delivery}, loc)
	assert.Equal(t, "2024-03-05", d.DeliveryDate)
}

func TestCustomerInfoDraft_ToRequest(t *testing.T) {
	req, err := CustomerInfoDraft{Name: " ABC ", Email: "", Phone: "0901"}.ToRequest()
	require.NoError(t, err)

	name, _ := req.Name.Get()
	assert.Equal(t, "ABC", name)
	assert.True(t, req.Email.IsNull())
	assert.True(t, req.CompanyName.IsNull())

	_, err = CustomerInfoDraft{Name: "ABC", Email: "not-an-email"}.ToRequest()
	assert.Error(t, err)
}

func TestOrderDetailDraft_ToRequest(t *testing.T) {
	req, err := OrderDetailDraft{ID: 3, Quantity: "", UnitPrice: "2500.5"}.ToRequest()
	require.NoError(t, err)
	assert.True(t, req.Quantity.IsNull())
	price, _ := req.UnitPrice.Get()
	assert.Equal(t, 2500.5, price)
	assert.True(t, req.ItemStatus.IsNull())

	_, err = OrderDetailDraft{Quantity: "1.5"}.ToRequest()
	assert.Error(t, err)
}
