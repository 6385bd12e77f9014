package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orders-dashboard/internal/models"
)

func TestCustomerBreakdown(t *testing.T) {
	records := []models.OrderRecord{
		{OrderNo: "1", CustomerName: "Aina", Email: "aina@example.com", State: "SELANGOR", ItemName: "Oil", OrderTotal: 10},
		{OrderNo: "1", CustomerName: "Aina", Email: "aina@example.com", State: "SELANGOR", ItemName: "Sugar", OrderTotal: 10},
		{OrderNo: "2", CustomerName: "Aina", Email: "aina@example.com", State: "SELANGOR", ItemName: "Oil", OrderTotal: 30},
		{OrderNo: "3", CustomerName: "Ben", Email: "ben@example.com", State: "PENANG", ItemName: "Sauce", OrderTotal: 100},
	}

	got := ComputeCustomerBreakdown(records)
	require.NotNil(t, got.Stats)
	require.Len(t, got.Customers, 2)

	aina := got.Customers[0]
	assert.Equal(t, "Aina", aina.Name)
	assert.Equal(t, 2, aina.OrderCount)
	assert.Equal(t, 2, aina.ItemCount, "distinct item names")
	assert.Equal(t, 50.0, aina.TotalSpent)
	assert.Equal(t, 25.0, aina.AvgOrderValue)

	assert.Equal(t, 2, got.Stats.TotalCustomers)
	assert.Equal(t, "Ben", got.Stats.TopSpender.Name, "top spender ranks by spending, not order count")
	assert.Equal(t, 1.5, got.Stats.AvgOrdersPerCustomer)
}

func TestCustomerBreakdownEmpty(t *testing.T) {
	got := ComputeCustomerBreakdown(nil)
	assert.NotNil(t, got.Customers)
	assert.Empty(t, got.Customers)
	assert.Nil(t, got.Stats, "nil stats is the no-data sentinel")

	// Records exist but none carry a customer name.
	got = ComputeCustomerBreakdown([]models.OrderRecord{{OrderNo: "1", OrderTotal: 5}})
	assert.Empty(t, got.Customers)
	assert.Nil(t, got.Stats)
}

func TestItemBreakdown(t *testing.T) {
	records := []models.OrderRecord{
		{OrderNo: "1", ItemName: "-Oil 500ml\n-Sugar", ItemBrand: "TropiPure", CustomerName: "Aina", OrderTotal: 10},
		{OrderNo: "2", ItemName: "Oil 500ml", ItemBrand: "TropiPure", CustomerName: "Ben", OrderTotal: 30},
		{OrderNo: "3", ItemName: "Sauce", ItemBrand: "Kicapmas", CustomerName: "Ben", OrderTotal: 5},
	}

	got := ComputeItemBreakdown(records)
	require.NotNil(t, got.Stats)
	require.Len(t, got.Items, 2)

	oil := got.Items[0]
	assert.Equal(t, "Oil 500ml", oil.Name)
	assert.Equal(t, 2, oil.OrderCount)
	assert.Equal(t, 40.0, oil.TotalRevenue)
	assert.Equal(t, 2, oil.CustomerCount)
	assert.Equal(t, 20.0, oil.AvgRevenue)

	assert.Equal(t, 2, got.Stats.TotalItems)
	assert.Equal(t, "Oil 500ml", got.Stats.TopItem.Name)
	assert.Equal(t, 45.0, got.Stats.TotalItemRevenue)
}

func TestGeoBreakdown(t *testing.T) {
	records := []models.OrderRecord{
		{OrderNo: "1", State: "SELANGOR", CustomerName: "Aina", OrderTotal: 10},
		{OrderNo: "1", State: "SELANGOR", CustomerName: "Aina", OrderTotal: 10},
		{OrderNo: "2", State: "SELANGOR", CustomerName: "Ben", OrderTotal: 30},
		{OrderNo: "3", State: "", CustomerName: "Cik", OrderTotal: 5},
		{OrderNo: "4", State: "JOHOR", CustomerName: "Dan", OrderTotal: 20},
	}

	got := ComputeGeoBreakdown(records)
	require.NotNil(t, got.Stats)
	require.Len(t, got.States, 3)

	selangor := got.States[0]
	assert.Equal(t, "SELANGOR", selangor.State)
	assert.Equal(t, 2, selangor.Count, "distinct orders per state")
	assert.Equal(t, 50.0, selangor.Revenue)
	assert.Equal(t, 2, selangor.CustomerCount)
	assert.Equal(t, 25.0, selangor.AvgOrderValue)
	assert.Equal(t, 50.0, selangor.Percentage, "2 of 4 distinct orders")

	// Unknown is a first-class bucket but does not count as a state.
	states := make([]string, 0, 3)
	for _, s := range got.States {
		states = append(states, s.State)
	}
	assert.Contains(t, states, "Unknown")
	assert.Equal(t, 2, got.Stats.TotalStates)
	assert.Equal(t, "SELANGOR", got.Stats.TopState.State)
	assert.Equal(t, 75.0, got.Stats.TotalRevenue, "state revenue sums per line item")
}

func TestGeoBreakdownEmpty(t *testing.T) {
	got := ComputeGeoBreakdown(nil)
	assert.Empty(t, got.States)
	assert.Nil(t, got.Stats)
}
