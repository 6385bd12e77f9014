package analytics

import (
	"slices"

	"orders-dashboard/internal/models"
)

// View breakdowns are the heavier per-page rollups. Unlike the top-N
// aggregations they return every group plus headline stats, with a nil
// stats pointer as the "no data" sentinel.

func ComputeCustomerBreakdown(records []models.OrderRecord) models.CustomerBreakdown {
	if len(records) == 0 {
		return models.CustomerBreakdown{Customers: []models.CustomerRow{}}
	}

	type customerGroup struct {
		email  string
		state  string
		orders map[string]struct{}
		items  map[string]struct{}
		spent  float64
	}
	g := newGroups[customerGroup]()

	for _, rec := range records {
		if rec.CustomerName == "" {
			continue
		}
		grp := g.get(rec.CustomerName)
		if grp.orders == nil {
			grp.orders = make(map[string]struct{})
			grp.items = make(map[string]struct{})
		}
		grp.orders[rec.OrderNo] = struct{}{}
		grp.spent += rec.OrderTotal
		grp.email = rec.Email
		grp.state = rec.State
		if rec.ItemName != "" {
			grp.items[rec.ItemName] = struct{}{}
		}
	}

	rows := make([]models.CustomerRow, 0, g.len())
	g.each(func(name string, grp *customerGroup) {
		n := len(grp.orders)
		avg := 0.0
		if n > 0 {
			avg = grp.spent / float64(n)
		}
		rows = append(rows, models.CustomerRow{
			Name:          name,
			Email:         grp.email,
			State:         grp.state,
			OrderCount:    n,
			ItemCount:     len(grp.items),
			TotalSpent:    grp.spent,
			AvgOrderValue: avg,
		})
	})
	slices.SortStableFunc(rows, func(a, b models.CustomerRow) int {
		return b.OrderCount - a.OrderCount
	})

	if len(rows) == 0 {
		return models.CustomerBreakdown{Customers: rows}
	}

	top := rows[0]
	totalOrders := 0
	for _, r := range rows {
		totalOrders += r.OrderCount
		if r.TotalSpent > top.TotalSpent {
			top = r
		}
	}

	return models.CustomerBreakdown{
		Customers: rows,
		Stats: &models.CustomerStats{
			TotalCustomers:       len(rows),
			TopSpender:           top,
			AvgOrdersPerCustomer: float64(totalOrders) / float64(len(rows)),
		},
	}
}

func ComputeItemBreakdown(records []models.OrderRecord) models.ItemBreakdown {
	if len(records) == 0 {
		return models.ItemBreakdown{Items: []models.ItemRow{}}
	}

	type itemGroup struct {
		brand     string
		count     int
		revenue   float64
		customers map[string]struct{}
	}
	g := newGroups[itemGroup]()

	for _, rec := range records {
		if rec.ItemName == "" {
			continue
		}
		name := cleanItemName(rec.ItemName)
		if name == "" {
			continue
		}
		grp := g.get(name)
		if grp.customers == nil {
			grp.customers = make(map[string]struct{})
			grp.brand = rec.ItemBrand
		}
		grp.count++
		grp.revenue += rec.OrderTotal
		if rec.CustomerName != "" {
			grp.customers[rec.CustomerName] = struct{}{}
		}
	}

	rows := make([]models.ItemRow, 0, g.len())
	var totalRevenue float64
	g.each(func(name string, grp *itemGroup) {
		avg := 0.0
		if grp.count > 0 {
			avg = grp.revenue / float64(grp.count)
		}
		totalRevenue += grp.revenue
		rows = append(rows, models.ItemRow{
			Name:          name,
			Brand:         grp.brand,
			OrderCount:    grp.count,
			TotalRevenue:  grp.revenue,
			CustomerCount: len(grp.customers),
			AvgRevenue:    avg,
		})
	})
	slices.SortStableFunc(rows, func(a, b models.ItemRow) int {
		return b.OrderCount - a.OrderCount
	})

	if len(rows) == 0 {
		return models.ItemBreakdown{Items: rows}
	}

	return models.ItemBreakdown{
		Items: rows,
		Stats: &models.ItemStats{
			TotalItems:       len(rows),
			TopItem:          rows[0],
			TotalItemRevenue: totalRevenue,
		},
	}
}

func ComputeGeoBreakdown(records []models.OrderRecord) models.GeoBreakdown {
	if len(records) == 0 {
		return models.GeoBreakdown{States: []models.StateRow{}}
	}

	type stateGroup struct {
		orders    map[string]struct{}
		revenue   float64
		customers map[string]struct{}
	}
	g := newGroups[stateGroup]()
	allOrders := make(map[string]struct{})

	for _, rec := range records {
		state := rec.State
		if state == "" {
			state = "Unknown"
		}
		allOrders[rec.OrderNo] = struct{}{}

		grp := g.get(state)
		if grp.orders == nil {
			grp.orders = make(map[string]struct{})
			grp.customers = make(map[string]struct{})
		}
		grp.orders[rec.OrderNo] = struct{}{}
		grp.revenue += rec.OrderTotal
		if rec.CustomerName != "" {
			grp.customers[rec.CustomerName] = struct{}{}
		}
	}

	rows := make([]models.StateRow, 0, g.len())
	var totalRevenue float64
	totalStates := 0
	g.each(func(state string, grp *stateGroup) {
		n := len(grp.orders)
		avg := 0.0
		if n > 0 {
			avg = grp.revenue / float64(n)
		}
		pct := 0.0
		if len(allOrders) > 0 {
			pct = float64(n) / float64(len(allOrders)) * 100
		}
		totalRevenue += grp.revenue
		if state != "Unknown" {
			totalStates++
		}
		rows = append(rows, models.StateRow{
			State:         state,
			Count:         n,
			Revenue:       grp.revenue,
			CustomerCount: len(grp.customers),
			AvgOrderValue: avg,
			Percentage:    pct,
		})
	})
	slices.SortStableFunc(rows, func(a, b models.StateRow) int {
		return b.Count - a.Count
	})

	return models.GeoBreakdown{
		States: rows,
		Stats: &models.GeoStats{
			TotalStates:  totalStates,
			TopState:     rows[0],
			TotalRevenue: totalRevenue,
		},
	}
}
