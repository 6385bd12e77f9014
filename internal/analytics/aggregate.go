package analytics

import (
	"fmt"
	"slices"
	"strings"

	"orders-dashboard/internal/models"
)

// DefaultLimit is the top-N size used when a caller passes limit <= 0.
const DefaultLimit = 10

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// groups is an insertion-ordered string-keyed map. Aggregations sort with a
// stable sort over values(), so records that tie on the sort key keep their
// first-encounter order.
type groups[V any] struct {
	keys []string
	m    map[string]*V
}

func newGroups[V any]() *groups[V] {
	return &groups[V]{m: make(map[string]*V)}
}

func (g *groups[V]) get(key string) *V {
	if v, ok := g.m[key]; ok {
		return v
	}
	v := new(V)
	g.m[key] = v
	g.keys = append(g.keys, key)
	return v
}

func (g *groups[V]) each(fn func(key string, v *V)) {
	for _, k := range g.keys {
		fn(k, g.m[k])
	}
}

func (g *groups[V]) len() int { return len(g.keys) }

// cleanItemName reduces a possibly multi-line item cell to the first listed
// item: first line only, leading "-" marker stripped, surrounding whitespace
// trimmed. Returns "" when nothing usable remains.
func cleanItemName(raw string) string {
	first, _, _ := strings.Cut(raw, "\n")
	return strings.TrimSpace(strings.TrimPrefix(first, "-"))
}

// truncateName shortens display names longer than max runes, keeping the
// full value available alongside.
func truncateName(name string, max int) string {
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	return string(r[:max]) + "..."
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// TopItems ranks cleaned item names by line-item frequency. Counts are per
// record, not per order: an order listing the same item twice counts twice.
// Revenue attributes the whole order total to every record of the group.
func TopItems(records []models.OrderRecord, limit int) []models.ItemSummary {
	limit = clampLimit(limit)

	type itemGroup struct {
		count   int
		revenue float64
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
		grp.count++
		grp.revenue += rec.OrderTotal
	}

	out := make([]models.ItemSummary, 0, g.len())
	g.each(func(name string, grp *itemGroup) {
		out = append(out, models.ItemSummary{
			Name:     truncateName(name, 40),
			FullName: name,
			Count:    grp.count,
			Revenue:  grp.revenue,
		})
	})
	slices.SortStableFunc(out, func(a, b models.ItemSummary) int {
		return b.Count - a.Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopBrands ranks trimmed brand names by line-item frequency. Cells holding
// "-" or more than one line have no single attributable brand and are
// excluded here (but not from item aggregation).
func TopBrands(records []models.OrderRecord, limit int) []models.BrandSummary {
	limit = clampLimit(limit)

	type brandGroup struct {
		count   int
		revenue float64
	}
	g := newGroups[brandGroup]()

	for _, rec := range records {
		brand := rec.ItemBrand
		if brand == "" || brand == "-" || strings.Contains(brand, "\n") {
			continue
		}
		name := strings.TrimSpace(brand)
		if name == "" {
			continue
		}
		grp := g.get(name)
		grp.count++
		grp.revenue += rec.OrderTotal
	}

	out := make([]models.BrandSummary, 0, g.len())
	g.each(func(name string, grp *brandGroup) {
		out = append(out, models.BrandSummary{
			Name:    name,
			Count:   grp.count,
			Revenue: grp.revenue,
		})
	})
	slices.SortStableFunc(out, func(a, b models.BrandSummary) int {
		return b.Count - a.Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopCustomers ranks customers by distinct order count. There is no customer
// ID in the export, so the name is the grouping key. Spending is summed over
// line items, which attributes the order total once per item ordered; the
// average divides that by the distinct order count.
func TopCustomers(records []models.OrderRecord, limit int) []models.CustomerSummary {
	limit = clampLimit(limit)

	type customerGroup struct {
		email  string
		orders map[string]struct{}
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
		}
		grp.orders[rec.OrderNo] = struct{}{}
		grp.spent += rec.OrderTotal
		// Last-seen email wins; the export does not reconcile them.
		grp.email = rec.Email
	}

	out := make([]models.CustomerSummary, 0, g.len())
	g.each(func(name string, grp *customerGroup) {
		n := len(grp.orders)
		avg := 0.0
		if n > 0 {
			avg = grp.spent / float64(n)
		}
		out = append(out, models.CustomerSummary{
			Name:          truncateName(name, 35),
			FullName:      name,
			Email:         grp.email,
			OrderCount:    n,
			TotalSpent:    grp.spent,
			AvgOrderValue: avg,
		})
	})
	slices.SortStableFunc(out, func(a, b models.CustomerSummary) int {
		return b.OrderCount - a.OrderCount
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// OrdersByState buckets records by state with "Unknown" as the explicit
// fallback bucket. Counts are raw record counts, not deduplicated by order.
func OrdersByState(records []models.OrderRecord) []models.StateSummary {
	type stateGroup struct {
		count   int
		revenue float64
	}
	g := newGroups[stateGroup]()

	for _, rec := range records {
		state := rec.State
		if state == "" {
			state = "Unknown"
		}
		grp := g.get(state)
		grp.count++
		grp.revenue += rec.OrderTotal
	}

	out := make([]models.StateSummary, 0, g.len())
	g.each(func(state string, grp *stateGroup) {
		out = append(out, models.StateSummary{
			State:   state,
			Count:   grp.count,
			Revenue: grp.revenue,
		})
	})
	slices.SortStableFunc(out, func(a, b models.StateSummary) int {
		return b.Count - a.Count
	})
	return out
}

// MonthlyTrend buckets records by year and month, chronologically ascending.
// The zero-padded "YYYY-MM" key makes lexical order equal chronological
// order. Records missing either component are skipped.
func MonthlyTrend(records []models.OrderRecord) []models.MonthBucket {
	type monthGroup struct {
		label   string
		orders  map[string]struct{}
		revenue float64
	}
	g := newGroups[monthGroup]()

	for _, rec := range records {
		if rec.OrderYear == 0 || rec.OrderMonth == 0 {
			continue
		}
		key := fmt.Sprintf("%d-%02d", rec.OrderYear, rec.OrderMonth)
		grp := g.get(key)
		if grp.orders == nil {
			grp.orders = make(map[string]struct{})
			grp.label = monthLabel(rec.OrderYear, rec.OrderMonth)
		}
		grp.orders[rec.OrderNo] = struct{}{}
		grp.revenue += rec.OrderTotal
	}

	out := make([]models.MonthBucket, 0, g.len())
	g.each(func(key string, grp *monthGroup) {
		out = append(out, models.MonthBucket{
			Month:   key,
			Label:   grp.label,
			Orders:  len(grp.orders),
			Revenue: grp.revenue,
		})
	})
	slices.SortFunc(out, func(a, b models.MonthBucket) int {
		return strings.Compare(a.Month, b.Month)
	})
	return out
}

func monthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d-%02d", year, month)
	}
	return fmt.Sprintf("%s %02d", monthNames[month-1], year%100)
}

// ComputeOverviewStats summarizes the filtered set at the order level. This
// is the one aggregation that deduplicates revenue: the first-seen total per
// order number counts once, however many line items the order has.
func ComputeOverviewStats(records []models.OrderRecord) models.OverviewStats {
	seen := make(map[string]struct{})
	customers := make(map[string]struct{})
	var revenue float64

	for _, rec := range records {
		if _, ok := seen[rec.OrderNo]; !ok {
			seen[rec.OrderNo] = struct{}{}
			revenue += rec.OrderTotal
		}
		if rec.CustomerName != "" {
			customers[rec.CustomerName] = struct{}{}
		}
	}

	stats := models.OverviewStats{
		TotalOrders:     len(seen),
		TotalRevenue:    revenue,
		UniqueCustomers: len(customers),
	}
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}
	return stats
}
