package analytics

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"orders-dashboard/internal/models"
)

// Filter is the combined predicate applied to the record set before any
// aggregation runs. Empty criteria are unconstrained: a zero Filter matches
// every record.
type Filter struct {
	Search    string    `json:"search"`
	Brands    []string  `json:"brands"`
	States    []string  `json:"states"`
	DateRange DateRange `json:"dateRange"`
}

// DateRange bounds are ISO-8601 date strings compared lexically; an empty
// bound is unconstrained on that side. Both bounds are inclusive.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether no criterion is active.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" &&
		len(f.Brands) == 0 &&
		len(f.States) == 0 &&
		f.DateRange.Start == "" &&
		f.DateRange.End == ""
}

// Matches evaluates one record against the filter. Criteria combine with AND
// across dimensions; within the brand and state sets any one match suffices.
// Absent record fields never match an active criterion.
func (f Filter) Matches(rec models.OrderRecord) bool {
	if len(f.Brands) > 0 {
		recBrand := strings.TrimSpace(rec.ItemBrand)
		matched := false
		for _, b := range f.Brands {
			// Substring on purpose: brand cells carry multi-token noise.
			if strings.Contains(recBrand, b) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.States) > 0 && !slices.Contains(f.States, rec.State) {
		return false
	}

	if f.DateRange.Start != "" && rec.OrderDate < f.DateRange.Start {
		return false
	}
	if f.DateRange.End != "" && rec.OrderDate > f.DateRange.End {
		return false
	}

	if strings.TrimSpace(f.Search) != "" {
		needle := strings.ToLower(f.Search)
		fields := make([]string, 0, 5)
		for _, v := range []string{rec.ItemName, rec.CustomerName, rec.OrderNo, rec.ItemBrand, rec.State} {
			if v != "" {
				fields = append(fields, v)
			}
		}
		haystack := strings.ToLower(strings.Join(fields, " "))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}

	return true
}

// FilterOrders returns the records matching the filter. With a zero filter it
// returns a list equal to the input.
func FilterOrders(records []models.OrderRecord, f Filter) []models.OrderRecord {
	if f.IsZero() {
		return records
	}
	out := make([]models.OrderRecord, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Hash returns a canonical 64-bit digest of the filter. Brands and states are
// set-valued, so their order does not affect the digest.
func (f Filter) Hash() uint64 {
	brands := slices.Clone(f.Brands)
	slices.Sort(brands)
	states := slices.Clone(f.States)
	slices.Sort(states)

	d := xxhash.New()
	writeField := func(s string) {
		d.WriteString(s)
		d.Write([]byte{0})
	}
	writeField(f.Search)
	for _, b := range brands {
		writeField(b)
	}
	d.Write([]byte{1})
	for _, s := range states {
		writeField(s)
	}
	d.Write([]byte{1})
	writeField(f.DateRange.Start)
	writeField(f.DateRange.End)
	return d.Sum64()
}
