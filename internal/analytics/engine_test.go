package analytics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orders-dashboard/internal/models"
)

func newTestEngine(records []models.OrderRecord) *Engine {
	e := NewEngine(nil)
	e.SetDataset(records, &models.Metadata{
		TotalRecords: len(records),
		States:       []string{"SELANGOR", "PENANG", "JOHOR"},
		Brands:       []string{"TropiPure", "Kicapmas"},
	})
	return e
}

func TestEngineReady(t *testing.T) {
	e := NewEngine(nil)
	assert.False(t, e.Ready())

	e.SetDataset(nil, &models.Metadata{})
	assert.True(t, e.Ready())
}

func TestEngineDeriveMemoizes(t *testing.T) {
	e := newTestEngine(sampleRecords())
	f := Filter{States: []string{"SELANGOR"}}

	first := e.Derive(f)
	second := e.Derive(f)
	require.Len(t, first, 2)

	// Memoized: the exact same backing slice comes back.
	assert.Same(t, &first[0], &second[0], "repeated derivation must hit the cache")

	// An equivalent filter built separately hashes the same.
	third := e.Derive(Filter{States: []string{"SELANGOR"}})
	assert.Same(t, &first[0], &third[0])
}

func TestEngineZeroFilterReturnsDataset(t *testing.T) {
	records := sampleRecords()
	e := newTestEngine(records)

	got := e.Derive(Filter{})
	require.Len(t, got, len(records))
	assert.Equal(t, records, got)
	assert.Zero(t, e.Stats()["cached_filters"], "the zero filter bypasses the cache")
}

func TestEngineDatasetChangeInvalidates(t *testing.T) {
	e := newTestEngine(sampleRecords())
	f := Filter{States: []string{"SELANGOR"}}

	before := e.Derive(f)
	require.Len(t, before, 2)
	versionBefore := e.Stats()["dataset_version"]

	e.SetDataset(scenarioRecords(), &models.Metadata{TotalRecords: 3})

	after := e.Derive(f)
	assert.Empty(t, after, "stale filtered lists must not survive a dataset change")
	assert.NotEqual(t, versionBefore, e.Stats()["dataset_version"])
}

func TestEngineQueryMethods(t *testing.T) {
	e := newTestEngine(sampleRecords())
	f := Filter{}

	stats := e.Overview(f)
	assert.Equal(t, 4, stats.TotalOrders)

	assert.NotEmpty(t, e.TopItems(f, 0))
	assert.NotEmpty(t, e.TopBrands(f, 0))
	assert.NotEmpty(t, e.TopCustomers(f, 0))
	assert.NotEmpty(t, e.OrdersByState(f))
	assert.NotEmpty(t, e.MonthlyTrend(f))
	assert.NotNil(t, e.Customers(f).Stats)
	assert.NotNil(t, e.Items(f).Stats)
	assert.NotNil(t, e.Geographic(f).Stats)
	assert.Len(t, e.Records(f), len(sampleRecords()))

	require.NotNil(t, e.Metadata())
	assert.Equal(t, len(sampleRecords()), e.Metadata().TotalRecords)
}

func TestEngineConcurrentAccess(t *testing.T) {
	e := newTestEngine(sampleRecords())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			f := Filter{States: []string{"SELANGOR"}}
			_ = e.Overview(f)
			_ = e.TopItems(f, 5)
			_ = e.OrdersByState(f)
			_ = e.MonthlyTrend(Filter{})
		}()
	}
	wg.Wait()
}

func TestEngineStats(t *testing.T) {
	e := newTestEngine(sampleRecords())
	e.Derive(Filter{Search: "oil"})

	stats := e.Stats()
	assert.Equal(t, len(sampleRecords()), stats["record_count"])
	assert.Equal(t, 1, stats["cached_filters"])
	assert.Equal(t, true, stats["metadata_present"])
	assert.NotEmpty(t, stats["dataset_version"])
}
