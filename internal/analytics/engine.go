package analytics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"orders-dashboard/internal/models"
)

// maxCachedFilters bounds the memoized filtered lists kept per dataset. The
// cache resets wholesale when full; filter churn is user-paced, so entries
// are cheap to rebuild.
const maxCachedFilters = 64

// Engine owns the immutable dataset for the session and derives every view
// from it on demand. Derivation is filter-then-aggregate: the filtered record
// list is memoized by filter hash, the aggregations themselves are pure and
// cheap enough to rerun per request.
type Engine struct {
	mu       sync.RWMutex
	records  []models.OrderRecord
	meta     *models.Metadata
	version  uuid.UUID
	loadedAt time.Time
	filtered map[uint64][]models.OrderRecord
	logger   *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		filtered: make(map[uint64][]models.OrderRecord),
		logger:   logger,
	}
}

// SetDataset installs a freshly loaded dataset. The records slice must not be
// mutated by the caller afterwards. All memoized derivations are dropped.
func (e *Engine) SetDataset(records []models.OrderRecord, meta *models.Metadata) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.records = records
	e.meta = meta
	e.version = uuid.New()
	e.loadedAt = time.Now()
	e.filtered = make(map[uint64][]models.OrderRecord)

	e.logger.Info("dataset installed",
		"records", len(records),
		"version", e.version,
	)
}

// Ready reports whether a dataset has been installed.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.meta != nil
}

func (e *Engine) Metadata() *models.Metadata {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.meta
}

// Derive returns the records matching the filter, memoized per filter hash.
// The returned slice is shared; callers must treat it as read-only.
func (e *Engine) Derive(f Filter) []models.OrderRecord {
	if f.IsZero() {
		e.mu.RLock()
		defer e.mu.RUnlock()
		return e.records
	}

	key := f.Hash()

	e.mu.RLock()
	cached, ok := e.filtered[key]
	records := e.records
	e.mu.RUnlock()
	if ok {
		return cached
	}

	result := FilterOrders(records, f)

	e.mu.Lock()
	if len(e.filtered) >= maxCachedFilters {
		e.filtered = make(map[uint64][]models.OrderRecord)
	}
	e.filtered[key] = result
	e.mu.Unlock()

	return result
}

func (e *Engine) Overview(f Filter) models.OverviewStats {
	return ComputeOverviewStats(e.Derive(f))
}

func (e *Engine) TopItems(f Filter, limit int) []models.ItemSummary {
	return TopItems(e.Derive(f), limit)
}

func (e *Engine) TopBrands(f Filter, limit int) []models.BrandSummary {
	return TopBrands(e.Derive(f), limit)
}

func (e *Engine) TopCustomers(f Filter, limit int) []models.CustomerSummary {
	return TopCustomers(e.Derive(f), limit)
}

func (e *Engine) OrdersByState(f Filter) []models.StateSummary {
	return OrdersByState(e.Derive(f))
}

func (e *Engine) MonthlyTrend(f Filter) []models.MonthBucket {
	return MonthlyTrend(e.Derive(f))
}

func (e *Engine) Customers(f Filter) models.CustomerBreakdown {
	return ComputeCustomerBreakdown(e.Derive(f))
}

func (e *Engine) Items(f Filter) models.ItemBreakdown {
	return ComputeItemBreakdown(e.Derive(f))
}

func (e *Engine) Geographic(f Filter) models.GeoBreakdown {
	return ComputeGeoBreakdown(e.Derive(f))
}

// Records is the raw filtered list for tabular views.
func (e *Engine) Records(f Filter) []models.OrderRecord {
	return e.Derive(f)
}

// Stats reports engine internals for the admin endpoint.
func (e *Engine) Stats() map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return map[string]any{
		"record_count":     len(e.records),
		"dataset_version":  e.version.String(),
		"loaded_at":        e.loadedAt,
		"cached_filters":   len(e.filtered),
		"metadata_present": e.meta != nil,
	}
}
