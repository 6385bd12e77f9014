package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orders-dashboard/internal/analytics"
	"orders-dashboard/internal/errors"
	"orders-dashboard/internal/models"
	"orders-dashboard/internal/observability"
)

const (
	cacheMaxAge = "public, max-age=300"
	maxLimit    = 100
	// /api/orders is a table feed; the count reports the full filtered size
	// but the rows are capped to keep payloads bounded.
	maxOrderRows = 500
)

type APIHandlers struct {
	engine *analytics.Engine
	logger *slog.Logger
}

func NewAPIHandlers(engine *analytics.Engine, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		engine: engine,
		logger: logger,
	}
}

// parseFilter builds the filter criteria from query parameters. Brands and
// states arrive comma-separated; date bounds are ISO date strings used
// as-is for lexical comparison.
func parseFilter(r *http.Request) analytics.Filter {
	q := r.URL.Query()
	return analytics.Filter{
		Search: q.Get("search"),
		Brands: splitCSV(q.Get("brands")),
		States: splitCSV(q.Get("states")),
		DateRange: analytics.DateRange{
			Start: q.Get("start"),
			End:   q.Get("end"),
		},
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseLimit returns the requested top-N size, or an error for a present but
// unusable value. Zero means the aggregation default; the cap keeps a single
// request from asking for the whole grouped universe.
func parseLimit(r *http.Request) (int, *errors.AppError) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.BadRequest("limit must be a positive integer")
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, nil
}

func (h *APIHandlers) ready(w http.ResponseWriter, r *http.Request) bool {
	if h.engine.Ready() {
		return true
	}
	requestID := observability.GetRequestID(r.Context())
	errors.WriteError(w, h.logger, errors.ServiceUnavailable("dataset not loaded"), requestID)
	return false
}

func (h *APIHandlers) writeAggregate(w http.ResponseWriter, data any) {
	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

func (h *APIHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeAggregate(w, h.engine.Overview(parseFilter(r)))
}

func (h *APIHandlers) HandleTopItems(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	limit, appErr := parseLimit(r)
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, observability.GetRequestID(r.Context()))
		return
	}
	h.writeAggregate(w, h.engine.TopItems(parseFilter(r), limit))
}

func (h *APIHandlers) HandleTopBrands(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	limit, appErr := parseLimit(r)
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, observability.GetRequestID(r.Context()))
		return
	}
	h.writeAggregate(w, h.engine.TopBrands(parseFilter(r), limit))
}

func (h *APIHandlers) HandleTopCustomers(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	limit, appErr := parseLimit(r)
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, observability.GetRequestID(r.Context()))
		return
	}
	h.writeAggregate(w, h.engine.TopCustomers(parseFilter(r), limit))
}

func (h *APIHandlers) HandleOrdersByState(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeAggregate(w, h.engine.OrdersByState(parseFilter(r)))
}

func (h *APIHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeAggregate(w, h.engine.MonthlyTrend(parseFilter(r)))
}

func (h *APIHandlers) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeAggregate(w, h.engine.Customers(parseFilter(r)))
}

func (h *APIHandlers) HandleItems(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeAggregate(w, h.engine.Items(parseFilter(r)))
}

func (h *APIHandlers) HandleGeographic(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeAggregate(w, h.engine.Geographic(parseFilter(r)))
}

type ordersPage struct {
	Count   int                  `json:"count"`
	Records []models.OrderRecord `json:"records"`
}

func (h *APIHandlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	records := h.engine.Records(parseFilter(r))
	page := ordersPage{Count: len(records), Records: records}
	if len(page.Records) > maxOrderRows {
		page.Records = page.Records[:maxOrderRows]
	}
	h.writeAggregate(w, page)
}

func (h *APIHandlers) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w, r) {
		return
	}
	h.writeAggregate(w, h.engine.Metadata())
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.engine.Stats())
}
