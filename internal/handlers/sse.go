package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"orders-dashboard/internal/analytics"
	"orders-dashboard/internal/models"
)

const (
	maxTableRows = 50
	maxChartRows = 10
)

var customersTableTemplate = template.Must(template.New("customersTable").Parse(`
<div id="customers-content">
<table class="modern-table">
<thead><tr><th>Customer</th><th>Email</th><th>Orders</th><th>Total Spent</th><th>Avg Order</th></tr></thead>
<tbody>
{{range .Customers}}<tr>
<td>{{.Name}}</td>
<td>{{.Email}}</td>
<td>{{.OrderCount}}</td>
<td><strong>RM {{printf "%.2f" .TotalSpent}}</strong></td>
<td>RM {{printf "%.2f" .AvgOrderValue}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

// SSEHandlers push derived aggregates to the dashboard page as datastar
// signal patches, so the charts re-render without a page load whenever the
// user changes the filter. The current filter criteria travel in the query
// string, same as the JSON API.
type SSEHandlers struct {
	engine *analytics.Engine
	logger *slog.Logger
}

func NewSSEHandlers(engine *analytics.Engine, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		engine: engine,
		logger: logger,
	}
}

type customersTableData struct {
	Customers []models.CustomerSummary
}

func (h *SSEHandlers) renderCustomersTable(customers []models.CustomerSummary) (string, error) {
	var buf strings.Builder

	if len(customers) > maxTableRows {
		customers = customers[:maxTableRows]
	}

	err := customersTableTemplate.Execute(&buf, customersTableData{Customers: customers})
	return buf.String(), err
}

func (h *SSEHandlers) HandleTopCustomers(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	customers := h.engine.TopCustomers(parseFilter(r), maxTableRows)
	html, err := h.renderCustomersTable(customers)
	if err != nil {
		h.logger.Error("render customers table", "error", err)
		return
	}

	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	stats := h.engine.Overview(parseFilter(r))
	jsonData, err := json.Marshal(map[string]any{
		"overviewStats": stats,
	})
	if err != nil {
		h.logger.Error("marshal overview stats", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleTopItems(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	items := h.engine.TopItems(parseFilter(r), maxChartRows)
	jsonData, err := json.Marshal(map[string]any{
		"topItems": items,
	})
	if err != nil {
		h.logger.Error("marshal top items", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleOrdersByState(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	states := h.engine.OrdersByState(parseFilter(r))
	jsonData, err := json.Marshal(map[string]any{
		"ordersByState": states,
	})
	if err != nil {
		h.logger.Error("marshal orders by state", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	trend := h.engine.MonthlyTrend(parseFilter(r))
	jsonData, err := json.Marshal(map[string]any{
		"monthlyTrend": trend,
	})
	if err != nil {
		h.logger.Error("marshal monthly trend", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll re-derives every dashboard aggregate for the current
// filter in one SSE exchange.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	f := parseFilter(r)

	customers := h.engine.TopCustomers(f, maxTableRows)
	html, err := h.renderCustomersTable(customers)
	if err != nil {
		h.logger.Error("render customers table", "error", err)
		return
	}
	sse.PatchElements(html)

	allSignals, err := json.Marshal(map[string]any{
		"overviewStats": h.engine.Overview(f),
		"topItems":      h.engine.TopItems(f, maxChartRows),
		"topBrands":     h.engine.TopBrands(f, maxChartRows),
		"ordersByState": h.engine.OrdersByState(f),
		"monthlyTrend":  h.engine.MonthlyTrend(f),
	})
	if err != nil {
		h.logger.Error("marshal dashboard signals", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
