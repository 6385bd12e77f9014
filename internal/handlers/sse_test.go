package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orders-dashboard/internal/analytics"
)

func TestNewSSEHandlers(t *testing.T) {
	engine := createTestEngine()
	logger := slog.Default()
	handlers := NewSSEHandlers(engine, logger)

	if handlers == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}

	if handlers.engine != engine {
		t.Error("NewSSEHandlers() should set engine field")
	}
}

func TestSSEHandlers_HandleTopCustomers(t *testing.T) {
	handlers := NewSSEHandlers(createTestEngine(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/sse/top-customers", nil)
	w := httptest.NewRecorder()

	handlers.HandleTopCustomers(w, req)

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected SSE content type, got %q", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "customers-content") {
		t.Error("expected customers table fragment in SSE stream")
	}
	if !strings.Contains(body, "Aisyah Binti Rahman") {
		t.Error("expected customer name in rendered table")
	}
	// Aisyah's two line items share one order, so she spent 120.50 once.
	if !strings.Contains(body, "RM 120.50") {
		t.Error("expected deduplicated spend in rendered table")
	}
}

func TestSSEHandlers_HandleOverview(t *testing.T) {
	handlers := NewSSEHandlers(createTestEngine(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/sse/overview", nil)
	w := httptest.NewRecorder()

	handlers.HandleOverview(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "overviewStats") {
		t.Error("expected overviewStats signal in SSE stream")
	}
	if !strings.Contains(body, `"totalOrders":2`) {
		t.Errorf("expected totalOrders=2 in signal payload, got: %s", body)
	}
}

func TestSSEHandlers_HandleTopItems(t *testing.T) {
	handlers := NewSSEHandlers(createTestEngine(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/sse/top-items", nil)
	w := httptest.NewRecorder()

	handlers.HandleTopItems(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "topItems") {
		t.Error("expected topItems signal in SSE stream")
	}
	if !strings.Contains(body, "Coconut Chips") {
		t.Error("expected item name in signal payload")
	}
}

func TestSSEHandlers_HandleOrdersByState(t *testing.T) {
	handlers := NewSSEHandlers(createTestEngine(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/sse/orders-by-state", nil)
	w := httptest.NewRecorder()

	handlers.HandleOrdersByState(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "ordersByState") {
		t.Error("expected ordersByState signal in SSE stream")
	}
	if !strings.Contains(body, "SELANGOR") {
		t.Error("expected state name in signal payload")
	}
}

func TestSSEHandlers_HandleMonthlyTrend(t *testing.T) {
	handlers := NewSSEHandlers(createTestEngine(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/sse/monthly-trend", nil)
	w := httptest.NewRecorder()

	handlers.HandleMonthlyTrend(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "monthlyTrend") {
		t.Error("expected monthlyTrend signal in SSE stream")
	}
	if !strings.Contains(body, "2024-01") {
		t.Error("expected month bucket key in signal payload")
	}
	if !strings.Contains(body, "Jan 24") {
		t.Error("expected month label in signal payload")
	}
}

func TestSSEHandlers_HandleRefreshAll(t *testing.T) {
	handlers := NewSSEHandlers(createTestEngine(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all", nil)
	w := httptest.NewRecorder()

	handlers.HandleRefreshAll(w, req)

	body := w.Body.String()
	for _, want := range []string{
		"customers-content",
		"overviewStats",
		"topItems",
		"topBrands",
		"ordersByState",
		"monthlyTrend",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in refresh-all SSE stream", want)
		}
	}
}

func TestSSEHandlers_FilterApplies(t *testing.T) {
	handlers := NewSSEHandlers(createTestEngine(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/sse/top-customers?states=PENANG", nil)
	w := httptest.NewRecorder()

	handlers.HandleTopCustomers(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Lim Wei Jian") {
		t.Error("expected PENANG customer in filtered table")
	}
	if strings.Contains(body, "Aisyah Binti Rahman") {
		t.Error("SELANGOR customer should be filtered out")
	}
}

func TestRenderCustomersTable(t *testing.T) {
	handlers := NewSSEHandlers(createTestEngine(), slog.Default())

	customers := handlers.engine.TopCustomers(analytics.Filter{}, 0)
	html, err := handlers.renderCustomersTable(customers)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "<table") {
		t.Error("expected table markup")
	}
	if !strings.Contains(html, "aisyah@example.com") {
		t.Error("expected customer email in table")
	}
}
