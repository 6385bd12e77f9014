package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orders-dashboard/internal/analytics"
	"orders-dashboard/internal/models"
)

func newTestServer() *Server {
	engine := analytics.NewEngine(slog.Default())
	records := []models.OrderRecord{
		{
			ID:           1,
			OrderNo:      "1001",
			OrderDate:    "2024-01-05",
			OrderYear:    2024,
			OrderMonth:   1,
			OrderTotal:   120.50,
			CustomerName: "Aisyah Binti Rahman",
			Email:        "aisyah@example.com",
			State:        "SELANGOR",
			ItemName:     "Coconut Chips",
			ItemBrand:    "TropiPure",
		},
		{
			ID:           2,
			OrderNo:      "1002",
			OrderDate:    "2024-02-11",
			OrderYear:    2024,
			OrderMonth:   2,
			OrderTotal:   45.00,
			CustomerName: "Lim Wei Jian",
			Email:        "weijian@example.com",
			State:        "PENANG",
			ItemName:     "Soy Sauce",
			ItemBrand:    "Kicapmas",
		},
	}
	meta := &models.Metadata{
		TotalOrders:  2,
		TotalRecords: 2,
		TotalRevenue: 165.50,
		DateRange:    models.DateSpan{Min: "2024-01-05", Max: "2024-02-11"},
	}
	engine.SetDataset(records, meta)
	return NewServer(engine, slog.Default())
}

func TestNewServer(t *testing.T) {
	srv := newTestServer()
	if srv == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestServerRoutes(t *testing.T) {
	srv := newTestServer()

	routes := []string{
		"/health",
		"/admin/stats",
		"/api/metadata",
		"/api/orders",
		"/api/overview",
		"/api/top-items",
		"/api/top-brands",
		"/api/top-customers",
		"/api/orders-by-state",
		"/api/monthly-trend",
		"/api/customers",
		"/api/items",
		"/api/geographic",
		"/sse/overview",
		"/sse/top-items",
		"/sse/top-customers",
		"/sse/orders-by-state",
		"/sse/monthly-trend",
		"/sse/refresh-all",
	}

	for _, route := range routes {
		t.Run(route, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, route, nil)
			w := httptest.NewRecorder()

			srv.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("GET %s: expected status 200, got %d", route, w.Code)
			}
		})
	}
}

func TestServerDashboardPage(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "customers-content") {
		t.Error("expected customers table container in dashboard shell")
	}
	if !strings.Contains(body, "/sse/refresh-all") {
		t.Error("expected refresh-all wiring in dashboard shell")
	}
}

func TestServerUnknownRoute(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestServerMethodNotAllowed(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/overview", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestServerAPIEnvelope(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/top-brands", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true in response")
	}

	data, ok := response["data"].([]interface{})
	if !ok || len(data) != 2 {
		t.Fatalf("expected 2 brand rows, got %v", response["data"])
	}
}

func TestServerFilterPropagation(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/overview?states=PENANG", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatal("expected overview object in response")
	}
	if totalOrders, ok := data["totalOrders"].(float64); !ok || totalOrders != 1 {
		t.Errorf("expected totalOrders=1 for PENANG filter, got %v", data["totalOrders"])
	}
	if totalRevenue, ok := data["totalRevenue"].(float64); !ok || totalRevenue != 45.00 {
		t.Errorf("expected totalRevenue=45.00, got %v", data["totalRevenue"])
	}
}
