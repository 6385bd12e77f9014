package server

import (
	"log/slog"
	"net/http"

	"orders-dashboard/internal/analytics"
	"orders-dashboard/internal/handlers"
)

type Server struct {
	engine       *analytics.Engine
	mux          *http.ServeMux
	logger       *slog.Logger
	apiHandlers  *handlers.APIHandlers
	sseHandlers  *handlers.SSEHandlers
	pageHandlers *handlers.PageHandlers
}

func NewServer(engine *analytics.Engine, logger *slog.Logger) *Server {
	s := &Server{
		engine:       engine,
		mux:          http.NewServeMux(),
		logger:       logger,
		apiHandlers:  handlers.NewAPIHandlers(engine, logger),
		sseHandlers:  handlers.NewSSEHandlers(engine, logger),
		pageHandlers: handlers.NewPageHandlers(logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Dashboard shell and operational routes
	s.mux.HandleFunc("GET /{$}", s.pageHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints; every endpoint accepts the filter query params
	s.mux.HandleFunc("GET /api/metadata", s.apiHandlers.HandleMetadata)
	s.mux.HandleFunc("GET /api/orders", s.apiHandlers.HandleOrders)
	s.mux.HandleFunc("GET /api/overview", s.apiHandlers.HandleOverview)
	s.mux.HandleFunc("GET /api/top-items", s.apiHandlers.HandleTopItems)
	s.mux.HandleFunc("GET /api/top-brands", s.apiHandlers.HandleTopBrands)
	s.mux.HandleFunc("GET /api/top-customers", s.apiHandlers.HandleTopCustomers)
	s.mux.HandleFunc("GET /api/orders-by-state", s.apiHandlers.HandleOrdersByState)
	s.mux.HandleFunc("GET /api/monthly-trend", s.apiHandlers.HandleMonthlyTrend)

	// View breakdowns
	s.mux.HandleFunc("GET /api/customers", s.apiHandlers.HandleCustomers)
	s.mux.HandleFunc("GET /api/items", s.apiHandlers.HandleItems)
	s.mux.HandleFunc("GET /api/geographic", s.apiHandlers.HandleGeographic)

	// Datastar SSE endpoints for the dashboard page
	s.mux.HandleFunc("GET /sse/overview", s.sseHandlers.HandleOverview)
	s.mux.HandleFunc("GET /sse/top-items", s.sseHandlers.HandleTopItems)
	s.mux.HandleFunc("GET /sse/top-customers", s.sseHandlers.HandleTopCustomers)
	s.mux.HandleFunc("GET /sse/orders-by-state", s.sseHandlers.HandleOrdersByState)
	s.mux.HandleFunc("GET /sse/monthly-trend", s.sseHandlers.HandleMonthlyTrend)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
