package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
)

// The dashboard shell. All data arrives through the SSE endpoints as
// datastar signals; this page only lays out the containers.
var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Order Analytics</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@latest/bundles/datastar.js"></script>
</head>
<body data-on-load="@get('/sse/refresh-all')">
<header>
<h1>Order Analytics</h1>
<input type="text" placeholder="Search orders..." data-bind-search
       data-on-input__debounce.400ms="@get('/sse/refresh-all?search=' + $search)">
</header>
<main>
<section id="overview" data-signals="{overviewStats: null}">
<div data-text="$overviewStats ? $overviewStats.totalOrders : '...'"></div>
</section>
<section id="items-content" data-signals="{topItems: []}"></section>
<section id="states-content" data-signals="{ordersByState: []}"></section>
<section id="monthly-content" data-signals="{monthlyTrend: []}"></section>
<section id="customers-content"></section>
</main>
</body>
</html>`))

type PageHandlers struct {
	logger *slog.Logger
}

func NewPageHandlers(logger *slog.Logger) *PageHandlers {
	return &PageHandlers{logger: logger}
}

func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", cacheMaxAge)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, nil); err != nil {
		h.logger.Error("render dashboard", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}
