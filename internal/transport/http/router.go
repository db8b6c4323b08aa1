package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookhandler "biblio/internal/book/handler"
	lendinghandler "biblio/internal/lending/handler"
	memberhandler "biblio/internal/member/handler"
	"biblio/internal/platform/config"
	"biblio/internal/platform/metrics"
	"biblio/internal/platform/middleware"
)

// Handlers groups the per-domain HTTP handlers the router mounts.
type Handlers struct {
	Books    *bookhandler.Handler
	Members  *memberhandler.Handler
	Lendings *lendinghandler.Handler
}

// NewRouter wires the middleware stack and all public endpoints.
func NewRouter(cfg config.Server, logger *slog.Logger, m *metrics.Metrics, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", handleWelcome)
	r.Get("/health", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	h.Books.Register(r)
	h.Members.Register(r)
	h.Lendings.Register(r)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func handleWelcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(welcomePage))
}

const welcomePage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Library Management System</title>
</head>
<body>
	<h1>Library Management System</h1>
	<p>The API is running.</p>
	<ul>
		<li><a href="/books">/books</a></li>
		<li><a href="/members">/members</a></li>
		<li><a href="/lending/history">/lending/history</a></li>
		<li><a href="/health">/health</a></li>
		<li><a href="/metrics">/metrics</a></li>
	</ul>
</body>
</html>
`
