package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salestream/internal/config"
	"salestream/internal/stream"
	jwtx "salestream/pkg/jwt"
)

// Router exposes the optional live-view surface of a running generator:
// health probes, prometheus metrics, and SSE/WS event streams.
func Router(cfg *config.Config, hub *stream.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(Recoverer, RequestID, SecureHeaders, Logger, Rate(300, time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	val := jwtx.New(cfg.JWTSecret, cfg.JWTSkew)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })

	r.Group(func(g chi.Router) {
		g.Use(BasicAuth(cfg.MetricsUser, cfg.MetricsPass))
		g.Method("GET", "/metrics", promhttp.Handler())
	})

	r.Group(func(g chi.Router) {
		g.Use(Auth(false, val))
		g.Get("/api/stream/events", stream.SSE(hub))
	})

	r.Get("/api/ws", WS(cfg.AllowedOrigins, hub, val))

	return r
}
