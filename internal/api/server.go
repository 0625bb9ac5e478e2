package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/scoracle-scout/internal/api/handler"
	"github.com/albapepper/scoracle-scout/internal/cache"
	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/dashboard"
	"github.com/albapepper/scoracle-scout/internal/db"
	"github.com/albapepper/scoracle-scout/internal/store"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Store  store.Store
	Engine *dashboard.Engine
	Cache  *cache.Cache
	Pool   *db.Pool // optional
	Logger *slog.Logger
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(d Deps, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Content-Disposition"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(d.Store, d.Engine, d.Cache, cfg, d.Pool, d.Logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/store", h.HealthCheckStore)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Scoring
		r.Get("/points", h.GetPoints)

		// Leaderboard and team views
		r.Get("/teams", h.GetTeams)
		r.Get("/teams/{team}", h.GetTeam)
		r.Get("/compare", h.GetCompare)
		r.Get("/team_index", h.GetTeamIndex)
		r.Post("/dashboard", h.PostDashboard)

		// Records
		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.ListRecords)
			r.Put("/", h.PutRecord)
			r.Delete("/", h.ClearRecords)
			r.Post("/import", h.ImportRecords)
			r.Get("/export", h.ExportRecords)
			r.Get("/{id}", h.GetRecord)
			r.Get("/{id}/qr", h.GetRecordQR)
		})
	})

	return r
}
