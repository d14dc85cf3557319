package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/api/handlers"
	mw "github.com/Harshitk-cp/intelreport/internal/api/middleware"
	"github.com/Harshitk-cp/intelreport/internal/buildconfig"
	"github.com/Harshitk-cp/intelreport/internal/config"
	"github.com/Harshitk-cp/intelreport/internal/service"
	"github.com/Harshitk-cp/intelreport/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and background services for lifecycle management.
type App struct {
	Router  *chi.Mux
	Sweeper *service.SweeperService
	Limiter *mw.RateLimiter

	backend   *store.Backend
	world     *service.WorldService
	metrics   *mw.MetricsCollector
	startTime time.Time
}

func NewApp(backend *store.Backend, world *service.WorldService, logger *zap.Logger) *App {
	// Handlers
	playerHandler := handlers.NewPlayerHandler(backend.Players, logger)
	entityHandler := handlers.NewEntityHandler(world, logger)
	simHandler := handlers.NewSimHandler(world, backend.Players, logger)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Sweeper:   service.NewSweeperService(world, logger),
		Limiter:   mw.NewRateLimiter(config.RateLimitRPS(), config.RateLimitBurst()),
		backend:   backend,
		world:     world,
		metrics:   mw.NewMetricsCollector(),
		startTime: time.Now(),
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(app.Limiter.Middleware)

	// Health and metrics (no auth)
	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	// Player registration (no auth, bootstrap endpoint)
	r.Post("/v1/players", playerHandler.Create)

	// Player routes: everything is computed for the authenticated player
	r.Group(func(r chi.Router) {
		r.Use(mw.PlayerAuth(backend.Players))

		r.Get("/v1/players/me", playerHandler.Me)
		r.Get("/v1/players/me/intel", entityHandler.KnownIntel)
		r.Route("/v1/entities/{id}", func(r chi.Router) {
			r.Get("/report", entityHandler.Report)
			r.Get("/text", entityHandler.Text)
			r.Get("/intel", entityHandler.Intel)
		})
	})

	// Simulation signals
	r.Route("/v1/sim", func(r chi.Router) {
		r.Use(mw.AdminKeyAuth(config.AdminAPIKey()))

		r.Route("/entities/{id}", func(r chi.Router) {
			r.Patch("/", simHandler.UpdateEntity)
			r.Post("/detection", simHandler.Detect)
			r.Post("/detection/lost", simHandler.Lost)
		})
		r.Route("/fleets/{id}/ships", func(r chi.Router) {
			r.Post("/", simHandler.AssignShip)
			r.Delete("/{shipID}", simHandler.RemoveShip)
		})
	})

	return app
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.backend.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error", "error": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": buildconfig.Name,
			"store":   app.backend.Driver,
			"version": buildconfig.Version(),
			"commit":  buildconfig.Commit(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		writeJSON(w, http.StatusOK, map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"http":           app.metrics.Snapshot(),
			"world":          app.world.Stats(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"build":      buildconfig.VersionInfo(),
			"go_version": runtime.Version(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
