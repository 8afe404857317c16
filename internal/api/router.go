package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apihandler "github.com/fortmig/fortscan/internal/api/handler"
	"github.com/fortmig/fortscan/internal/graph"
	"github.com/fortmig/fortscan/internal/ingestion"
	"github.com/fortmig/fortscan/internal/store"
	minioclient "github.com/fortmig/fortscan/internal/store/minio"
)

// RouterDeps holds optional dependencies for the router. Routes backed by a
// nil dependency are not registered.
type RouterDeps struct {
	Producer  *ingestion.Producer
	Graph     *graph.Client
	Artifacts *minioclient.Client
}

func NewRouter(logger *slog.Logger, s *store.Store, deps *RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)

	// Health checks
	health := apihandler.NewHealthHandler(s.Pool())
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	if deps == nil {
		deps = &RouterDeps{}
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		projects := apihandler.NewProjectHandler(logger, s)
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projects.List)
			r.Post("/", projects.Create)
			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", projects.Get)
				r.Put("/", projects.Update)
				r.Delete("/", projects.Delete)

				if deps.Producer != nil {
					runs := apihandler.NewScanRunHandler(logger, s, deps.Producer)
					r.Route("/runs", func(r chi.Router) {
						r.Get("/", runs.List)
						r.Post("/", runs.Trigger)
					})
				}
			})
		})

		// Run-scoped reads
		r.Route("/runs/{runID}", func(r chi.Router) {
			if deps.Producer != nil {
				runs := apihandler.NewScanRunHandler(logger, s, deps.Producer)
				r.Get("/", runs.Get)
			}

			files := apihandler.NewFileHandler(logger, s)
			r.Get("/files", files.List)
			r.Get("/aggregates", files.Aggregates)
			r.Get("/unresolved", files.Unresolved)

			if deps.Graph != nil {
				neighborhood := apihandler.NewNeighborhoodHandler(logger, s, deps.Graph)
				r.Get("/neighborhood", neighborhood.Get)
			}

			if deps.Artifacts != nil {
				artifacts := apihandler.NewArtifactHandler(logger, s, deps.Artifacts)
				r.Get("/artifacts/{name}", artifacts.Get)
			}
		})
	})

	return r
}

// requestLogger logs each request with method, path, status, and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
