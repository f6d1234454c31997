package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/indyradio-service/internal/catalog"
	"github.com/couchcryptid/indyradio-service/internal/config"
	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/questionnaire"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the API handlers serve from.
type Deps struct {
	Catalog     *catalog.Catalog
	Recommender domain.Recommender
	Sessions    *questionnaire.Store
	Ready       sharedobs.ReadinessChecker
	Logger      *slog.Logger
}

// Server exposes the recommendation API alongside health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /api/v1 routes and the
// /healthz, /readyz, and /metrics probes.
func NewServer(cfg *config.Config, deps Deps) *Server {
	h := &handler{
		catalog:      deps.Catalog,
		recommender:  deps.Recommender,
		sessions:     deps.Sessions,
		logger:       deps.Logger,
		defaultLimit: cfg.RecommendLimit,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	// CORS is global so OPTIONS preflight is answered before routing.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed", nil)
	})

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(deps.Ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimitRequests,
				cfg.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeError(w, http.StatusTooManyRequests, codeRateLimited, "too many requests", nil)
				}),
			))
		}

		r.Route("/stations", func(r chi.Router) {
			r.Get("/", h.listStations)
			r.Get("/summary", h.stationSummary)
			r.Get("/{id}", h.getStation)
			r.Get("/{id}/impact", h.stationImpact)
		})

		r.Get("/questions", h.listQuestions)
		r.Post("/recommendations", h.recommend)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.createSession)
			r.Get("/{id}", h.getSession)
			r.Delete("/{id}", h.deleteSession)
			r.Put("/{id}/answers/{field}", h.answerSession)
			r.Post("/{id}/recommendations", h.recommendSession)
		})
	})

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: deps.Logger,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}

// ReadinessFunc adapts a function to sharedobs.ReadinessChecker.
type ReadinessFunc func(ctx context.Context) error

func (f ReadinessFunc) CheckReadiness(ctx context.Context) error { return f(ctx) }

// AllReady reports ready only when every checker does.
func AllReady(checkers ...sharedobs.ReadinessChecker) sharedobs.ReadinessChecker {
	return ReadinessFunc(func(ctx context.Context) error {
		for _, c := range checkers {
			if err := c.CheckReadiness(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
