package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zeusync/behave/internal/core/bt"
	"github.com/zeusync/behave/internal/core/observability/log"
	"github.com/zeusync/behave/internal/core/sim"
)

// World is the read side of the simulation.
type World interface {
	Snapshot() sim.State
	TreeShape() *bt.Descriptor
}

// Routes bundles the handlers mounted by NewRouter. Control and Metrics are
// optional.
type Routes struct {
	World   World
	Control http.Handler
	Metrics http.Handler
}

// NewRouter mounts:
//
//	GET /healthz   liveness
//	GET /state     JSON world snapshot
//	GET /tree      JSON tree shape
//	GET /control   websocket input
//	GET /metrics   Prometheus metrics
func NewRouter(routes Routes, logger log.Log) http.Handler {
	if logger == nil {
		logger = log.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger.Named("http")))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})
	r.Get("/state", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, routes.World.Snapshot(), logger)
	})
	r.Get("/tree", func(w http.ResponseWriter, _ *http.Request) {
		shape := routes.World.TreeShape()
		if shape == nil {
			http.Error(w, "no tree installed", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, shape, logger)
	})
	if routes.Control != nil {
		r.Method(http.MethodGet, "/control", routes.Control)
	}
	if routes.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", routes.Metrics)
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any, logger log.Log) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", log.Error(err))
	}
}

func requestLogger(logger log.Log) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				log.String("method", r.Method),
				log.String("path", r.URL.Path),
				log.Int("status", ww.Status()),
				log.Duration("elapsed", time.Since(start)),
				log.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
