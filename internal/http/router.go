package httpx

import (
	"net/http"

	"forelegg/internal/config"
	"forelegg/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(engine domain.Engine, limits config.LimitsConfig, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// The rule tables are compiled in, so ready means the process is up.
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Route("/v1", func(r chi.Router) {
		ah := &AssessmentsHandler{Engine: engine, Limits: limits, Logger: logger}
		r.Post("/assessments", ah.Create)
		r.Post("/assessments/batch", ah.Batch)

		rh := &RulesHandler{}
		r.Get("/rules", rh.List)
		r.Get("/rules/{category}", rh.Get)
	})
	return r
}
