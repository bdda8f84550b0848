package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"gridcli/internal/config"
	custommw "gridcli/internal/middleware"
)

// NewRouter assembles the HTTP surface: middleware chain, health probe,
// and the table resource.
func NewRouter(cfg *config.Config, store *Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	r.Use(custommw.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"status": "ok",
			"tables": store.Len(),
		})
	})

	tables := NewTableHandler(store, logger, cfg.Ingest.MaxFileSize, cfg.Ingest.StrictMerge)
	r.Mount("/api/tables", tables.Routes())

	return r
}
