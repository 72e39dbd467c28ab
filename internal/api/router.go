package api

import (
	"contest_catalog/internal/api/handler"
	"contest_catalog/internal/app/service"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	catalogService *service.CatalogService,
	ingestService *service.IngestService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		catalogHandler := handler.NewCatalogHandler(catalogService)
		v1.Group(catalogHandler.RegisterRoutes)

		ingestHandler := handler.NewIngestHandler(ingestService)
		v1.Route("/ingest", ingestHandler.RegisterRoutes)
	})

	return r
}
