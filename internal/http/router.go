package httpapi

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID)
	r.Use(WithLogging)
	r.Use(middleware.Recoverer)

	r.Get("/products", app.listProductsHandler)
	r.Get("/products/{id}", app.getProductHandler)
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", app.getCartHandler)
		r.Get("/total", app.getTotalHandler)
		r.Post("/items", app.addItemHandler)
		r.Put("/items/{id}", app.updateItemHandler)
		r.Delete("/items/{id}", app.removeItemHandler)
	})
	r.Post("/catalog/save", app.saveCatalogHandler)

	r.Get("/healthz", app.healthHandler)
	r.Get("/debug/metrics", app.metricsHandler)
	r.Method(http.MethodGet, "/debug/vars", expvar.Handler())
	r.Get("/openapi.yaml", app.openapiHandler)
	r.Get("/docs", app.docsHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})
	return r
}
