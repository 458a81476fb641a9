package httpapi

import (
	"encoding/json"
	"expvar"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/shopping-cart/internal/config"
	httpopenapi "github.com/fairyhunter13/shopping-cart/internal/http/openapi"
	"github.com/fairyhunter13/shopping-cart/internal/obs"
	"github.com/fairyhunter13/shopping-cart/internal/shop"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

var (
	cartChanges  = expvar.NewInt("cart_changes")
	cartRejected = expvar.NewInt("cart_changes_rejected")
)

type App struct {
	Cfg     config.Config
	Session *shop.Session
	closing atomic.Bool
	started time.Time
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

type ack struct {
	Status    string        `json:"status"`
	RequestID string        `json:"request_id"`
	ProductID string        `json:"product_id"`
	Revision  uint64        `json:"revision"`
	Cart      shop.CartView `json:"cart"`
}

type totalResponse struct {
	Total decimal.Decimal `json:"total"`
	Items int             `json:"items"`
}

func NewApp(cfg config.Config, sess *shop.Session) *App {
	return &App{Cfg: cfg, Session: sess, started: time.Now()}
}

// StartShutdown makes every later write request fail with 503.
func (a *App) StartShutdown() {
	a.closing.Store(true)
}

// decodeBody enforces a JSON content type and rejects unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func (a *App) writable(w http.ResponseWriter) bool {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return false
	}
	return true
}

func (a *App) respondMutation(w http.ResponseWriter, r *http.Request, productID string, ch shop.Change, err error) {
	if err != nil {
		cartRejected.Add(1)
		writeSessionError(w, err)
		return
	}
	cartChanges.Add(1)
	writeJSON(w, http.StatusOK, ack{
		Status:    "ok",
		RequestID: RequestIDFromContext(r.Context()),
		ProductID: productID,
		Revision:  ch.Revision,
		Cart:      ch.Cart,
	})
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Session.ListProducts())
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	p, err := a.Session.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) getCartHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Session.ViewCart())
}

func (a *App) getTotalHandler(w http.ResponseWriter, r *http.Request) {
	v := a.Session.ViewCart()
	writeJSON(w, http.StatusOK, totalResponse{Total: v.Total, Items: len(v.Lines)})
}

func (a *App) addItemHandler(w http.ResponseWriter, r *http.Request) {
	if !a.writable(w) {
		return
	}
	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "product_id is required")
		return
	}
	if req.Quantity == nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "quantity is required")
		return
	}
	ch, err := a.Session.AddOrIncrease(r.Context(), req.ProductID, *req.Quantity)
	a.respondMutation(w, r, req.ProductID, ch, err)
}

func (a *App) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	if !a.writable(w) {
		return
	}
	var req updateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "quantity is required")
		return
	}
	id := chi.URLParam(r, "id")
	ch, err := a.Session.UpdateQuantity(r.Context(), id, *req.Quantity)
	a.respondMutation(w, r, id, ch, err)
}

func (a *App) removeItemHandler(w http.ResponseWriter, r *http.Request) {
	if !a.writable(w) {
		return
	}
	id := chi.URLParam(r, "id")
	ch, err := a.Session.RemoveItem(r.Context(), id)
	a.respondMutation(w, r, id, ch, err)
}

func (a *App) saveCatalogHandler(w http.ResponseWriter, r *http.Request) {
	if !a.writable(w) {
		return
	}
	if err := a.Session.SaveCatalog(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}
	obs.Logger.Info("catalog_saved_via_api", "request_id", RequestIDFromContext(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	v := a.Session.ViewCart()
	m := map[string]any{
		"session_id":            a.Session.ID(),
		"revision":              a.Session.Revision(),
		"cart_lines":            len(v.Lines),
		"cart_total":            v.Total,
		"cart_changes":          cartChanges.Value(),
		"cart_changes_rejected": cartRejected.Value(),
		"uptime_sec":            time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Shopping Cart API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
