// Package shop ties a catalog, a cart and a store together into a session,
// the API every driver (menu, HTTP) calls.
package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/fairyhunter13/shopping-cart/internal/cart"
	"github.com/fairyhunter13/shopping-cart/internal/catalog"
	"github.com/fairyhunter13/shopping-cart/internal/config"
	"github.com/fairyhunter13/shopping-cart/internal/model"
	"github.com/fairyhunter13/shopping-cart/internal/obs"
	"github.com/fairyhunter13/shopping-cart/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Options controls where a session keeps its documents and how it recovers.
type Options struct {
	CatalogName string
	CartName    string
	// CatalogSync persists the catalog after every successful cart change
	// instead of only on SaveCatalog and Close.
	CatalogSync bool
	// OnMalformed is config.MalformedFail or config.MalformedRegenerate.
	OnMalformed string
}

// OptionsFromConfig maps configuration onto session options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		CatalogName: cfg.CatalogPath,
		CartName:    cfg.CartPath,
		CatalogSync: cfg.CatalogSync,
		OnMalformed: cfg.OnMalformed,
	}
}

// ProductView is a read-only snapshot of a product.
type ProductView struct {
	ID           string          `json:"product_id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	UnitPrice    decimal.Decimal `json:"price"`
	Available    int             `json:"quantity_available"`
	Weight       *float64        `json:"weight,omitempty"`
	DownloadLink string          `json:"download_link,omitempty"`
	Description  string          `json:"description"`
}

// LineView is a read-only snapshot of a cart line.
type LineView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartView is a read-only snapshot of the cart.
type CartView struct {
	Lines []LineView      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Change is the session state right after a cart change.
type Change struct {
	Revision uint64
	Cart     CartView
}

// Session is one shopper's catalog and cart. Calls are serialized.
type Session struct {
	id    string
	store store.Store
	opts  Options

	mu       sync.Mutex
	catalog  *catalog.Catalog
	cart     *cart.Cart
	revision uint64
	closed   bool
}

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session closed")

// Open loads the catalog (seeding the defaults when absent) and the cart.
func Open(ctx context.Context, st store.Store, opts Options) (*Session, error) {
	s := &Session{id: uuid.NewString(), store: st, opts: opts}

	cat, fresh, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog = cat

	lines, err := s.loadCart(ctx)
	if err != nil {
		return nil, err
	}
	// a seeded catalog has full stock, so the cart has to reserve again
	restore := cart.Restore
	if fresh {
		restore = cart.Reclaim
	}
	ct, dropped := restore(cat, lines)
	for _, d := range dropped {
		obs.Logger.Warn("cart_line_dropped",
			"session_id", s.id,
			"product_id", d.Record.ProductID,
			"quantity", d.Record.Quantity,
			"reason", d.Reason,
		)
	}
	s.cart = ct

	if fresh {
		if err := s.saveCatalog(ctx); err != nil {
			return nil, err
		}
	}
	if len(dropped) > 0 {
		if err := s.saveCart(ctx); err != nil {
			return nil, err
		}
	}

	obs.Logger.Info("session_opened",
		"session_id", s.id,
		"products", cat.Len(),
		"cart_lines", ct.Len(),
		"catalog_sync", opts.CatalogSync,
	)
	return s, nil
}

// loadCatalog reports fresh when the catalog came from the defaults instead
// of the store. A fresh catalog is not persisted here.
func (s *Session) loadCatalog(ctx context.Context) (*catalog.Catalog, bool, error) {
	raws, err := s.store.Load(ctx, s.opts.CatalogName)
	if errors.Is(err, store.ErrNotFound) {
		obs.Logger.Info("catalog_seeded", "session_id", s.id, "name", s.opts.CatalogName)
		return s.defaultCatalog()
	}
	if err == nil {
		var cat *catalog.Catalog
		cat, err = catalog.Load(raws)
		if err == nil {
			return cat, false, nil
		}
	}
	if errors.Is(err, model.ErrMalformedRecord) && s.opts.OnMalformed == config.MalformedRegenerate {
		obs.Logger.Warn("catalog_regenerated", "session_id", s.id, "name", s.opts.CatalogName, "error", err)
		return s.defaultCatalog()
	}
	return nil, false, fmt.Errorf("load catalog %s: %w", s.opts.CatalogName, err)
}

func (s *Session) defaultCatalog() (*catalog.Catalog, bool, error) {
	cat, err := catalog.FromRecords(catalog.DefaultRecords())
	if err != nil {
		return nil, false, fmt.Errorf("default catalog: %w", err)
	}
	return cat, true, nil
}

func (s *Session) loadCart(ctx context.Context) ([]model.LineRecord, error) {
	raws, err := s.store.Load(ctx, s.opts.CartName)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", s.opts.CartName, err)
	}
	lines := make([]model.LineRecord, 0, len(raws))
	for i, raw := range raws {
		var l model.LineRecord
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("load cart %s: %w: record %d: %w", s.opts.CartName, model.ErrMalformedRecord, i, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Revision counts successful cart changes since Open.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func productView(p *model.Product) ProductView {
	rec := p.Record()
	return ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Type:         rec.Type,
		UnitPrice:    p.UnitPrice,
		Available:    p.Available(),
		Weight:       rec.Weight,
		DownloadLink: rec.DownloadLink,
		Description:  p.Describe(),
	}
}

// ListProducts returns every product in catalog order.
func (s *Session) ListProducts() []ProductView {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps := s.catalog.List()
	out := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		out = append(out, productView(p))
	}
	return out
}

// Product returns one product.
func (s *Session) Product(id string) (ProductView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.catalog.Lookup(id)
	if !ok {
		return ProductView{}, fmt.Errorf("%w: %s", model.ErrUnknownProduct, id)
	}
	return productView(p), nil
}

// ViewCart returns the cart lines and total.
func (s *Session) ViewCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewCart()
}

func (s *Session) viewCart() CartView {
	ls := s.cart.Lines()
	v := CartView{Lines: make([]LineView, 0, len(ls)), Total: s.cart.Total()}
	for _, l := range ls {
		v.Lines = append(v.Lines, LineView{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			UnitPrice: l.Product.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return v
}

// Total returns the cart total.
func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}
