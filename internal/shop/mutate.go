package shop

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/shopping-cart/internal/catalog"
	"github.com/fairyhunter13/shopping-cart/internal/obs"
)

// AddOrIncrease reserves qty units of a product into the cart.
func (s *Session) AddOrIncrease(ctx context.Context, productID string, qty int) (Change, error) {
	return s.mutate(ctx, "cart_item_added", productID, qty, func() error {
		return s.cart.AddOrIncrease(productID, qty)
	})
}

// UpdateQuantity sets a line's quantity; zero removes it.
func (s *Session) UpdateQuantity(ctx context.Context, productID string, qty int) (Change, error) {
	return s.mutate(ctx, "cart_item_updated", productID, qty, func() error {
		return s.cart.UpdateQuantity(productID, qty)
	})
}

// RemoveItem drops a line and returns its stock to the catalog.
func (s *Session) RemoveItem(ctx context.Context, productID string) (Change, error) {
	return s.mutate(ctx, "cart_item_removed", productID, 0, func() error {
		return s.cart.RemoveItem(productID)
	})
}

// mutate applies op and, when it succeeds, persists the cart (and the catalog
// with CatalogSync). The returned Change is taken before the lock is released.
// A failed save is returned with the Change; the in-memory change stays.
func (s *Session) mutate(ctx context.Context, event, productID string, qty int, op func() error) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Change{}, ErrClosed
	}
	if err := op(); err != nil {
		obs.Logger.Debug("cart_change_rejected",
			"session_id", s.id,
			"event", event,
			"product_id", productID,
			"quantity", qty,
			"error", err,
		)
		return Change{}, err
	}
	s.revision++
	obs.Logger.Info(event,
		"session_id", s.id,
		"revision", s.revision,
		"product_id", productID,
		"quantity", qty,
		"reserved", s.cart.Reserved(productID),
	)
	ch := Change{Revision: s.revision, Cart: s.viewCart()}
	if err := s.saveCart(ctx); err != nil {
		return ch, err
	}
	if s.opts.CatalogSync {
		return ch, s.saveCatalog(ctx)
	}
	return ch, nil
}

func (s *Session) saveCart(ctx context.Context) error {
	raws, err := catalog.Encode(s.cart.Records())
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, s.opts.CartName, raws); err != nil {
		obs.Logger.Error("cart_save_failed", "session_id", s.id, "error", err)
		return fmt.Errorf("save cart %s: %w", s.opts.CartName, err)
	}
	return nil
}

func (s *Session) saveCatalog(ctx context.Context) error {
	raws, err := catalog.Encode(s.catalog.SerializeAll())
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, s.opts.CatalogName, raws); err != nil {
		obs.Logger.Error("catalog_save_failed", "session_id", s.id, "error", err)
		return fmt.Errorf("save catalog %s: %w", s.opts.CatalogName, err)
	}
	return nil
}

// SaveCatalog writes the current stock levels.
func (s *Session) SaveCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.saveCatalog(ctx); err != nil {
		return err
	}
	obs.Logger.Info("catalog_saved", "session_id", s.id, "products", s.catalog.Len())
	return nil
}

// Close flushes the catalog. Later calls are no-ops; mutations after Close fail with ErrClosed.
// The store is left open for its owner to close.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err := s.saveCatalog(ctx); err != nil {
		return err
	}
	s.closed = true
	obs.Logger.Info("session_closed", "session_id", s.id, "revision", s.revision, "cart_lines", s.cart.Len())
	return nil
}
