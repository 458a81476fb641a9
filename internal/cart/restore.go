package cart

import (
	"github.com/fairyhunter13/shopping-cart/internal/catalog"
	"github.com/fairyhunter13/shopping-cart/internal/model"
)

// Dropped describes persisted units that a restore discarded.
type Dropped struct {
	Record model.LineRecord
	Reason string
}

// Restore rebuilds a cart from persisted lines. The persisted catalog already
// reflects these reservations, so no stock is touched. Lines for products
// missing from the catalog and lines with a non-positive quantity are
// dropped; repeated ids are merged.
func Restore(c *catalog.Catalog, records []model.LineRecord) (*Cart, []Dropped) {
	return restore(c, records, false)
}

// Reclaim is Restore for a catalog that does not hold the cart's reservations
// yet, such as a freshly seeded one. Every line reserves its units again; a
// line is cut down to the stock left and dropped when nothing is left.
func Reclaim(c *catalog.Catalog, records []model.LineRecord) (*Cart, []Dropped) {
	return restore(c, records, true)
}

func restore(c *catalog.Catalog, records []model.LineRecord, reserve bool) (*Cart, []Dropped) {
	ct := New(c)
	var dropped []Dropped
	for _, r := range records {
		p, ok := c.Lookup(r.ProductID)
		if !ok {
			dropped = append(dropped, Dropped{Record: r, Reason: "unknown product"})
			continue
		}
		if r.Quantity <= 0 {
			dropped = append(dropped, Dropped{Record: r, Reason: "non-positive quantity"})
			continue
		}
		qty := r.Quantity
		if reserve {
			if short := qty - p.Available(); short > 0 {
				qty = p.Available()
				dropped = append(dropped, Dropped{
					Record: model.LineRecord{ProductID: r.ProductID, Quantity: short},
					Reason: "insufficient stock",
				})
				if qty == 0 {
					continue
				}
			}
			p.Reserve(qty)
		}
		if l, ok := ct.lines[r.ProductID]; ok {
			l.Quantity += qty
			continue
		}
		ct.lines[r.ProductID] = &model.CartLine{Product: p, Quantity: qty}
		ct.order = append(ct.order, r.ProductID)
	}
	return ct, dropped
}
