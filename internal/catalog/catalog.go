// Package catalog holds the in-memory product catalog. The catalog owns every
// product and therefore every available stock counter.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fairyhunter13/shopping-cart/internal/model"
	"github.com/shopspring/decimal"
)

// Catalog maps product ids to products, remembering load order for listing.
type Catalog struct {
	byID  map[string]*model.Product
	order []string
}

// rawRecord mirrors model.ProductRecord with pointers so absent fields can be told apart from zero values.
type rawRecord struct {
	Type              *string  `json:"type"`
	ProductID         *string  `json:"product_id"`
	Name              *string  `json:"name"`
	Price             *float64 `json:"price"`
	QuantityAvailable *int     `json:"quantity_available"`
	Weight            *float64 `json:"weight"`
	DownloadLink      *string  `json:"download_link"`
}

// Load builds a catalog from persisted records. Any record with a missing or
// mistyped required field fails the whole load with model.ErrMalformedRecord.
func Load(records []json.RawMessage) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*model.Product, len(records))}
	for i, raw := range records {
		p, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", model.ErrMalformedRecord, i, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate product_id %q", model.ErrMalformedRecord, i, p.ID)
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// FromRecords is Load for already-typed records, such as DefaultRecords.
func FromRecords(records []model.ProductRecord) (*Catalog, error) {
	raws, err := Encode(records)
	if err != nil {
		return nil, err
	}
	return Load(raws)
}

func decodeRecord(raw json.RawMessage) (*model.Product, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("empty record")
	}
	var r rawRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	switch {
	case r.ProductID == nil:
		return nil, errors.New("missing product_id")
	case r.Name == nil:
		return nil, errors.New("missing name")
	case r.Price == nil:
		return nil, errors.New("missing price")
	case r.QuantityAvailable == nil:
		return nil, errors.New("missing quantity_available")
	}
	price := decimal.NewFromFloat(*r.Price)

	var tag string
	if r.Type != nil {
		tag = *r.Type
	}
	switch model.ParseKind(tag) {
	case model.KindPhysical:
		if r.Weight == nil {
			return nil, fmt.Errorf("physical product %q: missing weight", *r.ProductID)
		}
		return model.NewPhysicalProduct(*r.ProductID, *r.Name, price, *r.QuantityAvailable, *r.Weight)
	case model.KindDigital:
		var link string
		if r.DownloadLink != nil {
			link = *r.DownloadLink
		}
		return model.NewDigitalProduct(*r.ProductID, *r.Name, price, *r.QuantityAvailable, link)
	default:
		return model.NewProduct(*r.ProductID, *r.Name, price, *r.QuantityAvailable)
	}
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id string) (*model.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns the products in load order.
func (c *Catalog) List() []*model.Product {
	out := make([]*model.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.order) }

// SerializeAll returns the persisted form of every product in load order.
func (c *Catalog) SerializeAll() []model.ProductRecord {
	out := make([]model.ProductRecord, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Record())
	}
	return out
}

// Encode marshals each record on its own, producing the shape stores persist.
func Encode[T any](records []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(records))
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encode record %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
