// Package model defines the catalog and cart domain types.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind tags the product variant.
type Kind string

const (
	KindBase     Kind = "base"
	KindPhysical Kind = "physical"
	KindDigital  Kind = "digital"
)

// NoDownloadLink is the download link of a digital product that has none.
const NoDownloadLink = "N/A"

// ParseKind maps a persisted type tag to a Kind. Unknown or empty tags are generic.
func ParseKind(tag string) Kind {
	switch Kind(tag) {
	case KindPhysical:
		return KindPhysical
	case KindDigital:
		return KindDigital
	default:
		return KindBase
	}
}

// Product is a catalog entry. Everything except the available stock is fixed
// at construction; stock moves only through Reserve and Release.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Kind      Kind

	// Weight in kilograms, physical products only.
	Weight float64
	// DownloadLink is set for digital products only.
	DownloadLink string

	available int
}

func newProduct(kind Kind, id, name string, price decimal.Decimal, available int) (*Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidProduct)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price of %s must be >= 0", ErrInvalidProduct, id)
	}
	if available < 0 {
		return nil, fmt.Errorf("%w: stock of %s must be >= 0", ErrInvalidQuantity, id)
	}
	return &Product{ID: id, Name: name, UnitPrice: price, Kind: kind, available: available}, nil
}

// NewProduct builds a generic product.
func NewProduct(id, name string, price decimal.Decimal, available int) (*Product, error) {
	return newProduct(KindBase, id, name, price, available)
}

// NewPhysicalProduct builds a physical product with a shipping weight.
func NewPhysicalProduct(id, name string, price decimal.Decimal, available int, weight float64) (*Product, error) {
	if weight < 0 {
		return nil, fmt.Errorf("%w: weight of %s must be >= 0", ErrInvalidProduct, id)
	}
	p, err := newProduct(KindPhysical, id, name, price, available)
	if err != nil {
		return nil, err
	}
	p.Weight = weight
	return p, nil
}

// NewDigitalProduct builds a digital product. An empty link becomes NoDownloadLink.
func NewDigitalProduct(id, name string, price decimal.Decimal, available int, link string) (*Product, error) {
	p, err := newProduct(KindDigital, id, name, price, available)
	if err != nil {
		return nil, err
	}
	if link == "" {
		link = NoDownloadLink
	}
	p.DownloadLink = link
	return p, nil
}

// Available returns the stock not held by any cart.
func (p *Product) Available() int { return p.available }

// Reserve takes n units out of the available stock. It fails without any
// change unless 0 < n <= Available().
func (p *Product) Reserve(n int) bool {
	if n <= 0 || n > p.available {
		return false
	}
	p.available -= n
	return true
}

// Release returns n previously reserved units. Non-positive n is a no-op.
func (p *Product) Release(n int) {
	if n > 0 {
		p.available += n
	}
}

// Describe returns a one-line human readable summary.
func (p *Product) Describe() string {
	switch p.Kind {
	case KindPhysical:
		return fmt.Sprintf("[%s] %s - ₹%s, Weight: %gkg, Stock: %d", p.ID, p.Name, p.UnitPrice.StringFixed(2), p.Weight, p.available)
	case KindDigital:
		return fmt.Sprintf("[%s] %s - ₹%s (Digital Product), Stock: %d", p.ID, p.Name, p.UnitPrice.StringFixed(2), p.available)
	default:
		return fmt.Sprintf("[%s] %s - ₹%s, In Stock: %d", p.ID, p.Name, p.UnitPrice.StringFixed(2), p.available)
	}
}

// Record returns the persisted form of the product.
func (p *Product) Record() ProductRecord {
	rec := ProductRecord{
		Type:              string(p.Kind),
		ProductID:         p.ID,
		Name:              p.Name,
		Price:             p.UnitPrice.InexactFloat64(),
		QuantityAvailable: p.available,
	}
	switch p.Kind {
	case KindPhysical:
		w := p.Weight
		rec.Weight = &w
	case KindDigital:
		rec.DownloadLink = p.DownloadLink
	}
	return rec
}
