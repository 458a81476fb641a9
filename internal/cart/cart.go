// Package cart implements the shopping cart and its stock reservations
// against a catalog.
package cart

import (
	"fmt"

	"github.com/fairyhunter13/shopping-cart/internal/catalog"
	"github.com/fairyhunter13/shopping-cart/internal/model"
	"github.com/shopspring/decimal"
)

// Cart owns the reserved quantities. Every change to a line reserves or
// releases the same number of units on the catalog product, so
// available + reserved stays constant per product.
type Cart struct {
	catalog *catalog.Catalog
	lines   map[string]*model.CartLine
	order   []string
}

// New returns an empty cart reserving against c.
func New(c *catalog.Catalog) *Cart {
	return &Cart{catalog: c, lines: make(map[string]*model.CartLine)}
}

// AddOrIncrease reserves qty units of the product and adds them to its line,
// creating the line if needed.
func (c *Cart) AddOrIncrease(productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %d", model.ErrInvalidQuantity, qty)
	}
	p, ok := c.catalog.Lookup(productID)
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownProduct, productID)
	}
	if !p.Reserve(qty) {
		return fmt.Errorf("%w: %s requested %d, available %d", model.ErrInsufficientStock, productID, qty, p.Available())
	}
	if l, ok := c.lines[productID]; ok {
		l.Quantity += qty
		return nil
	}
	c.lines[productID] = &model.CartLine{Product: p, Quantity: qty}
	c.order = append(c.order, productID)
	return nil
}

// UpdateQuantity sets the line quantity, reserving or releasing the
// difference. Setting it to zero removes the line.
func (c *Cart) UpdateQuantity(productID string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: %d", model.ErrInvalidQuantity, qty)
	}
	l, ok := c.lines[productID]
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotInCart, productID)
	}
	delta := qty - l.Quantity
	if delta > 0 {
		if !l.Product.Reserve(delta) {
			return fmt.Errorf("%w: %s needs %d more, available %d", model.ErrInsufficientStock, productID, delta, l.Product.Available())
		}
	} else {
		l.Product.Release(-delta)
	}
	if qty == 0 {
		c.drop(productID)
		return nil
	}
	l.Quantity = qty
	return nil
}

// RemoveItem releases the whole line back to the catalog and deletes it.
func (c *Cart) RemoveItem(productID string) error {
	l, ok := c.lines[productID]
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotInCart, productID)
	}
	l.Product.Release(l.Quantity)
	c.drop(productID)
	return nil
}

func (c *Cart) drop(productID string) {
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns the lines in the order they were first added.
func (c *Cart) Lines() []*model.CartLine {
	out := make([]*model.CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.lines[id])
	}
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.order) }

// Reserved returns how many units of a product the cart holds.
func (c *Cart) Reserved(productID string) int {
	if l, ok := c.lines[productID]; ok {
		return l.Quantity
	}
	return 0
}

// Records returns the persisted form of the cart.
func (c *Cart) Records() []model.LineRecord {
	out := make([]model.LineRecord, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.lines[id].Record())
	}
	return out
}
