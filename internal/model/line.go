package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine holds a quantity of one catalog product. The product is owned by
// the catalog; the line only points at it.
type CartLine struct {
	Product  *Product
	Quantity int
}

// Subtotal is unit price times quantity.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Record returns the persisted form of the line.
func (l *CartLine) Record() LineRecord {
	return LineRecord{ProductID: l.Product.ID, Quantity: l.Quantity}
}

func (l *CartLine) String() string {
	return fmt.Sprintf("Item: %s, Qty: %d, Price: ₹%s, Subtotal: ₹%s",
		l.Product.Name, l.Quantity, l.Product.UnitPrice.StringFixed(2), l.Subtotal().StringFixed(2))
}
