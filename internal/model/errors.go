package model

import "errors"

// Errors reported by catalog and cart operations. Callers match them with errors.Is.
var (
	ErrUnknownProduct    = errors.New("unknown product")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrNotInCart         = errors.New("product not in cart")
)
