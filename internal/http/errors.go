// Package httpapi exposes the shop session over JSON/HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairyhunter13/shopping-cart/internal/model"
	"github.com/fairyhunter13/shopping-cart/internal/shop"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, jsonError{Error: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSessionError maps session errors to status codes.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownProduct):
		WriteJSONError(w, http.StatusNotFound, "unknown_product", err.Error())
	case errors.Is(err, model.ErrNotInCart):
		WriteJSONError(w, http.StatusNotFound, "not_in_cart", err.Error())
	case errors.Is(err, model.ErrInvalidQuantity):
		WriteJSONError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, model.ErrInsufficientStock):
		WriteJSONError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, shop.ErrClosed):
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
	default:
		WriteJSONError(w, http.StatusInternalServerError, "persistence_error", err.Error())
	}
}
