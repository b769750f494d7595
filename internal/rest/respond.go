// Package rest holds the helpers shared by the component handlers:
// JSON responses and the mapping from the core's error kinds to HTTP
// statuses.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	cartapp "github.com/tienda-kame/storefront/internal/cart/app"
	catalogapp "github.com/tienda-kame/storefront/internal/catalog/app"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads a request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func Error(w http.ResponseWriter, err error) {
	status, code := StatusFromError(err)
	JSON(w, status, errorBody{Error: err.Error(), Code: code})
}

// StatusFromError maps the four recoverable error kinds of the core to
// HTTP statuses; anything unexpected is a 500.
func StatusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, cartapp.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, cartapp.ErrInvalidQuantity):
		return http.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, cartapp.ErrProductNotFound):
		return http.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, catalogapp.ErrLoadFailed):
		return http.StatusServiceUnavailable, "CATALOG_LOAD_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
