// Package adapter bridges the cart manager's ports to the other
// components' services.
package adapter

import (
	"context"
	"errors"

	cartapp "github.com/tienda-kame/storefront/internal/cart/app"
	catalogapp "github.com/tienda-kame/storefront/internal/catalog/app"
)

type CatalogStoreReader struct {
	store *catalogapp.Store
}

func NewCatalogStoreReader(store *catalogapp.Store) *CatalogStoreReader {
	return &CatalogStoreReader{store: store}
}

// ProductByID resolves the snapshot for a new cart item. A product the
// catalog does not know — including the not-yet-loaded case — maps to
// the cart's ErrProductNotFound.
func (r *CatalogStoreReader) ProductByID(_ context.Context, id int64) (cartapp.Snapshot, error) {
	p, err := r.store.ByID(id)
	if err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) {
			return cartapp.Snapshot{}, cartapp.ErrProductNotFound
		}
		return cartapp.Snapshot{}, err
	}
	return cartapp.Snapshot{
		ID:    p.ID,
		Name:  p.Name,
		Price: cartdomainMoney(p.Price),
		Image: p.Image,
	}, nil
}
