package app

import (
	"context"

	"github.com/tienda-kame/storefront/internal/cart/domain"
)

// Store persists the cart. Load returns an empty slice when the slot is
// absent or unreadable; it never fails on corrupt data.
type Store interface {
	Load(ctx context.Context) ([]domain.Item, error)
	Save(ctx context.Context, items []domain.Item) error
	Clear(ctx context.Context) error
}

// Snapshot is the product data copied into a new cart item at add time.
type Snapshot struct {
	ID    int64
	Name  string
	Price domain.Money
	Image string
}

// CatalogReader resolves a product for snapshotting. Implementations
// return ErrProductNotFound when the id is unknown.
type CatalogReader interface {
	ProductByID(ctx context.Context, id int64) (Snapshot, error)
}

// SessionReader answers the "is a session active" signal guarding Add.
type SessionReader interface {
	Active(ctx context.Context) bool
}

// Notifier receives the derived cart view after every successful
// mutation. View Sync implements it.
type Notifier interface {
	CartChanged(ctx context.Context, summary domain.Summary)
}
