package app

import (
	"context"

	"github.com/tienda-kame/storefront/internal/session/domain"
)

// Store persists the session slot. Load reports absent (ok=false) for a
// missing or unreadable slot.
type Store interface {
	Load(ctx context.Context) (domain.Session, bool, error)
	Save(ctx context.Context, s domain.Session) error
	Clear(ctx context.Context) error
}

// CartClearer is the documented cross-component contract with the cart
// manager: ending a session clears the cart. The coupling is deliberate;
// the cart is not meant to outlive the session.
type CartClearer interface {
	Clear(ctx context.Context) error
}
