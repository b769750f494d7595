package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tienda-kame/storefront/internal/session/domain"
)

// Gate owns the current session. It is the only component allowed to
// start or end one; the cart manager consumes it as a yes/no guard.
type Gate struct {
	store Store
	carts CartClearer
	now   func() time.Time
}

func NewGate(store Store) *Gate {
	return &Gate{
		store: store,
		now:   time.Now,
	}
}

// AttachCartClearer wires the cart manager in after construction: the
// manager consults the gate before Add, so the two reference each other
// and one side has to be linked late.
func (g *Gate) AttachCartClearer(carts CartClearer) {
	g.carts = carts
}

// Current returns the active session, if any. It has no side effects.
func (g *Gate) Current(ctx context.Context) (domain.Session, bool) {
	s, ok, err := g.store.Load(ctx)
	if err != nil || !ok {
		return domain.Session{}, false
	}
	return s, true
}

// Start creates and persists a session, overwriting any prior one.
// There is no credential check here; authentication happens upstream
// and this layer only records its outcome.
func (g *Gate) Start(ctx context.Context, identity, displayName string) (domain.Session, error) {
	s := domain.Session{
		ID:          uuid.NewString(),
		Identity:    identity,
		DisplayName: displayName,
		StartedAt:   g.now().UTC(),
	}
	if err := g.store.Save(ctx, s); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

// End clears the session and then the cart. Ending an absent session is
// a no-op that still leaves the cart empty.
func (g *Gate) End(ctx context.Context) error {
	if err := g.store.Clear(ctx); err != nil {
		return err
	}
	if g.carts == nil {
		return nil
	}
	return g.carts.Clear(ctx)
}
