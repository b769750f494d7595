package adapter

import (
	"context"

	cartdomain "github.com/tienda-kame/storefront/internal/cart/domain"
	catalogdomain "github.com/tienda-kame/storefront/internal/catalog/domain"
	sessionapp "github.com/tienda-kame/storefront/internal/session/app"
)

// Both domains count in centavos; the conversion is a plain cast kept in
// one place.
func cartdomainMoney(m catalogdomain.Money) cartdomain.Money {
	return cartdomain.Money(m)
}

type SessionGateReader struct {
	gate *sessionapp.Gate
}

func NewSessionGateReader(gate *sessionapp.Gate) *SessionGateReader {
	return &SessionGateReader{gate: gate}
}

func (r *SessionGateReader) Active(ctx context.Context) bool {
	_, ok := r.gate.Current(ctx)
	return ok
}
