package app

import (
	"context"

	"github.com/tienda-kame/storefront/internal/catalog/domain"
)

// Source fetches the catalog document. Implementations live under
// infra/source; the store treats any failure as retryable.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Product, error)
}
