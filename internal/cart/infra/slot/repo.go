// Package slot persists the cart in one named slot of the slot store.
// The wire field names (id, nombre, precio, imagen, cantidad) must not
// change: existing persisted carts depend on them.
package slot

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"

	"github.com/pkg/errors"

	"github.com/tienda-kame/storefront/internal/cart/domain"
	"github.com/tienda-kame/storefront/internal/storage"
)

const cartKey = "carrito"

type wireItem struct {
	ID       int64   `json:"id"`
	Nombre   string  `json:"nombre"`
	Precio   float64 `json:"precio"`
	Imagen   string  `json:"imagen"`
	Cantidad int64   `json:"cantidad"`
}

type Repo struct {
	store storage.Store
	log   *slog.Logger
}

func NewRepo(store storage.Store, log *slog.Logger) *Repo {
	if log == nil {
		log = slog.Default()
	}
	return &Repo{store: store, log: log}
}

// Load returns the persisted cart. An absent slot is an empty cart, and
// so is a corrupt one: storage corruption must never brick the page.
func (r *Repo) Load(ctx context.Context) ([]domain.Item, error) {
	data, ok, err := r.store.Get(ctx, cartKey)
	if err != nil {
		return nil, errors.Wrap(err, "load cart slot")
	}
	if !ok {
		return nil, nil
	}

	var wire []wireItem
	if err := json.Unmarshal(data, &wire); err != nil {
		r.log.Warn("cart slot is corrupt, treating as empty", slog.Any("err", err))
		return nil, nil
	}

	items := make([]domain.Item, 0, len(wire))
	for _, w := range wire {
		items = append(items, domain.Item{
			ID:       w.ID,
			Name:     w.Nombre,
			Price:    domain.Money(math.Round(w.Precio * 100)),
			Image:    w.Imagen,
			Quantity: w.Cantidad,
		})
	}
	return items, nil
}

func (r *Repo) Save(ctx context.Context, items []domain.Item) error {
	wire := make([]wireItem, 0, len(items))
	for _, it := range items {
		wire = append(wire, wireItem{
			ID:       it.ID,
			Nombre:   it.Name,
			Precio:   it.Price.Decimal(),
			Imagen:   it.Image,
			Cantidad: it.Quantity,
		})
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return errors.Wrap(err, "marshal cart")
	}
	return r.store.Put(ctx, cartKey, data)
}

func (r *Repo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, cartKey)
}
