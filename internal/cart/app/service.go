package app

import (
	"context"
	"errors"
	"sync"

	"github.com/tienda-kame/storefront/internal/cart/domain"
)

var (
	ErrUnauthenticated = errors.New("no active session")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrProductNotFound = errors.New("product not found in catalog")
)

// Manager owns the persisted cart. Every mutation is load-compute-store
// under one mutex, so concurrent handlers can never interleave partial
// updates, and every successful mutation pushes the derived view to the
// notifier.
type Manager struct {
	mu       sync.Mutex
	store    Store
	catalog  CatalogReader
	sessions SessionReader
	notifier Notifier
}

func NewManager(store Store, catalog CatalogReader, sessions SessionReader, notifier Notifier) *Manager {
	return &Manager{
		store:    store,
		catalog:  catalog,
		sessions: sessions,
		notifier: notifier,
	}
}

// Add merges qty into an existing item or creates a new one with a
// name/price/image snapshot from the catalog. It requires an active
// session and a positive quantity; on any failure the cart is untouched.
func (m *Manager) Add(ctx context.Context, productID, qty int64) error {
	if !m.sessions.Active(ctx) {
		return ErrUnauthenticated
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	if idx := indexOf(items, productID); idx >= 0 {
		items[idx].Quantity += qty
	} else {
		p, err := m.catalog.ProductByID(ctx, productID)
		if err != nil {
			return err
		}
		items = append(items, domain.Item{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
			Quantity: qty,
		})
	}

	if err := m.store.Save(ctx, items); err != nil {
		return err
	}
	m.notify(ctx, items)
	return nil
}

// SetQuantity overwrites the stored quantity for productID. A value of
// zero or less removes the item; an unmatched id is a silent no-op.
func (m *Manager) SetQuantity(ctx context.Context, productID, quantity int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setQuantityLocked(ctx, productID, quantity)
}

// ChangeQuantity applies a delta to the persisted quantity. Items not in
// the cart are left alone: the catalog page's selector counters are a
// separate, unpersisted concern (see internal/view).
func (m *Manager) ChangeQuantity(ctx context.Context, productID, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(items, productID)
	if idx < 0 {
		return nil
	}
	return m.setQuantityLocked(ctx, productID, items[idx].Quantity+delta)
}

// Remove deletes the matching item if present; otherwise it is a no-op.
func (m *Manager) Remove(ctx context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(ctx, productID)
}

// Clear drops the whole cart. Confirmation prompts are a UI concern;
// the operation itself is unconditional and idempotent.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.notify(ctx, nil)
	return nil
}

func (m *Manager) Items(ctx context.Context) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Load(ctx)
}

func (m *Manager) TotalQuantity(ctx context.Context) (int64, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return 0, err
	}
	return domain.TotalQuantity(items), nil
}

// TotalValue sums snapshot prices, so a later catalog price change never
// moves an existing item's contribution.
func (m *Manager) TotalValue(ctx context.Context) (domain.Money, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return 0, err
	}
	return domain.TotalValue(items), nil
}

func (m *Manager) Summary(ctx context.Context) (domain.Summary, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(items), nil
}

func (m *Manager) setQuantityLocked(ctx context.Context, productID, quantity int64) error {
	if quantity <= 0 {
		return m.removeLocked(ctx, productID)
	}

	items, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(items, productID)
	if idx < 0 {
		return nil
	}
	if items[idx].Quantity == quantity {
		return nil
	}
	items[idx].Quantity = quantity

	if err := m.store.Save(ctx, items); err != nil {
		return err
	}
	m.notify(ctx, items)
	return nil
}

func (m *Manager) removeLocked(ctx context.Context, productID int64) error {
	items, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(items, productID)
	if idx < 0 {
		return nil
	}
	items = append(items[:idx], items[idx+1:]...)

	if err := m.store.Save(ctx, items); err != nil {
		return err
	}
	m.notify(ctx, items)
	return nil
}

func (m *Manager) notify(ctx context.Context, items []domain.Item) {
	if m.notifier == nil {
		return
	}
	m.notifier.CartChanged(ctx, domain.Summarize(items))
}

func indexOf(items []domain.Item, productID int64) int {
	for i, it := range items {
		if it.ID == productID {
			return i
		}
	}
	return -1
}
