package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienda-kame/storefront/internal/cart/domain"
)

type memStore struct {
	items []domain.Item
}

func (s *memStore) Load(context.Context) ([]domain.Item, error) {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *memStore) Save(_ context.Context, items []domain.Item) error {
	s.items = make([]domain.Item, len(items))
	copy(s.items, items)
	return nil
}

func (s *memStore) Clear(context.Context) error {
	s.items = nil
	return nil
}

type fakeCatalog struct {
	products map[int64]Snapshot
}

func (c *fakeCatalog) ProductByID(_ context.Context, id int64) (Snapshot, error) {
	p, ok := c.products[id]
	if !ok {
		return Snapshot{}, ErrProductNotFound
	}
	return p, nil
}

type fakeSessions struct{ active bool }

func (s *fakeSessions) Active(context.Context) bool { return s.active }

type recordingNotifier struct {
	calls int
	last  domain.Summary
}

func (n *recordingNotifier) CartChanged(_ context.Context, summary domain.Summary) {
	n.calls++
	n.last = summary
}

func newFixture() (*Manager, *memStore, *fakeCatalog, *fakeSessions, *recordingNotifier) {
	store := &memStore{}
	catalog := &fakeCatalog{products: map[int64]Snapshot{
		1: {ID: 1, Name: "Armadura Flexible", Price: 29999, Image: "images/armadura.jpg"},
		7: {ID: 7, Name: "Senzu", Price: 4999, Image: "images/senzu.jpg"},
	}}
	sessions := &fakeSessions{active: true}
	notifier := &recordingNotifier{}
	return NewManager(store, catalog, sessions, notifier), store, catalog, sessions, notifier
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the product", func(t *testing.T) {
		m, store, _, _, _ := newFixture()
		require.NoError(t, m.Add(ctx, 1, 1))

		require.Len(t, store.items, 1)
		assert.Equal(t, domain.Item{
			ID: 1, Name: "Armadura Flexible", Price: 29999,
			Image: "images/armadura.jpg", Quantity: 1,
		}, store.items[0])
	})

	t.Run("merges into the existing item", func(t *testing.T) {
		m, store, _, _, _ := newFixture()
		require.NoError(t, m.Add(ctx, 7, 2))
		require.NoError(t, m.Add(ctx, 7, 3))

		require.Len(t, store.items, 1)
		assert.Equal(t, int64(7), store.items[0].ID)
		assert.Equal(t, int64(5), store.items[0].Quantity)
	})

	t.Run("rejects without a session and leaves the cart untouched", func(t *testing.T) {
		m, store, _, sessions, notifier := newFixture()
		require.NoError(t, m.Add(ctx, 1, 1))
		before := append([]domain.Item(nil), store.items...)

		sessions.active = false
		err := m.Add(ctx, 7, 1)
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, before, store.items)
		assert.Equal(t, 1, notifier.calls)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		m, store, _, _, _ := newFixture()
		assert.ErrorIs(t, m.Add(ctx, 1, 0), ErrInvalidQuantity)
		assert.ErrorIs(t, m.Add(ctx, 1, -3), ErrInvalidQuantity)
		assert.Empty(t, store.items)
	})

	t.Run("rejects unknown products", func(t *testing.T) {
		m, store, _, _, _ := newFixture()
		assert.ErrorIs(t, m.Add(ctx, 404, 1), ErrProductNotFound)
		assert.Empty(t, store.items)
	})
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("absolute overwrite", func(t *testing.T) {
		m, store, _, _, _ := newFixture()
		require.NoError(t, m.Add(ctx, 1, 2))
		require.NoError(t, m.SetQuantity(ctx, 1, 9))
		assert.Equal(t, int64(9), store.items[0].Quantity)
	})

	t.Run("idempotent", func(t *testing.T) {
		m, store, _, _, notifier := newFixture()
		require.NoError(t, m.Add(ctx, 1, 2))

		require.NoError(t, m.SetQuantity(ctx, 1, 5))
		after := append([]domain.Item(nil), store.items...)
		calls := notifier.calls

		require.NoError(t, m.SetQuantity(ctx, 1, 5))
		assert.Equal(t, after, store.items)
		assert.Equal(t, calls, notifier.calls)
	})

	t.Run("zero and negative remove the item", func(t *testing.T) {
		for _, q := range []int64{0, -1} {
			m, store, _, _, _ := newFixture()
			require.NoError(t, m.Add(ctx, 1, 2))
			require.NoError(t, m.SetQuantity(ctx, 1, q))
			assert.Empty(t, store.items)
		}
	})

	t.Run("unmatched id is a silent no-op", func(t *testing.T) {
		m, store, _, _, notifier := newFixture()
		require.NoError(t, m.SetQuantity(ctx, 42, 3))
		assert.Empty(t, store.items)
		assert.Zero(t, notifier.calls)
	})
}

func TestChangeQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("stepper scenario", func(t *testing.T) {
		m, store, _, _, _ := newFixture()
		require.NoError(t, m.Add(ctx, 1, 1))

		require.NoError(t, m.ChangeQuantity(ctx, 1, 2))
		assert.Equal(t, int64(3), store.items[0].Quantity)

		// A delta that would go negative removes the item.
		require.NoError(t, m.ChangeQuantity(ctx, 1, -5))
		assert.Empty(t, store.items)
	})

	t.Run("absent item is left alone", func(t *testing.T) {
		m, store, _, _, _ := newFixture()
		require.NoError(t, m.ChangeQuantity(ctx, 1, 2))
		assert.Empty(t, store.items)
	})
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()

	t.Run("remove deletes one item", func(t *testing.T) {
		m, store, _, _, _ := newFixture()
		require.NoError(t, m.Add(ctx, 1, 1))
		require.NoError(t, m.Add(ctx, 7, 2))

		require.NoError(t, m.Remove(ctx, 1))
		require.Len(t, store.items, 1)
		assert.Equal(t, int64(7), store.items[0].ID)

		// Removing again is a no-op.
		require.NoError(t, m.Remove(ctx, 1))
		assert.Len(t, store.items, 1)
	})

	t.Run("clear empties everything", func(t *testing.T) {
		m, _, _, _, _ := newFixture()
		require.NoError(t, m.Add(ctx, 1, 2))
		require.NoError(t, m.Add(ctx, 7, 1))

		require.NoError(t, m.Clear(ctx))

		qty, err := m.TotalQuantity(ctx)
		require.NoError(t, err)
		assert.Zero(t, qty)

		total, err := m.TotalValue(ctx)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestTotals(t *testing.T) {
	ctx := context.Background()

	t.Run("sum of snapshot price times quantity", func(t *testing.T) {
		m, _, _, _, _ := newFixture()
		require.NoError(t, m.Add(ctx, 1, 2)) // 2 x 29999
		require.NoError(t, m.Add(ctx, 7, 3)) // 3 x 4999

		qty, err := m.TotalQuantity(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), qty)

		total, err := m.TotalValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.Money(2*29999+3*4999), total)
	})

	t.Run("later catalog price changes do not reprice the cart", func(t *testing.T) {
		m, _, catalog, _, _ := newFixture()
		require.NoError(t, m.Add(ctx, 7, 2))

		catalog.products[7] = Snapshot{ID: 7, Name: "Senzu", Price: 99999}

		total, err := m.TotalValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.Money(2*4999), total)
	})
}

func TestUniqueness(t *testing.T) {
	ctx := context.Background()
	m, store, _, _, _ := newFixture()

	require.NoError(t, m.Add(ctx, 1, 1))
	require.NoError(t, m.Add(ctx, 7, 2))
	require.NoError(t, m.Add(ctx, 1, 4))
	require.NoError(t, m.SetQuantity(ctx, 7, 1))
	require.NoError(t, m.Remove(ctx, 1))
	require.NoError(t, m.Add(ctx, 1, 1))
	require.NoError(t, m.ChangeQuantity(ctx, 7, 3))

	seen := map[int64]bool{}
	for _, it := range store.items {
		assert.False(t, seen[it.ID], "duplicate cart item for id %d", it.ID)
		seen[it.ID] = true
		assert.GreaterOrEqual(t, it.Quantity, int64(1))
	}
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	m, _, _, _, notifier := newFixture()

	require.NoError(t, m.Add(ctx, 1, 2))
	require.Equal(t, 1, notifier.calls)
	assert.Equal(t, int64(2), notifier.last.TotalQuantity)

	require.NoError(t, m.Clear(ctx))
	require.Equal(t, 2, notifier.calls)
	assert.Zero(t, notifier.last.TotalQuantity)
	assert.Empty(t, notifier.last.Items)
}
