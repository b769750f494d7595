package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/tienda-kame/storefront/internal/cart/domain"
)

type recordingSurface struct {
	paints []cartdomain.Summary
}

func (s *recordingSurface) ShowCart(summary cartdomain.Summary) {
	s.paints = append(s.paints, summary)
}

type fixedSource struct {
	summary cartdomain.Summary
	err     error
}

func (s *fixedSource) Summary(context.Context) (cartdomain.Summary, error) {
	return s.summary, s.err
}

func TestSyncPushesToAllSurfaces(t *testing.T) {
	a, b := &recordingSurface{}, &recordingSurface{}
	sync := NewSync(nil, a, b)

	summary := cartdomain.Summary{TotalQuantity: 3, TotalValue: 14997}
	sync.CartChanged(context.Background(), summary)

	require.Len(t, a.paints, 1)
	require.Len(t, b.paints, 1)
	assert.Equal(t, summary, a.paints[0])
	assert.Equal(t, summary, b.paints[0])
}

func TestSyncToleratesMissingSurfaces(t *testing.T) {
	sync := NewSync(nil) // a page with no badge at all
	assert.NotPanics(t, func() {
		sync.CartChanged(context.Background(), cartdomain.Summary{})
	})

	sync = NewSync(nil, nil, &recordingSurface{})
	assert.NotPanics(t, func() {
		sync.CartChanged(context.Background(), cartdomain.Summary{})
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent with no intervening mutation", func(t *testing.T) {
		surface := &recordingSurface{}
		sync := NewSync(nil, surface)
		sync.AttachSource(&fixedSource{summary: cartdomain.Summary{TotalQuantity: 2, TotalValue: 9998}})

		require.NoError(t, sync.Refresh(ctx))
		require.NoError(t, sync.Refresh(ctx))

		require.Len(t, surface.paints, 2)
		assert.Equal(t, surface.paints[0], surface.paints[1])
	})

	t.Run("no source attached is a no-op", func(t *testing.T) {
		require.NoError(t, NewSync(nil).Refresh(ctx))
	})

	t.Run("source errors propagate without painting", func(t *testing.T) {
		surface := &recordingSurface{}
		sync := NewSync(nil, surface)
		sync.AttachSource(&fixedSource{err: errors.New("store offline")})

		require.Error(t, sync.Refresh(ctx))
		assert.Empty(t, surface.paints)
	})
}

func TestSelector(t *testing.T) {
	s := NewSelector()

	t.Run("defaults to one", func(t *testing.T) {
		assert.Equal(t, int64(1), s.Current(5))
	})

	t.Run("steps and floors at one", func(t *testing.T) {
		assert.Equal(t, int64(3), s.Step(5, 2))
		assert.Equal(t, int64(2), s.Step(5, -1))
		assert.Equal(t, int64(1), s.Step(5, -10))
		assert.Equal(t, int64(1), s.Current(5))
	})

	t.Run("cards are independent", func(t *testing.T) {
		s.Step(1, 4)
		assert.Equal(t, int64(5), s.Current(1))
		assert.Equal(t, int64(1), s.Current(2))
	})

	t.Run("reset goes back to one", func(t *testing.T) {
		s.Step(9, 7)
		s.Reset(9)
		assert.Equal(t, int64(1), s.Current(9))
	})
}
