package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	return NewFileStore(path, nil), path
}

func TestFileStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store, path := newTestFileStore(t)

	_, ok, err := store.Get(ctx, "carrito")
	require.NoError(t, err)
	assert.False(t, ok, "missing slot must read as absent")

	require.NoError(t, store.Put(ctx, "carrito", []byte(`[{"id":1,"cantidad":2}]`)))

	got, ok, err := store.Get(ctx, "carrito")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1,"cantidad":2}]`, string(got))

	t.Run("survives a reopen", func(t *testing.T) {
		again := NewFileStore(path, nil)
		got, ok, err := again.Get(ctx, "carrito")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[{"id":1,"cantidad":2}]`, string(got))
	})

	t.Run("delete removes the slot only", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "usuario", []byte(`{"email":"a@b"}`)))
		require.NoError(t, store.Delete(ctx, "carrito"))

		_, ok, err := store.Get(ctx, "carrito")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.Get(ctx, "usuario")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("deleting an absent slot is a no-op", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "nope"))
	})
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	store, path := newTestFileStore(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok, err := store.Get(ctx, "carrito")
	require.NoError(t, err, "corruption must fail open, not error")
	assert.False(t, ok)

	// Writes recover the store.
	require.NoError(t, store.Put(ctx, "carrito", []byte(`[]`)))
	got, ok, err := store.Get(ctx, "carrito")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(got))
}
