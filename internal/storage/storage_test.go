package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the shared key-value contract against a backend
func exerciseStore(t *testing.T, store KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "zen_cart", []byte(`[{"id":"a"}]`)))
	value, err := store.Get(ctx, "zen_cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(value))

	require.NoError(t, store.Set(ctx, "zen_cart", []byte(`[]`)))
	value, err = store.Get(ctx, "zen_cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))

	require.NoError(t, store.Delete(ctx, "zen_cart"))
	_, err = store.Get(ctx, "zen_cart")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, store.Delete(ctx, "zen_cart"), "deleting a missing key is not an error")
	assert.Error(t, store.Set(ctx, "  ", []byte("x")))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("calm")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'p'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "calm", string(got))
	assert.Equal(t, 1, store.Len())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestFileStore_KeysStayInsideBase(t *testing.T) {
	base := t.TempDir()
	store, err := NewFileStore(base)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "../escape", []byte("x")))
	require.NoError(t, store.Set(ctx, "visitor:abc:zen_wishlist", []byte("[]")))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = os.Stat(filepath.Join(filepath.Dir(base), "escape.json"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, store.Set(ctx, "..", []byte("x")))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(base)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "zen_wishlist", []byte(`["r1"]`)))

	second, err := NewFileStore(base)
	require.NoError(t, err)
	value, err := second.Get(ctx, "zen_wishlist")
	require.NoError(t, err)
	assert.Equal(t, `["r1"]`, string(value))
}

func TestPrefixed(t *testing.T) {
	base := NewMemoryStore()
	ctx := context.Background()

	alice := Prefixed(base, VisitorPrefix("alice"))
	bob := Prefixed(base, VisitorPrefix("bob"))

	require.NoError(t, alice.Set(ctx, "zen_cart", []byte("a")))
	require.NoError(t, bob.Set(ctx, "zen_cart", []byte("b")))

	value, err := base.Get(ctx, "visitor:alice:zen_cart")
	require.NoError(t, err)
	assert.Equal(t, "a", string(value))

	value, err = bob.Get(ctx, "zen_cart")
	require.NoError(t, err)
	assert.Equal(t, "b", string(value))

	require.NoError(t, alice.Delete(ctx, "zen_cart"))
	_, err = alice.Get(ctx, "zen_cart")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = bob.Get(ctx, "zen_cart")
	assert.NoError(t, err)
}

// failingStore fails every operation
type failingStore struct{}

var errBackendDown = errors.New("backend down")

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errBackendDown }
func (failingStore) Set(context.Context, string, []byte) error   { return errBackendDown }
func (failingStore) Delete(context.Context, string) error        { return errBackendDown }
func (failingStore) HealthCheck(context.Context) error           { return errBackendDown }

func TestFallbackStore_PrimaryHealthy(t *testing.T) {
	primary := NewMemoryStore()
	fallback := NewMemoryStore()
	store := WithFallback(primary, fallback)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	assert.Equal(t, 1, primary.Len())
	assert.Equal(t, 1, fallback.Len(), "writes go to both stores")

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(value))

	require.NoError(t, store.Delete(ctx, "k"))
	assert.Equal(t, 0, primary.Len())
	assert.Equal(t, 0, fallback.Len())
}

func TestFallbackStore_PrimaryDown(t *testing.T) {
	fallback := NewMemoryStore()
	store := WithFallback(failingStore{}, fallback)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(value))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, store.Delete(ctx, "k"))
	assert.ErrorIs(t, store.HealthCheck(ctx), errBackendDown)
}

func TestFallbackStore_BothDown(t *testing.T) {
	store := WithFallback(failingStore{}, failingStore{})
	ctx := context.Background()

	assert.Error(t, store.Set(ctx, "k", []byte("v")))
	assert.Error(t, store.Delete(ctx, "k"))
	_, err := store.Get(ctx, "k")
	assert.Error(t, err)
}
