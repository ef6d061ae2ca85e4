package ports

import (
	"context"
	"testing"

	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStorageContract runs a suite of tests to verify that a Storage implementation
// adheres to the defined interface contract. The storage must start empty.
func RunStorageContract(t *testing.T, store Storage) {
	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, domain.KeyBookmark, "42"), "SetItem should not return error")

		got, err := store.GetItem(ctx, domain.KeyBookmark)
		require.NoError(t, err, "GetItem should not return error")
		assert.Equal(t, "42", got)
	})

	t.Run("Last Writer Wins", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, domain.KeyBookmark, "1"))
		require.NoError(t, store.SetItem(ctx, domain.KeyBookmark, "2"))

		got, err := store.GetItem(ctx, domain.KeyBookmark)
		require.NoError(t, err)
		assert.Equal(t, "2", got)
	})

	t.Run("Preserves Reserved Characters", func(t *testing.T) {
		value := `{~a~:1|~b~:~¬x¬~}`
		require.NoError(t, store.SetItem(ctx, domain.KeySuspendDataStr, value))

		got, err := store.GetItem(ctx, domain.KeySuspendDataStr)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("Empty Value Is Stored", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, "empty", ""))

		got, err := store.GetItem(ctx, "empty")
		require.NoError(t, err, "an empty value is still a stored value")
		assert.Equal(t, "", got)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.GetItem(ctx, "non-existent")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, domain.KeySuspendData, "{}"))
		require.NoError(t, store.RemoveItem(ctx, domain.KeySuspendData), "RemoveItem should not return error")

		_, err := store.GetItem(ctx, domain.KeySuspendData)
		assert.ErrorIs(t, err, domain.ErrItemNotFound, "GetItem after RemoveItem should return ErrItemNotFound")

		assert.NoError(t, store.RemoveItem(ctx, "never-set"), "removing a missing key is not an error")
	})

	t.Run("Keys", func(t *testing.T) {
		require.NoError(t, store.SetItem(ctx, domain.KeyBookmarkLocation, "7"))

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, domain.KeyBookmark)
		assert.Contains(t, keys, domain.KeyBookmarkLocation)
		assert.NotContains(t, keys, domain.KeySuspendData)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)

		_, err = store.GetItem(ctx, domain.KeyBookmark)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}
