package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/scormkit/pkg/adapters/memory"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	view := middleware.NewPIIMiddleware([]string{"^suspend_data"})(underlying)
	ctx := context.Background()

	require.NoError(t, view.SetItem(ctx, domain.KeySuspendData, `{"name":"ada"}`))
	require.NoError(t, view.SetItem(ctx, domain.KeyBookmark, "4"))

	masked, err := view.GetItem(ctx, domain.KeySuspendData)
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, masked)

	plain, err := view.GetItem(ctx, domain.KeyBookmark)
	require.NoError(t, err)
	assert.Equal(t, "4", plain)

	raw, err := underlying.GetItem(ctx, domain.KeySuspendData)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"ada"}`, raw, "writes are not masked")

	_, err = view.GetItem(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestChain_Order(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	key := make([]byte, 32)

	store := middleware.Chain(underlying,
		middleware.NewPIIMiddleware([]string{"bookmark$"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)
	require.NoError(t, store.SetItem(ctx, domain.KeyBookmark, "9"))
	require.NoError(t, store.SetItem(ctx, domain.KeyBookmarkLocation, "9"))

	got, err := store.GetItem(ctx, domain.KeyBookmark)
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, got)

	got, err = store.GetItem(ctx, domain.KeyBookmarkLocation)
	require.NoError(t, err)
	assert.Equal(t, "9", got, "inner encryption is transparent to the outer view")
}
