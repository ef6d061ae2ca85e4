package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/scormkit/pkg/adapters/memory"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/persistence/middleware"
	"github.com/aretw0/scormkit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunStorageContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secure := mw(underlying)
	ctx := context.Background()

	secret := `{~learner~:~ada~}`
	require.NoError(t, secure.SetItem(ctx, domain.KeySuspendDataStr, secret))

	stored, err := underlying.GetItem(ctx, domain.KeySuspendDataStr)
	require.NoError(t, err)
	assert.NotContains(t, stored, "ada", "the underlying store must only see ciphertext")
	assert.True(t, strings.HasPrefix(stored, "enc:v1:"))

	got, err := secure.GetItem(ctx, domain.KeySuspendDataStr)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, secureOld.SetItem(ctx, domain.KeyBookmark, "encrypted-with-old-key"))

	secureNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	got, err := secureNew.GetItem(ctx, domain.KeyBookmark)
	require.NoError(t, err, "fallback keys decrypt old values")
	assert.Equal(t, "encrypted-with-old-key", got)

	require.NoError(t, secureNew.SetItem(ctx, domain.KeyBookmark, "encrypted-with-new-key"))

	_, err = secureOld.GetItem(ctx, domain.KeyBookmark)
	assert.Error(t, err, "old key alone cannot read values written with the new key")
}

func TestEncryptionMiddleware_RejectsPlainValues(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.SetItem(ctx, domain.KeyBookmark, "12"))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.GetItem(ctx, domain.KeyBookmark)
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)

	_, err = secure.GetItem(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound, "not-found passes through unchanged")
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}
