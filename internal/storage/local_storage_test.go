package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"genset-rental-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveReadDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage("/uploads/", t.TempDir())
	require.NoError(t, err)

	key := "signatures/abc.png"
	require.NoError(t, s.SaveFile(ctx, key, strings.NewReader("png-bytes")))

	exists, size, err := s.FileExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(9), size)

	rc, err := s.ReadFile(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))

	assert.Equal(t, "/uploads/signatures/abc.png", s.PublicURL(key))

	require.NoError(t, s.DeleteFile(ctx, key))
	exists, _, err = s.FileExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting twice is fine.
	assert.NoError(t, s.DeleteFile(ctx, key))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage("/uploads", t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", "products/../../x", "/"} {
		err := s.SaveFile(ctx, key, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestNewKey(t *testing.T) {
	a := NewKey("products", "JPG")
	b := NewKey("products", ".jpg")
	assert.True(t, strings.HasPrefix(a, "products/"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.NotEqual(t, a, b)
}

func TestNew(t *testing.T) {
	_, err := New(config.StorageConfig{Type: "local", UploadDir: t.TempDir(), BaseURL: "/uploads"})
	assert.NoError(t, err)

	_, err = New(config.StorageConfig{Type: "s3"})
	assert.Error(t, err)
}
