package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveAndGet(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "images/public/roof_1700000000", strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "images/public/roof_1700000000")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Get(ctx, "images/public/roof_1700000000")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	size, err := s.GetSize(ctx, "images/public/roof_1700000000")
	require.NoError(t, err)
	assert.Equal(t, int64(len("jpeg-bytes")), size)
}

func TestLocalStorage_Delete(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "vendle-estimates/public/est_1", strings.NewReader("pdf"), "application/pdf"))
	require.NoError(t, s.Delete(ctx, "vendle-estimates/public/est_1"))

	exists, err := s.Exists(ctx, "vendle-estimates/public/est_1")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, s.Delete(ctx, "vendle-estimates/public/est_1"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	ctx := context.Background()

	s := newTestLocalStorage(t)
	url, err := s.GetURL(ctx, "images/public/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/files/images/public/a.jpg", url)

	withBase, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.vendle.io"})
	require.NoError(t, err)
	url, err = withBase.GetURL(ctx, "images/public/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.vendle.io/images/public/a.jpg", url)

	signed, err := withBase.GetSignedURL(ctx, "images/public/a.jpg", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, url, signed)
}
