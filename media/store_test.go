package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	h, err := s.Put(ctx, Blob{MimeType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}})
	require.NoError(t, err)
	assert.Contains(t, h, Scheme)

	b, err := s.Get(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, "image/png", b.MimeType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, b.Data)

	h2, err := s.Put(ctx, Blob{MimeType: "image/jpeg", Data: []byte("jpeg")})
	require.NoError(t, err)
	assert.NotEqual(t, h, h2)

	require.NoError(t, ReleaseAll(ctx, s, []string{h, h2}))
	_, err = s.Get(ctx, h)
	assert.ErrorIs(t, err, ErrNotFound)

	// releasing twice or releasing garbage is a no-op
	assert.NoError(t, s.Release(ctx, h))
	assert.NoError(t, s.Release(ctx, "media://not-a-uuid"))

	_, err = s.Get(ctx, "https://example.com/x.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	testStore(t, s)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_CopiesInput(t *testing.T) {
	s := NewMemoryStore()
	data := []byte("abc")
	h, err := s.Put(context.Background(), Blob{MimeType: "image/png", Data: data})
	require.NoError(t, err)

	data[0] = 'z'
	b, err := s.Get(context.Background(), h)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b.Data))
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, s)
}

func TestFileStore_UnknownMime(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	h, err := s.Put(context.Background(), Blob{MimeType: "application/x-weird", Data: []byte("x")})
	require.NoError(t, err)
	b, err := s.Get(context.Background(), h)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", b.MimeType)
}
