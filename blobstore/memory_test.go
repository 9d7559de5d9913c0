package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("PutOpen", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "a/one", []byte("hello")))

		b, err := s.Open(ctx, "a/one")
		require.NoError(t, err)
		defer b.Close()

		assert.Equal(t, int64(5), b.Size())
		data, err := ReadAll(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.Open(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Create", func(t *testing.T) {
		w, err := s.Create(ctx, "a/two")
		require.NoError(t, err)
		_, err = w.Write([]byte("wor"))
		require.NoError(t, err)
		_, err = w.Write([]byte("ld"))
		require.NoError(t, err)
		require.NoError(t, w.Sync())
		require.NoError(t, w.Close())

		b, err := s.Open(ctx, "a/two")
		require.NoError(t, err)
		defer b.Close()
		data, err := ReadAll(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("world"), data)
	})

	t.Run("List", func(t *testing.T) {
		names, err := s.List(ctx, "a/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/one", "a/two"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "a/one"))
		_, err := s.Open(ctx, "a/one")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	t.Run("PutOpen", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "snap/one", []byte("hello")))

		b, err := s.Open(ctx, "snap/one")
		require.NoError(t, err)
		defer b.Close()

		data, err := ReadAll(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("ReadAt", func(t *testing.T) {
		b, err := s.Open(ctx, "snap/one")
		require.NoError(t, err)
		defer b.Close()

		p := make([]byte, 3)
		n, err := b.ReadAt(ctx, p, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []byte("llo"), p)
	})

	t.Run("ListAndDelete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "snap/two", []byte("x")))

		names, err := s.List(ctx, "snap/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snap/one", "snap/two"}, names)

		require.NoError(t, s.Delete(ctx, "snap/one"))
		require.NoError(t, s.Delete(ctx, "snap/one")) // idempotent

		names, err = s.List(ctx, "snap/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snap/two"}, names)
	})
}
