package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/locimg"
	"github.com/fwojciec/locimg/fs"
)

func TestAssetStore_Store(t *testing.T) {
	t.Parallel()

	t.Run("uses the URL basename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		path, err := s.Store(context.Background(), "https://example.com/a/logo.png", &locimg.FetchResult{Body: []byte("abc")})

		require.NoError(t, err)
		assert.Equal(t, "logo.png", filepath.Base(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})

	t.Run("ignores query and fragment", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		path, err := s.Store(context.Background(), "https://example.com/pic.jpg?size=large#top", &locimg.FetchResult{Body: []byte("x")})

		require.NoError(t, err)
		assert.Equal(t, "pic.jpg", filepath.Base(path))
	})

	t.Run("disambiguates colliding basenames from different URLs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		first, err := s.Store(context.Background(), "https://a.example.com/icon.png", &locimg.FetchResult{Body: []byte("a")})
		require.NoError(t, err)
		second, err := s.Store(context.Background(), "https://b.example.com/icon.png", &locimg.FetchResult{Body: []byte("b")})
		require.NoError(t, err)
		third, err := s.Store(context.Background(), "https://c.example.com/icon.png", &locimg.FetchResult{Body: []byte("c")})
		require.NoError(t, err)

		assert.Equal(t, "icon.png", filepath.Base(first))
		assert.Equal(t, "icon-1.png", filepath.Base(second))
		assert.Equal(t, "icon-2.png", filepath.Base(third))

		// All three files exist with their own bytes.
		data, err := os.ReadFile(second)
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), data)
	})

	t.Run("same URL keeps the same name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		first, err := s.Store(context.Background(), "https://example.com/icon.png", &locimg.FetchResult{Body: []byte("a")})
		require.NoError(t, err)
		second, err := s.Store(context.Background(), "https://example.com/icon.png", &locimg.FetchResult{Body: []byte("a")})
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("hash naming when the path has no basename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		path, err := s.Store(context.Background(), "https://example.com/", &locimg.FetchResult{
			Body:        []byte("abc"),
			ContentType: "image/png",
		})

		require.NoError(t, err)
		assert.Equal(t, ".png", filepath.Ext(path))
		assert.NotEqual(t, ".png", filepath.Base(path))
	})

	t.Run("hash naming when the basename has no extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		path, err := s.Store(context.Background(), "https://example.com/image/12345", &locimg.FetchResult{
			Body:        []byte("abc"),
			ContentType: "image/jpeg",
		})

		require.NoError(t, err)
		assert.Equal(t, ".jpg", filepath.Ext(path))
	})

	t.Run("hash naming is deterministic for identical bytes", func(t *testing.T) {
		t.Parallel()

		dirA := t.TempDir()
		sA, err := fs.NewAssetStore(dirA)
		require.NoError(t, err)
		dirB := t.TempDir()
		sB, err := fs.NewAssetStore(dirB)
		require.NoError(t, err)

		a, err := sA.Store(context.Background(), "https://example.com/img", &locimg.FetchResult{Body: []byte("same"), ContentType: "image/png"})
		require.NoError(t, err)
		b, err := sB.Store(context.Background(), "https://example.com/img", &locimg.FetchResult{Body: []byte("same"), ContentType: "image/png"})
		require.NoError(t, err)

		assert.Equal(t, filepath.Base(a), filepath.Base(b))
	})

	t.Run("falls back to URL suffix then generic extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		// Unknown content type, no usable basename, no URL extension.
		path, err := s.Store(context.Background(), "https://example.com/x/", &locimg.FetchResult{
			Body:        []byte("abc"),
			ContentType: "application/octet-stream",
		})

		require.NoError(t, err)
		assert.Equal(t, ".bin", filepath.Ext(path))
	})

	t.Run("content type with parameters", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		path, err := s.Store(context.Background(), "https://example.com/x/", &locimg.FetchResult{
			Body:        []byte("abc"),
			ContentType: "image/svg+xml; charset=utf-8",
		})

		require.NoError(t, err)
		assert.Equal(t, ".svg", filepath.Ext(path))
	})

	t.Run("sanitizes hostile basenames", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		path, err := s.Store(context.Background(), "https://example.com/some%20image!.png", &locimg.FetchResult{Body: []byte("x")})

		require.NoError(t, err)
		base := filepath.Base(path)
		assert.Equal(t, "some-image-.png", base)
	})

	t.Run("no partial file survives a failed write", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		// Remove the directory out from under the store to force a failure.
		require.NoError(t, os.RemoveAll(dir))

		_, err = s.Store(context.Background(), "https://example.com/logo.png", &locimg.FetchResult{Body: []byte("x")})

		require.Error(t, err)
		assert.Equal(t, locimg.EINTERNAL, locimg.ErrorCode(err))
		_, statErr := os.Stat(filepath.Join(dir, "logo.png"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("overwrites a file left by an earlier run", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("stale"), 0644))

		s, err := fs.NewAssetStore(dir)
		require.NoError(t, err)

		path, err := s.Store(context.Background(), "https://example.com/logo.png", &locimg.FetchResult{Body: []byte("fresh")})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), data)
	})
}
