package file_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/DMarby/bmpfilter/internal/bitmap"
	"github.com/DMarby/bmpfilter/internal/pixel"
	"github.com/DMarby/bmpfilter/internal/storage"
	"github.com/DMarby/bmpfilter/internal/storage/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testing"
)

func writeFixture(t *testing.T, dir string) []byte {
	t.Helper()

	g, err := pixel.New(2, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bitmap.Encode(&buf, g, bitmap.BMP))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.bmp"), buf.Bytes(), 0644))

	return buf.Bytes()
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	fixture := writeFixture(t, dir)

	provider, err := file.New(dir)
	require.NoError(t, err)

	t.Run("Get an image by id", func(t *testing.T) {
		buf, err := provider.Get(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, fixture, buf)
	})

	t.Run("Returns error on a nonexistant path", func(t *testing.T) {
		_, err := file.New(filepath.Join(dir, "nonexistant"))
		assert.Error(t, err)
	})

	t.Run("Returns error on a nonexistant image", func(t *testing.T) {
		_, err := provider.Get(context.Background(), "nonexistant")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Rejects ids outside of the storage path", func(t *testing.T) {
		for _, id := range []string{"../1", "..", "a/b", ""} {
			_, err := provider.Get(context.Background(), id)
			assert.ErrorIs(t, err, storage.ErrInvalidID, id)
		}
	})
}
