package grid_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/DMarby/bmpfilter/internal/bitmap"
	"github.com/DMarby/bmpfilter/internal/cache/memory"
	"github.com/DMarby/bmpfilter/internal/filter"
	"github.com/DMarby/bmpfilter/internal/image"
	"github.com/DMarby/bmpfilter/internal/image/grid"
	"github.com/DMarby/bmpfilter/internal/logger"
	"github.com/DMarby/bmpfilter/internal/pixel"
	"github.com/DMarby/bmpfilter/internal/storage"
	"github.com/DMarby/bmpfilter/internal/storage/file"
	"github.com/DMarby/bmpfilter/internal/tracing/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) *grid.Processor {
	t.Helper()

	log := logger.New(zap.ErrorLevel)
	tracer := test.Tracer(log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	storage, err := file.New("../../../test/fixtures/file")
	require.NoError(t, err)

	memoryCache, err := memory.New(10)
	require.NoError(t, err)

	cache := image.NewCache(tracer, memoryCache, storage)

	return grid.New(ctx, log, tracer, 2, 2, cache)
}

func source(t *testing.T, id string) *pixel.Grid {
	t.Helper()

	data, err := os.ReadFile("../../../test/fixtures/file/" + id + ".bmp")
	require.NoError(t, err)

	g, _, err := bitmap.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	return g
}

func TestProcessor(t *testing.T) {
	processor := setup(t)

	for _, kind := range filter.Kinds {
		expected := source(t, "1")
		require.NoError(t, filter.Apply(expected, kind))

		result, err := processor.ProcessImage(context.Background(), image.NewTask("1", kind, bitmap.BMP))
		require.NoError(t, err, kind.String())

		decoded, format, err := bitmap.Decode(bytes.NewReader(result))
		require.NoError(t, err, kind.String())
		assert.Equal(t, bitmap.BMP, format)
		assert.True(t, expected.Equal(decoded), "%s: wrong pixels", kind)
	}
}

func TestProcessorEdges(t *testing.T) {
	processor := setup(t)

	result, err := processor.ProcessImage(context.Background(), image.NewTask("2", filter.EdgesFilter, bitmap.PNG))
	require.NoError(t, err)

	decoded, format, err := bitmap.Decode(bytes.NewReader(result))
	require.NoError(t, err)
	assert.Equal(t, bitmap.PNG, format)

	// A single white pixel has no gradient at its own position
	assert.Equal(t, pixel.Pixel{}, decoded.At(1, 1))
	assert.Equal(t, pixel.Pixel{R: 255, G: 255, B: 255}, decoded.At(0, 1))
}

func TestProcessorErrors(t *testing.T) {
	processor := setup(t)

	_, err := processor.ProcessImage(context.Background(), image.NewTask("foo", filter.BlurFilter, bitmap.BMP))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = processor.ProcessImage(context.Background(), image.NewTask("1", filter.BlurFilter, bitmap.WebP))
	assert.ErrorIs(t, err, bitmap.ErrUnsupportedFormat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = processor.ProcessImage(ctx, image.NewTask("1", filter.BlurFilter, bitmap.BMP))
	assert.ErrorIs(t, err, context.Canceled)
}
