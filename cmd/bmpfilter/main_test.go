package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/DMarby/bmpfilter/internal/bitmap"
	"github.com/DMarby/bmpfilter/internal/filter"
	"github.com/DMarby/bmpfilter/internal/logger"
	"github.com/DMarby/bmpfilter/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixture = "../../test/fixtures/file/1.bmp"

func TestSelectFilter(t *testing.T) {
	kind, err := selectFilter(false, true, false, false)
	require.NoError(t, err)
	assert.Equal(t, filter.MirrorFilter, kind)

	kind, err = selectFilter(false, false, false, true)
	require.NoError(t, err)
	assert.Equal(t, filter.EdgesFilter, kind)

	_, err = selectFilter(false, false, false, false)
	assert.ErrorIs(t, err, errFilterFlags)

	_, err = selectFilter(true, false, true, false)
	assert.ErrorIs(t, err, errFilterFlags)
}

func TestRun(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	dir := t.TempDir()
	filterer := filter.New(filter.Options{Workers: 2})

	for _, kind := range filter.Kinds {
		outfile := filepath.Join(dir, kind.String()+".bmp")
		require.Equal(t, exitOK, run(log, filterer, kind, fixture, outfile), kind.String())

		expected := decodeFile(t, fixture)
		require.NoError(t, filter.Apply(expected, kind))

		assert.True(t, expected.Equal(decodeFile(t, outfile)), "%s: wrong pixels", kind)
	}
}

func TestRunOutputFormat(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	outfile := filepath.Join(t.TempDir(), "out.png")
	require.Equal(t, exitOK, run(log, filter.New(filter.Options{}), filter.MirrorFilter, fixture, outfile))

	data, err := os.ReadFile(outfile)
	require.NoError(t, err)

	_, format, err := bitmap.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, bitmap.PNG, format)
}

func TestRunErrors(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	dir := t.TempDir()
	filterer := filter.New(filter.Options{})

	garbage := filepath.Join(dir, "garbage.bmp")
	require.NoError(t, os.WriteFile(garbage, []byte("not a bitmap"), 0644))

	failing := filter.New(filter.Options{
		Allocator: func(height, width int) (*pixel.Grid, error) {
			return nil, filter.ErrAllocation
		},
	})

	tests := []struct {
		Name     string
		Filterer *filter.Filterer
		Infile   string
		Outfile  string
		Expected int
	}{
		{"missing input", filterer, filepath.Join(dir, "missing.bmp"), filepath.Join(dir, "out.bmp"), exitRead},
		{"undecodable input", filterer, garbage, filepath.Join(dir, "out.bmp"), exitRead},
		{"unsupported output", filterer, fixture, filepath.Join(dir, "out.gif"), exitWrite},
		{"webp output", filterer, fixture, filepath.Join(dir, "out.webp"), exitWrite},
		{"unwritable output", filterer, fixture, filepath.Join(dir, "missing", "out.bmp"), exitWrite},
		{"filter failure", failing, fixture, filepath.Join(dir, "out.bmp"), exitFilter},
	}

	for _, test := range tests {
		assert.Equal(t, test.Expected, run(log, test.Filterer, filter.BlurFilter, test.Infile, test.Outfile), test.Name)
	}

	_, err := os.Stat(filepath.Join(dir, "out.bmp"))
	assert.True(t, os.IsNotExist(err), "no output is written on failure")
}

func decodeFile(t *testing.T, path string) *pixel.Grid {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	g, _, err := bitmap.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	return g
}
