package filter_test

import (
	"testing"

	"github.com/DMarby/bmpfilter/internal/filter"
	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		Name     string
		Expected filter.Kind
	}{
		{"grayscale", filter.GrayscaleFilter},
		{"greyscale", filter.GrayscaleFilter},
		{"mirror", filter.MirrorFilter},
		{"reflect", filter.MirrorFilter},
		{"blur", filter.BlurFilter},
		{"edges", filter.EdgesFilter},
		{"edge", filter.EdgesFilter},
	}

	for _, test := range tests {
		k, err := filter.ParseKind(test.Name)
		if assert.NoError(t, err, test.Name) {
			assert.Equal(t, test.Expected, k, test.Name)
		}
	}

	for _, name := range []string{"sepia", "", "g", "r", "b", "e", "B", "Blur", "EDGES"} {
		_, err := filter.ParseKind(name)
		assert.ErrorIs(t, err, filter.ErrUnknownFilter, name)
	}
}

func TestKindString(t *testing.T) {
	for _, k := range filter.Kinds {
		parsed, err := filter.ParseKind(k.String())
		if assert.NoError(t, err) {
			assert.Equal(t, k, parsed)
		}
	}

	assert.Equal(t, "Kind(9)", filter.Kind(9).String())
}
