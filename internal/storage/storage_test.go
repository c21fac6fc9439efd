package storage_test

import (
	"testing"

	"github.com/DMarby/bmpfilter/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	key, err := storage.Key("1")
	if assert.NoError(t, err) {
		assert.Equal(t, "1.bmp", key)
	}

	for _, id := range []string{"", ".", "..", "../1", "a/b", `a\b`} {
		_, err := storage.Key(id)
		assert.ErrorIs(t, err, storage.ErrInvalidID, id)
	}
}
