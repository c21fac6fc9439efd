package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/DMarby/bmpfilter/internal/storage"
)

// Provider implements a file-based bitmap storage
type Provider struct {
	path string
}

// New returns a new Provider instance
func New(path string) (*Provider, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	return &Provider{
		path,
	}, nil
}

// Get returns the bitmap data for an image id
func (p *Provider) Get(ctx context.Context, id string) ([]byte, error) {
	key, err := storage.Key(id)
	if err != nil {
		return nil, err
	}

	imageData, err := os.ReadFile(filepath.Join(p.path, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}

	return imageData, nil
}
