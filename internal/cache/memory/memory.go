package memory

import (
	"context"

	"github.com/DMarby/bmpfilter/internal/cache"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Provider implements an in-memory cache of source bitmaps, evicting the least recently used once full
type Provider struct {
	items *lru.Cache[string, []byte]
}

// New returns a new Provider instance holding at most maxItems bitmaps
func New(maxItems int) (*Provider, error) {
	items, err := lru.New[string, []byte](maxItems)
	if err != nil {
		return nil, err
	}

	return &Provider{
		items: items,
	}, nil
}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (data []byte, err error) {
	data, ok := p.items.Get(key)
	if !ok {
		return nil, cache.ErrNotFound
	}

	return data, nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, data []byte) (err error) {
	p.items.Add(key, data)
	return nil
}

// Len returns the number of cached objects
func (p *Provider) Len() int {
	return p.items.Len()
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {
	p.items.Purge()
}
