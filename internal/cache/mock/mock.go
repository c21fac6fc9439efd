package mock

import (
	"context"
	"sync"

	"github.com/DMarby/bmpfilter/internal/cache"
)

// Provider is an in-memory cache for tests, failing every call with GetErr and SetErr when they're set
type Provider struct {
	GetErr error
	SetErr error

	mu    sync.Mutex
	items map[string][]byte
	sets  int
}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) ([]byte, error) {
	if p.GetErr != nil {
		return nil, p.GetErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	data, ok := p.items[key]
	if !ok {
		return nil, cache.ErrNotFound
	}

	return data, nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, data []byte) error {
	if p.SetErr != nil {
		return p.SetErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.items == nil {
		p.items = make(map[string][]byte)
	}

	p.items[key] = data
	p.sets++
	return nil
}

// Sets returns how many objects have been stored
func (p *Provider) Sets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sets
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {}
