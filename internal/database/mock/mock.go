package mock

import (
	"context"
	"fmt"

	"github.com/DMarby/bmpfilter/internal/database"
)

// Provider implements a mock database that fails every request
type Provider struct {
}

// Get returns an error
func (p *Provider) Get(ctx context.Context, id string) (i *database.Image, err error) {
	return nil, fmt.Errorf("get error")
}

// GetRandom returns an error
func (p *Provider) GetRandom(ctx context.Context) (i *database.Image, err error) {
	return nil, fmt.Errorf("random error")
}

// GetRandomWithSeed returns an error
func (p *Provider) GetRandomWithSeed(ctx context.Context, seed int64) (i *database.Image, err error) {
	return nil, fmt.Errorf("random error")
}

// ListAll returns an error
func (p *Provider) ListAll(ctx context.Context) ([]database.Image, error) {
	return nil, fmt.Errorf("list error")
}

// List returns an error
func (p *Provider) List(ctx context.Context, offset, limit int) ([]database.Image, error) {
	return nil, fmt.Errorf("list error")
}

// Shutdown shuts down the database
func (p *Provider) Shutdown() {}
