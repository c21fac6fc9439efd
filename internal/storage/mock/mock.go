package mock

import (
	"context"
	"fmt"
)

// Provider implements a mock bitmap storage that fails every request
type Provider struct {
}

// Get returns an error for every image id
func (p *Provider) Get(ctx context.Context, id string) ([]byte, error) {
	return nil, fmt.Errorf("storage error")
}
