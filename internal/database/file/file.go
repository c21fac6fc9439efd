package file

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/DMarby/bmpfilter/internal/database"
)

// Provider implements a database backed by a JSON image manifest
type Provider struct {
	path   string
	images []database.Image
	random *rand.Rand
	mu     sync.Mutex
}

// New returns a new Provider instance
func New(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var images []database.Image
	err = json.Unmarshal(data, &images)
	if err != nil {
		return nil, err
	}

	source := rand.NewSource(time.Now().UnixNano())
	random := rand.New(source)

	return &Provider{
		path:   path,
		images: images,
		random: random,
	}, nil
}

// Get returns the image metadata for an image id
func (p *Provider) Get(ctx context.Context, id string) (i *database.Image, err error) {
	for _, image := range p.images {
		if image.ID == id {
			return &image, nil
		}
	}

	return nil, database.ErrNotFound
}

// GetRandom returns a random image
func (p *Provider) GetRandom(ctx context.Context) (i *database.Image, err error) {
	if len(p.images) == 0 {
		return nil, database.ErrEmpty
	}

	p.mu.Lock()
	image := p.images[p.random.Intn(len(p.images))]
	p.mu.Unlock()
	return &image, nil
}

// GetRandomWithSeed returns a random image based on the given seed
func (p *Provider) GetRandomWithSeed(ctx context.Context, seed int64) (i *database.Image, err error) {
	if len(p.images) == 0 {
		return nil, database.ErrEmpty
	}

	random := rand.New(rand.NewSource(seed))
	image := p.images[random.Intn(len(p.images))]
	return &image, nil
}

// ListAll returns a list of all the images
func (p *Provider) ListAll(ctx context.Context) ([]database.Image, error) {
	return p.images, nil
}

// List returns a list of all the images with an offset/limit
func (p *Provider) List(ctx context.Context, offset, limit int) ([]database.Image, error) {
	images := len(p.images)
	offset = min(max(offset, 0), images)
	limit = min(max(limit, 0), images-offset)

	return p.images[offset : offset+limit], nil
}

// Shutdown shuts down the database
func (p *Provider) Shutdown() {}
