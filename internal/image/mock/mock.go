package mock

import (
	"context"
	"fmt"

	"github.com/DMarby/bmpfilter/internal/image"
)

// Processor implements a mock image processor
type Processor struct {
}

// ProcessImage returns an error for every task
func (p *Processor) ProcessImage(ctx context.Context, task *image.Task) (processedImage []byte, err error) {
	return nil, fmt.Errorf("processing error")
}
