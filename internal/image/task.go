package image

import (
	"context"

	"github.com/DMarby/bmpfilter/internal/bitmap"
	"github.com/DMarby/bmpfilter/internal/filter"
)

// Processor filters source bitmaps
type Processor interface {
	ProcessImage(ctx context.Context, task *Task) (processedImage []byte, err error)
}

// Task is an image processing task, applying a single filter to a source bitmap
type Task struct {
	ImageID      string
	Filter       filter.Kind
	OutputFormat bitmap.Format
}

// NewTask creates a new image processing task
func NewTask(imageID string, kind filter.Kind, format bitmap.Format) *Task {
	return &Task{
		ImageID:      imageID,
		Filter:       kind,
		OutputFormat: format,
	}
}
