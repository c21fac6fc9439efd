// Package grid processes images by decoding them into pixel grids and running the in-memory filters on them
package grid

import (
	"bytes"
	"context"
	"fmt"

	"github.com/DMarby/bmpfilter/internal/bitmap"
	"github.com/DMarby/bmpfilter/internal/filter"
	"github.com/DMarby/bmpfilter/internal/image"
	"github.com/DMarby/bmpfilter/internal/logger"
	"github.com/DMarby/bmpfilter/internal/queue"
	"github.com/DMarby/bmpfilter/internal/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
)

// Processor is an image processor that filters pixel grids on a worker queue
type Processor struct {
	queue  *queue.Queue
	tracer *tracing.Tracer
}

var (
	queueSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "image_processor_queue_size",
		Help: "Number of images waiting for or being processed.",
	})

	processedImages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "image_processor_processed_images_total",
		Help: "Number of processed images by filter.",
	}, []string{"filter"})
)

// New initializes a new processor instance
// Each worker runs a filter with filterWorkers goroutines of its own
func New(ctx context.Context, log *logger.Logger, tracer *tracing.Tracer, workers int, filterWorkers int, cache *image.Cache) *Processor {
	filterer := filter.New(filter.Options{Workers: filterWorkers})

	workerQueue := queue.New(ctx, workers, taskProcessor(tracer, filterer, cache))
	instance := &Processor{
		queue:  workerQueue,
		tracer: tracer,
	}

	go workerQueue.Run()
	log.Infof("starting filter worker queue with %d workers", workers)

	return instance
}

// ProcessImage loads a source bitmap, applies the task's filter, and returns the encoded result
func (p *Processor) ProcessImage(ctx context.Context, task *image.Task) (processedImage []byte, err error) {
	ctx, span := p.tracer.Start(ctx, "image.grid.ProcessImage")
	defer span.End()

	span.SetAttributes(
		attribute.String("image.id", task.ImageID),
		attribute.String("image.filter", task.Filter.String()),
		attribute.String("image.format", task.OutputFormat.String()),
	)

	queueSize.Inc()
	defer queueSize.Dec()

	result, err := p.queue.Process(ctx, task)
	if err != nil {
		return nil, err
	}

	image, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("error getting result")
	}

	processedImages.WithLabelValues(task.Filter.String()).Inc()

	return image, nil
}

func taskProcessor(tracer *tracing.Tracer, filterer *filter.Filterer, cache *image.Cache) queue.HandlerFunc {
	return func(ctx context.Context, data interface{}) (interface{}, error) {
		task, ok := data.(*image.Task)
		if !ok {
			return nil, fmt.Errorf("invalid data")
		}

		imageBuffer, err := cache.Get(ctx, task.ImageID)
		if err != nil {
			return nil, fmt.Errorf("error getting image from cache: %w", err)
		}

		_, span := tracer.Start(ctx, "image.grid.filter")
		defer span.End()

		grid, _, err := bitmap.Decode(bytes.NewReader(imageBuffer))
		if err != nil {
			return nil, err
		}

		if err := filterer.Apply(grid, task.Filter); err != nil {
			return nil, err
		}

		var buffer bytes.Buffer
		if err := bitmap.Encode(&buffer, grid, task.OutputFormat); err != nil {
			return nil, err
		}

		return buffer.Bytes(), nil
	}
}
