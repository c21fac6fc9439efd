// Package filter implements the bitmap filters: grayscale, mirror, box blur and edge detection.
//
// Grayscale and Mirror work in place. Blur and Edges compute every output pixel from the
// untouched source into a scratch grid, and only swap the scratch grid in once the whole pass
// has completed.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/DMarby/bmpfilter/internal/pixel"
	"golang.org/x/sync/errgroup"
)

// MaxPixels is the largest scratch grid the default allocator hands out
const MaxPixels = 1 << 28

// Errors
var (
	ErrAllocation    = errors.New("unable to allocate scratch grid")
	ErrUnknownFilter = errors.New("unknown filter")
)

// Allocator allocates a scratch grid for the two-pass filters
type Allocator func(height, width int) (*pixel.Grid, error)

// DefaultAllocator allocates a zeroed grid, refusing sizes above MaxPixels
func DefaultAllocator(height, width int) (*pixel.Grid, error) {
	area, err := pixel.Area(height, width)
	if err != nil || area > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrAllocation, width, height)
	}

	return pixel.New(height, width)
}

// Options configures a Filterer
type Options struct {
	// Workers is the number of goroutines rows are split across, values below 2 run serially
	Workers int
	// Allocator is used for scratch grids, DefaultAllocator if nil
	Allocator Allocator
}

// Filterer applies filters to pixel grids
type Filterer struct {
	workers   int
	allocator Allocator
}

// New creates a new Filterer
func New(opts Options) *Filterer {
	allocator := opts.Allocator
	if allocator == nil {
		allocator = DefaultAllocator
	}

	return &Filterer{
		workers:   opts.Workers,
		allocator: allocator,
	}
}

var serial = New(Options{})

// Grayscale converts the grid to grayscale in place
func Grayscale(g *pixel.Grid) {
	serial.Grayscale(g)
}

// Mirror reflects every row of the grid horizontally in place
func Mirror(g *pixel.Grid) {
	serial.Mirror(g)
}

// Blur applies a 3x3 box blur to the grid
func Blur(g *pixel.Grid) error {
	return serial.Blur(g)
}

// Edges replaces the grid with its Sobel gradient magnitude
func Edges(g *pixel.Grid) error {
	return serial.Edges(g)
}

// Apply runs a single filter on the grid
func Apply(g *pixel.Grid, k Kind) error {
	return serial.Apply(g, k)
}

// Apply runs a single filter on the grid
func (f *Filterer) Apply(g *pixel.Grid, k Kind) error {
	switch k {
	case GrayscaleFilter:
		f.Grayscale(g)
	case MirrorFilter:
		f.Mirror(g)
	case BlurFilter:
		return f.Blur(g)
	case EdgesFilter:
		return f.Edges(g)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFilter, k)
	}

	return nil
}

// Grayscale sets every channel of each pixel to the rounded mean of its original channels
func (f *Filterer) Grayscale(g *pixel.Grid) {
	f.rows(g.Height(), func(start, end int) {
		for i := start; i < end; i++ {
			row := g.Row(i)
			for j, p := range row {
				n := average(int(p.R)+int(p.G)+int(p.B), 3)
				row[j] = pixel.Pixel{R: n, G: n, B: n}
			}
		}
	})
}

// Mirror swaps column j with column width-1-j for the left half of every row
func (f *Filterer) Mirror(g *pixel.Grid) {
	width := g.Width()

	f.rows(g.Height(), func(start, end int) {
		for i := start; i < end; i++ {
			row := g.Row(i)
			for j := 0; j < width/2; j++ {
				row[j], row[width-1-j] = row[width-1-j], row[j]
			}
		}
	})
}

// Blur sets each channel to the rounded mean over the 3x3 neighbourhood clipped to the grid,
// so corners average 4 pixels, edges 6 and the interior 9
func (f *Filterer) Blur(g *pixel.Grid) error {
	return f.twoPass(g, blurPixel)
}

// Edges sets each channel to the rounded Sobel gradient magnitude, saturated at 255.
// Neighbours outside the grid count as zero.
func (f *Filterer) Edges(g *pixel.Grid) error {
	return f.twoPass(g, edgePixel)
}

// twoPass computes every pixel from the source into a scratch grid, then swaps it in
func (f *Filterer) twoPass(g *pixel.Grid, compute func(g *pixel.Grid, row, col int) pixel.Pixel) error {
	scratch, err := f.allocator(g.Height(), g.Width())
	if err != nil {
		return err
	}

	if !scratch.SameSize(g) {
		return fmt.Errorf("%w: scratch grid is %dx%d, expected %dx%d", ErrAllocation, scratch.Width(), scratch.Height(), g.Width(), g.Height())
	}

	width := g.Width()
	f.rows(g.Height(), func(start, end int) {
		for i := start; i < end; i++ {
			out := scratch.Row(i)
			for j := 0; j < width; j++ {
				out[j] = compute(g, i, j)
			}
		}
	})

	return g.Swap(scratch)
}

// rows calls fn over [0, height), split into contiguous row ranges when running with multiple workers
func (f *Filterer) rows(height int, fn func(start, end int)) {
	if f.workers < 2 || height < 2 {
		fn(0, height)
		return
	}

	chunk := (height + f.workers - 1) / f.workers

	var group errgroup.Group
	group.SetLimit(f.workers)
	for start := 0; start < height; start += chunk {
		start, end := start, min(start+chunk, height)
		group.Go(func() error {
			fn(start, end)
			return nil
		})
	}

	// The row functions never fail
	_ = group.Wait()
}

func blurPixel(g *pixel.Grid, row, col int) pixel.Pixel {
	var r, gr, b, n int

	for i := max(0, row-1); i <= min(g.Height()-1, row+1); i++ {
		line := g.Row(i)
		for j := max(0, col-1); j <= min(g.Width()-1, col+1); j++ {
			p := line[j]
			r += int(p.R)
			gr += int(p.G)
			b += int(p.B)
			n++
		}
	}

	return pixel.Pixel{
		R: average(r, n),
		G: average(gr, n),
		B: average(b, n),
	}
}

// Sobel kernels, indexed [row offset + 1][column offset + 1]
var (
	kernelX = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	kernelY = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

func edgePixel(g *pixel.Grid, row, col int) pixel.Pixel {
	var xr, xg, xb, yr, yg, yb int

	for i := max(0, row-1); i <= min(g.Height()-1, row+1); i++ {
		line := g.Row(i)
		for j := max(0, col-1); j <= min(g.Width()-1, col+1); j++ {
			p := line[j]
			wx := kernelX[i-row+1][j-col+1]
			wy := kernelY[i-row+1][j-col+1]

			xr += wx * int(p.R)
			xg += wx * int(p.G)
			xb += wx * int(p.B)

			yr += wy * int(p.R)
			yg += wy * int(p.G)
			yb += wy * int(p.B)
		}
	}

	return pixel.Pixel{
		R: magnitude(xr, yr),
		G: magnitude(xg, yg),
		B: magnitude(xb, yb),
	}
}

// average rounds sum/n half away from zero
func average(sum, n int) uint8 {
	return uint8(math.Round(float64(sum) / float64(n)))
}

// magnitude returns round(sqrt(gx²+gy²)) clamped to 255
func magnitude(gx, gy int) uint8 {
	m := math.Round(math.Sqrt(float64(gx*gx + gy*gy)))
	if m > math.MaxUint8 {
		return math.MaxUint8
	}

	return uint8(m)
}
