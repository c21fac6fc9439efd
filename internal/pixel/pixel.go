package pixel

import (
	"errors"
	"math"
)

// Pixel is a single picture element with three 8-bit channels
type Pixel struct {
	R uint8
	G uint8
	B uint8
}

// Grid is a height x width rectangle of pixels, stored row-major with the origin at the top-left
type Grid struct {
	height int
	width  int
	pixels []Pixel
}

// Errors
var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrPixelCount        = errors.New("pixel count does not match grid dimensions")
)

// Area returns height*width, or an error if the dimensions are negative or the product overflows an int
func Area(height, width int) (int, error) {
	if height < 0 || width < 0 {
		return 0, ErrInvalidDimensions
	}

	if width != 0 && height > math.MaxInt/width {
		return 0, ErrInvalidDimensions
	}

	return height * width, nil
}

// New creates a new zeroed grid
func New(height, width int) (*Grid, error) {
	area, err := Area(height, width)
	if err != nil {
		return nil, err
	}

	return &Grid{
		height: height,
		width:  width,
		pixels: make([]Pixel, area),
	}, nil
}

// FromPixels creates a grid backed by the given row-major pixels
func FromPixels(height, width int, pixels []Pixel) (*Grid, error) {
	area, err := Area(height, width)
	if err != nil {
		return nil, err
	}

	if len(pixels) != area {
		return nil, ErrPixelCount
	}

	return &Grid{
		height: height,
		width:  width,
		pixels: pixels,
	}, nil
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// At returns the pixel at the given row and column
func (g *Grid) At(row, col int) Pixel {
	return g.pixels[row*g.width+col]
}

// Set sets the pixel at the given row and column
func (g *Grid) Set(row, col int, p Pixel) {
	g.pixels[row*g.width+col] = p
}

// Row returns the pixels of a single row, sharing the grid's storage
func (g *Grid) Row(row int) []Pixel {
	start := row * g.width
	return g.pixels[start : start+g.width : start+g.width]
}

// Pixels returns all pixels in row-major order, sharing the grid's storage
func (g *Grid) Pixels() []Pixel {
	return g.pixels
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	pixels := make([]Pixel, len(g.pixels))
	copy(pixels, g.pixels)

	return &Grid{
		height: g.height,
		width:  g.width,
		pixels: pixels,
	}
}

// SameSize reports whether both grids have the same dimensions
func (g *Grid) SameSize(other *Grid) bool {
	return g.height == other.height && g.width == other.width
}

// Equal reports whether both grids have the same dimensions and pixels
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameSize(other) {
		return false
	}

	for i := range g.pixels {
		if g.pixels[i] != other.pixels[i] {
			return false
		}
	}

	return true
}

// Swap exchanges the pixel storage of two grids with the same dimensions
func (g *Grid) Swap(other *Grid) error {
	if !g.SameSize(other) {
		return ErrInvalidDimensions
	}

	g.pixels, other.pixels = other.pixels, g.pixels
	return nil
}
