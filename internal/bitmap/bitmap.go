// Package bitmap converts between encoded images and pixel grids
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/DMarby/bmpfilter/internal/pixel"
	"golang.org/x/image/bmp"

	// Register the webp decoder
	_ "golang.org/x/image/webp"
)

// Format is an image encoding
type Format int

const (
	// BMP represents 24-bit uncompressed bitmaps
	BMP Format = iota
	// PNG represents the PNG format
	PNG
	// JPEG represents the JPEG format
	JPEG
	// WebP represents the WebP format, which can only be decoded
	WebP
)

// JPEGQuality is the quality used when encoding JPEG output
const JPEGQuality = 90

// Errors
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// FormatFromExtension returns the format for a file extension such as ".bmp"
func FormatFromExtension(extension string) (Format, error) {
	switch strings.ToLower(extension) {
	case ".bmp":
		return BMP, nil
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".webp":
		return WebP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}
}

func formatFromName(name string) (Format, error) {
	switch name {
	case "bmp":
		return BMP, nil
	case "png":
		return PNG, nil
	case "jpeg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// Extension returns the canonical file extension of the format
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case WebP:
		return ".webp"
	default:
		return ".bmp"
	}
}

// ContentType returns the media type of the format
func (f Format) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case WebP:
		return "image/webp"
	default:
		return "image/bmp"
	}
}

func (f Format) String() string {
	return strings.TrimPrefix(f.Extension(), ".")
}

// Decode reads an image and converts it to a pixel grid, discarding any alpha channel
func Decode(r io.Reader) (*pixel.Grid, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("error decoding image: %w", err)
	}

	format, err := formatFromName(name)
	if err != nil {
		return nil, 0, err
	}

	bounds := img.Bounds()
	g, err := pixel.New(bounds.Dy(), bounds.Dx())
	if err != nil {
		return nil, 0, err
	}

	for y := 0; y < g.Height(); y++ {
		row := g.Row(y)
		for x := range row {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[x] = pixel.Pixel{R: c.R, G: c.G, B: c.B}
		}
	}

	return g, format, nil
}

// DecodeConfig returns the dimensions and format of an image without decoding the pixel data
func DecodeConfig(r io.Reader) (image.Config, Format, error) {
	config, name, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, 0, fmt.Errorf("error decoding image config: %w", err)
	}

	format, err := formatFromName(name)
	if err != nil {
		return image.Config{}, 0, err
	}

	return config, format, nil
}

// Encode writes the grid in the given format
func Encode(w io.Writer, g *pixel.Grid, format Format) error {
	img := toImage(g)

	switch format {
	case BMP:
		// Opaque RGBA images are written as 24-bit bitmaps
		return bmp.Encode(w, img)
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, format)
	}
}

func toImage(g *pixel.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))

	for y := 0; y < g.Height(); y++ {
		offset := y * img.Stride
		for x, p := range g.Row(y) {
			i := offset + x*4
			img.Pix[i+0] = p.R
			img.Pix[i+1] = p.G
			img.Pix[i+2] = p.B
			img.Pix[i+3] = 0xff
		}
	}

	return img
}
