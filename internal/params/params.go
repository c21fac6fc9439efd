package params

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/DMarby/bmpfilter/internal/bitmap"
	"github.com/DMarby/bmpfilter/internal/filter"
	"github.com/gorilla/mux"
)

// Errors
var (
	ErrInvalidFilter        = fmt.Errorf("Invalid filter")
	ErrInvalidFileExtension = fmt.Errorf("Invalid file extension")
)

const defaultExtension = ".bmp"

// Params contains all the parameters for a request
type Params struct {
	Filter    filter.Kind
	Extension string
	Format    bitmap.Format
}

// GetParams parses and returns all the path parameters
func GetParams(r *http.Request) (*Params, error) {
	vars := mux.Vars(r)

	kind, err := filter.ParseKind(vars["filter"])
	if err != nil {
		return nil, ErrInvalidFilter
	}

	extension, format, err := getFileExtension(r)
	if err != nil {
		return nil, err
	}

	return &Params{
		Filter:    kind,
		Extension: extension,
		Format:    format,
	}, nil
}

// Filename returns the name of the filtered image
func (p *Params) Filename(imageID string) string {
	return fmt.Sprintf("%s-%s%s", imageID, p.Filter, p.Extension)
}

// Path returns the canonical filter service path for an image
func (p *Params) Path(imageID string) string {
	return "/id/" + imageID + "/" + p.Filter.String() + p.Extension
}

// getFileExtension gets the file extension (if present) from the path params, and validates it
// We normalize having no extension since it's an optional path param
func getFileExtension(r *http.Request) (string, bitmap.Format, error) {
	val := strings.ToLower(mux.Vars(r)["extension"])
	if val == "" {
		val = defaultExtension
	}

	format, err := bitmap.FormatFromExtension(val)
	// WebP sources can be decoded, but never written
	if err != nil || format == bitmap.WebP {
		return "", 0, ErrInvalidFileExtension
	}

	// .jpeg is served as .jpg
	return format.Extension(), format, nil
}
