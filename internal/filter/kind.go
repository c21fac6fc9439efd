package filter

import (
	"fmt"
)

// Kind is one of the available filters
type Kind int

const (
	// GrayscaleFilter averages the channels of every pixel
	GrayscaleFilter Kind = iota
	// MirrorFilter reflects the image horizontally
	MirrorFilter
	// BlurFilter applies a 3x3 box blur
	BlurFilter
	// EdgesFilter computes the Sobel gradient magnitude
	EdgesFilter
)

// Kinds lists every filter
var Kinds = []Kind{GrayscaleFilter, MirrorFilter, BlurFilter, EdgesFilter}

var kindNames = map[Kind]string{
	GrayscaleFilter: "grayscale",
	MirrorFilter:    "mirror",
	BlurFilter:      "blur",
	EdgesFilter:     "edges",
}

var kindAliases = map[string]Kind{
	"grayscale": GrayscaleFilter,
	"greyscale": GrayscaleFilter,
	"mirror":    MirrorFilter,
	"reflect":   MirrorFilter,
	"blur":      BlurFilter,
	"edges":     EdgesFilter,
	"edge":      EdgesFilter,
}

// ParseKind returns the filter for a lowercase name or one of its aliases
func ParseKind(name string) (Kind, error) {
	k, ok := kindAliases[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}

	return k, nil
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}
