package storage

import (
	"context"
	"errors"
	"strings"
)

// Extension is the file extension source bitmaps are stored with
const Extension = ".bmp"

// Provider is an interface for retrieving source bitmaps
type Provider interface {
	Get(ctx context.Context, id string) ([]byte, error)
}

// Errors
var (
	ErrNotFound  = errors.New("Image does not exist")
	ErrInvalidID = errors.New("Invalid image id")
)

// Key returns the object key for an image id
func Key(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", ErrInvalidID
	}

	return id + Extension, nil
}
