package imageapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DMarby/bmpfilter/internal/filter"
	"github.com/DMarby/bmpfilter/internal/handler"
	"github.com/DMarby/bmpfilter/internal/image"
	"github.com/DMarby/bmpfilter/internal/params"
	"github.com/DMarby/bmpfilter/internal/storage"
	"github.com/gorilla/mux"
)

func (a *API) imageHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	// Validate the path and query parameters
	if !a.Signer.Verify(r) {
		return handler.BadRequest("Invalid parameters")
	}

	// Get the path parameters
	p, err := params.GetParams(r)
	if err != nil {
		return handler.BadRequest(err.Error())
	}

	imageID := mux.Vars(r)["id"]

	// Build the image task
	task := image.NewTask(imageID, p.Filter, p.Format)

	// Process the image
	processedImage, err := a.ImageProcessor.ProcessImage(r.Context(), task)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidID):
			return handler.NotFound("Image does not exist")
		case errors.Is(err, filter.ErrAllocation):
			a.logError(r, "image too large to filter", err)
			return &handler.Error{Message: "Image too large", Code: http.StatusUnprocessableEntity}
		}

		a.logError(r, "error processing image", err)
		return handler.InternalServerError()
	}

	// Set the headers
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", p.Filename(imageID)))
	w.Header().Set("Content-Type", p.Format.ContentType())
	w.Header().Set("Cache-Control", "public, max-age=2592000, stale-while-revalidate=60, stale-if-error=43200, immutable") // Cache for a month
	w.Header().Set("Filter-ID", imageID)

	// Return the image
	w.Write(processedImage)

	return nil
}
