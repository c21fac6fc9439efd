package api

import (
	"errors"
	"net/http"

	"github.com/DMarby/bmpfilter/internal/database"
	"github.com/DMarby/bmpfilter/internal/handler"
	"github.com/DMarby/bmpfilter/internal/params"
	"github.com/gorilla/mux"
	"github.com/twmb/murmur3"
)

func (a *API) imageRedirectHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	// Get the path parameters
	p, err := params.GetParams(r)
	if err != nil {
		return handler.BadRequest(err.Error())
	}

	// Get the image from the database
	vars := mux.Vars(r)
	imageID := vars["id"]
	image, handlerErr := a.getImage(r, imageID)
	if handlerErr != nil {
		return handlerErr
	}

	// Redirect to the filter service
	return a.redirect(w, r, p, image)
}

func (a *API) randomImageRedirectHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	// Get the path parameters
	p, err := params.GetParams(r)
	if err != nil {
		return handler.BadRequest(err.Error())
	}

	// Get a random image
	image, err := a.Database.GetRandom(r.Context())
	if err != nil {
		a.logError(r, "error getting random image from database", err)
		return handler.InternalServerError()
	}

	// Redirect to the filter service
	return a.redirect(w, r, p, image)
}

func (a *API) seedImageRedirectHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	// Get the path parameters
	p, err := params.GetParams(r)
	if err != nil {
		return handler.BadRequest(err.Error())
	}

	// Get the image seed
	vars := mux.Vars(r)
	imageSeed := vars["seed"]

	// Hash the input using murmur3
	murmurHash := murmur3.StringSum64(imageSeed)

	// Get a random image by the hash
	image, err := a.Database.GetRandomWithSeed(r.Context(), int64(murmurHash))
	if err != nil {
		a.logError(r, "error getting random image from database", err)
		return handler.InternalServerError()
	}

	// Redirect to the filter service
	return a.redirect(w, r, p, image)
}

func (a *API) getImage(r *http.Request, imageID string) (*database.Image, *handler.Error) {
	databaseImage, err := a.Database.Get(r.Context(), imageID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, handler.NotFound(err.Error())
		}

		a.logError(r, "error getting image from database", err)
		return nil, handler.InternalServerError()
	}

	return databaseImage, nil
}

func (a *API) redirect(w http.ResponseWriter, r *http.Request, p *params.Params, image *database.Image) *handler.Error {
	path := a.Signer.Sign(p.Path(image.ID))

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header()["Content-Type"] = nil
	http.Redirect(w, r, a.ImageServiceURL+path, http.StatusFound)

	return nil
}
