package imageapi

import (
	"net/http"
	"time"

	"github.com/DMarby/bmpfilter/internal/handler"
	"github.com/DMarby/bmpfilter/internal/health"
	"github.com/DMarby/bmpfilter/internal/image"
	"github.com/DMarby/bmpfilter/internal/logger"
	"github.com/DMarby/bmpfilter/internal/params"
	"github.com/DMarby/bmpfilter/internal/tracing"
	"github.com/gorilla/mux"
)

// API is the http api of the filter service
type API struct {
	ImageProcessor image.Processor
	HealthChecker  *health.Checker
	Log            *logger.Logger
	Tracer         *tracing.Tracer
	HandlerTimeout time.Duration
	Signer         *params.Signer
}

// Utility methods for logging
func (a *API) logError(r *http.Request, message string, err error) {
	a.Log.Errorw(message, handler.LogFields(r, "error", err)...)
}

// Router returns a http router
func (a *API) Router() http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = handler.Handler(a.notFoundHandler)

	// Redirect trailing slashes
	router.StrictSlash(true)

	// Healthcheck
	if a.HealthChecker != nil {
		router.Handle("/health", handler.Health(a.HealthChecker)).Methods("GET").Name("health")
	}

	// Filtered image by ID, the extension selects the output format and defaults to .bmp
	// Query parameters:
	// ?hmac - signature of the path and query parameters, issued by the front api
	router.Handle("/id/{id}/{filter:[a-zA-Z]+}{extension:(?:\\..*)?}", handler.Handler(a.imageHandler)).Methods("GET").Name("image")

	return handler.Middleware(handler.Middlewares{
		Log:            a.Log,
		Tracer:         a.Tracer,
		Timeout:        a.HandlerTimeout,
		ExposedHeaders: []string{"Filter-ID"},
	}, router)
}

// Handle not found errors
var notFoundError = handler.NotFound("page not found")

func (a *API) notFoundHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	return notFoundError
}
