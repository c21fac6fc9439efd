package api

import (
	"net/http"
	"time"

	"github.com/DMarby/bmpfilter/internal/database"
	"github.com/DMarby/bmpfilter/internal/handler"
	"github.com/DMarby/bmpfilter/internal/health"
	"github.com/DMarby/bmpfilter/internal/logger"
	"github.com/DMarby/bmpfilter/internal/params"
	"github.com/DMarby/bmpfilter/internal/tracing"
	"github.com/gorilla/mux"
)

// API is the public http api, redirecting filter requests to the filter service
type API struct {
	Database        database.Provider
	HealthChecker   *health.Checker
	Log             *logger.Logger
	Tracer          *tracing.Tracer
	RootURL         string
	ImageServiceURL string
	HandlerTimeout  time.Duration
	Signer          *params.Signer
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

	// Image list
	router.Handle("/v2/list", handler.Handler(a.listHandler)).Methods("GET").Name("list")

	// Query parameters:
	// ?page={page} - What page to display
	// ?limit={limit} - How many entries to display per page

	// Image info routes
	router.Handle("/id/{id}/info", handler.Handler(a.infoHandler)).Methods("GET").Name("info")

	// Image by ID routes
	router.Handle("/id/{id}/{filter:[a-zA-Z]+}{extension:(?:\\..*)?}", handler.Handler(a.imageRedirectHandler)).Methods("GET").Name("image")

	// Image by seed routes
	router.Handle("/seed/{seed}/{filter:[a-zA-Z]+}{extension:(?:\\..*)?}", handler.Handler(a.seedImageRedirectHandler)).Methods("GET").Name("seed")

	// Random image routes
	router.Handle("/{filter:[a-zA-Z]+}{extension:(?:\\..*)?}", handler.Handler(a.randomImageRedirectHandler)).Methods("GET").Name("random")

	return handler.Middleware(handler.Middlewares{
		Log:            a.Log,
		Tracer:         a.Tracer,
		Timeout:        a.HandlerTimeout,
		ExposedHeaders: []string{"Link"},
	}, router)
}

// Handle not found errors
var notFoundError = handler.NotFound("page not found")

func (a *API) notFoundHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	return notFoundError
}
