package handler

import (
	"net/http"
	"time"

	"github.com/DMarby/bmpfilter/internal/logger"
	"github.com/DMarby/bmpfilter/internal/tracing"
	"github.com/gorilla/mux"
)

// Middlewares configures the handler chain built by Middleware
type Middlewares struct {
	Log            *logger.Logger
	Tracer         *tracing.Tracer
	Timeout        time.Duration
	ExposedHeaders []string
}

// Middleware wraps a router with the handlers shared by the services, from the outermost in:
// panic recovery, tracing, request logging, metrics, CORS headers and the handler execution timeout
func Middleware(m Middlewares, router *mux.Router) http.Handler {
	var h http.Handler = router
	if m.Timeout > 0 {
		h = http.TimeoutHandler(h, m.Timeout, "Something went wrong. Timed out.")
	}

	h = CORS(m.ExposedHeaders, h)
	h = Metrics(h, router)
	h = Logger(m.Log, h)

	if m.Tracer != nil {
		h = Tracer(m.Tracer, h, router)
	}

	return Recovery(m.Log, h)
}

// RouteName labels a request for metrics and span names: the name of the matched route, its path template, or "unknown"
func RouteName(router *mux.Router, r *http.Request) string {
	var match mux.RouteMatch
	// The route is nil on a match that falls through to the NotFoundHandler
	if !router.Match(r, &match) || match.Route == nil {
		return "unknown"
	}

	if name := match.Route.GetName(); name != "" {
		return name
	}

	if tmpl, err := match.Route.GetPathTemplate(); err == nil {
		return tmpl
	}

	return "unknown"
}
