package handler

import (
	"net/http"

	"github.com/DMarby/bmpfilter/internal/tracing"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
)

// Tracer is a handler that starts a span per request, named after the matched route
func Tracer(tracer *tracing.Tracer, h http.Handler, router *mux.Router) http.Handler {
	return otelhttp.NewHandler(
		h,
		"http",
		otelhttp.WithTracerProvider(tracer),
		otelhttp.WithPropagators(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})),
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return RouteName(router, r)
		}),
	)
}
