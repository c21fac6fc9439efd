package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DMarby/bmpfilter/internal/handler"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		Name            string
		Method          string
		Headers         map[string]string
		ExpectedHeaders map[string]string
		ReachesHandler  bool
	}{
		{
			Name:   "sets correct headers for non-option requests",
			Method: "GET",
			Headers: map[string]string{
				"Origin": "http://www.example.com",
			},
			ExpectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":   "*",
				"Access-Control-Expose-Headers": "Link, Filter-Id",
			},
			ReachesHandler: true,
		},
		{
			Name:   "passes through option requests without a request method header",
			Method: "OPTIONS",
			Headers: map[string]string{
				"Origin": "http://www.example.com",
			},
			ReachesHandler: true,
		},
		{
			Name:   "does not allow other methods",
			Method: "OPTIONS",
			Headers: map[string]string{
				"Origin":                        "http://www.example.com",
				"Access-Control-Request-Method": "POST",
			},
			ExpectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "",
				"Access-Control-Allow-Methods": "",
			},
		},
		{
			Name:   "responds correctly to option request",
			Method: "OPTIONS",
			Headers: map[string]string{
				"Origin":                         "http://www.example.com",
				"Access-Control-Request-Method":  "GET",
				"Access-Control-Request-Headers": "foobar",
			},
			ExpectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET",
				"Access-Control-Allow-Headers": "foobar",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			r := httptest.NewRequest(test.Method, "http://www.example.com/", nil)
			for header, value := range test.Headers {
				r.Header.Set(header, value)
			}

			reached := false
			rr := httptest.NewRecorder()
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
			})

			handler.CORS([]string{"Link", "Filter-ID"}, testHandler).ServeHTTP(rr, r)

			assert.Equal(t, test.ReachesHandler, reached, "handler reached")

			for expectedHeader, expectedValue := range test.ExpectedHeaders {
				assert.True(t, strings.EqualFold(expectedValue, rr.Header().Get(expectedHeader)), "%s: %q", expectedHeader, rr.Header().Get(expectedHeader))
			}
		})
	}
}
