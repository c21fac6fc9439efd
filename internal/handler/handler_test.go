package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DMarby/bmpfilter/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		Name                string
		AcceptHeader        string
		ExpectedContentType string
		ExpectedStatus      int
		ExpectedResponse    []byte
		Handler             handler.Handler
	}{
		{"internal server error", "text/html", "text/plain; charset=utf-8", http.StatusInternalServerError, []byte("Something went wrong\n"), errorHandler},
		{"internal server error json", "application/json", "application/json", http.StatusInternalServerError, []byte("{\"error\":\"Something went wrong\"}\n"), errorHandler},
		{"bad request", "text/html", "text/plain; charset=utf-8", http.StatusBadRequest, []byte("Bad request test\n"), badRequestHandler},
		{"bad request json", "application/json", "application/json", http.StatusBadRequest, []byte("{\"error\":\"Bad request test\"}\n"), badRequestHandler},
		{"not found", "text/html", "text/plain; charset=utf-8", http.StatusNotFound, []byte("Not found test\n"), notFoundHandler},
		{"success", "text/html", "", http.StatusOK, []byte{}, successHandler},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			ts := httptest.NewServer(handler.Handler(test.Handler))
			defer ts.Close()

			req, err := http.NewRequest("GET", ts.URL, nil)
			require.NoError(t, err)
			req.Header.Set("Accept", test.AcceptHeader)

			res, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			require.Equal(t, test.ExpectedStatus, res.StatusCode)

			if res.StatusCode != http.StatusOK {
				assert.Equal(t, "private, no-cache, no-store, must-revalidate", res.Header.Get("Cache-Control"))
			}

			assert.Equal(t, test.ExpectedContentType, res.Header.Get("Content-Type"))

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			assert.Equal(t, string(test.ExpectedResponse), string(body))
		})
	}
}

func errorHandler(rw http.ResponseWriter, req *http.Request) *handler.Error {
	return handler.InternalServerError()
}

func badRequestHandler(rw http.ResponseWriter, req *http.Request) *handler.Error {
	return handler.BadRequest("Bad request test")
}

func notFoundHandler(rw http.ResponseWriter, req *http.Request) *handler.Error {
	return handler.NotFound("Not found test")
}

func successHandler(rw http.ResponseWriter, req *http.Request) *handler.Error {
	return nil
}
