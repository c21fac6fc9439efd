package params

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// signatureParam is the query parameter carrying the signature of a filter url
const signatureParam = "hmac"

// Signer signs filter service urls with HMAC-SHA256, so that the filter service only serves urls issued by the front api
type Signer struct {
	Key []byte
}

// Sign returns the path with its signature appended as a query parameter
func (s *Signer) Sign(path string) string {
	return path + "?" + signatureParam + "=" + s.mac(path)
}

// Verify reports whether the request carries a valid signature of its path and remaining query parameters
func (s *Signer) Verify(r *http.Request) bool {
	query := r.URL.Query()
	signature := query.Get(signatureParam)
	query.Del(signatureParam)

	expected := s.mac(r.URL.Path + canonicalQuery(query))
	return hmac.Equal([]byte(signature), []byte(expected))
}

func (s *Signer) mac(message string) string {
	mac := hmac.New(sha256.New, s.Key)
	// Writes to a hash never fail
	mac.Write([]byte(message))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// canonicalQuery encodes the query with sorted keys, writing parameters without a value as "key" rather than "key="
func canonicalQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}

	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	params := make([]string, 0, len(keys))
	for _, key := range keys {
		param := url.QueryEscape(key)
		if value := query.Get(key); value != "" {
			param += "=" + url.QueryEscape(value)
		}

		params = append(params, param)
	}

	return "?" + strings.Join(params, "&")
}
