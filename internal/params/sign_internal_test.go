package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalQuery(t *testing.T) {
	assert.Equal(t, "", canonicalQuery(url.Values{}))
	assert.Equal(t, "?a=1&b&c=x+y", canonicalQuery(url.Values{
		"c": {"x y"},
		"a": {"1"},
		"b": {""},
	}))
}
