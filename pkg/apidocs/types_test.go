package apidocs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRecognizedMethod(t *testing.T) {
	for _, m := range []string{"GET", "POST", "PUT", "DELETE", "PATCH"} {
		assert.True(t, IsRecognizedMethod(m))
	}
	assert.False(t, IsRecognizedMethod("get"))
	assert.False(t, IsRecognizedMethod("OPTIONS"))
	assert.False(t, IsRecognizedMethod(""))
}

func TestSendsBody(t *testing.T) {
	assert.False(t, Endpoint{Method: MethodGet}.SendsBody())
	assert.True(t, Endpoint{Method: MethodPost}.SendsBody())
	assert.True(t, Endpoint{Method: MethodDelete}.SendsBody())
}

func TestMergedHeadersDefaults(t *testing.T) {
	e := Endpoint{Method: "GET", Path: "/x"}
	merged := e.MergedHeaders("secret")

	require.Len(t, merged, 2)
	assert.Equal(t, Header{Name: "Authorization", Value: "Bearer secret"}, merged[0])
	assert.Equal(t, Header{Name: "Content-Type", Value: "application/json"}, merged[1])
}

func TestMergedHeadersDeclaredWins(t *testing.T) {
	// An endpoint-declared header overrides the fixed default of the same
	// name; extras follow in declared order.
	e := Endpoint{
		Method: "POST",
		Path:   "/upload",
		Headers: []Header{
			{Name: "Content-Type", Value: "text/plain"},
			{Name: "X-Request-Source", Value: "docs"},
		},
	}
	merged := e.MergedHeaders("k")

	require.Len(t, merged, 3)
	assert.Equal(t, "Bearer k", merged[0].Value)
	assert.Equal(t, "text/plain", merged[1].Value)
	assert.Equal(t, Header{Name: "X-Request-Source", Value: "docs"}, merged[2])
}

func TestRequestHeader(t *testing.T) {
	e := Endpoint{
		Method:  "POST",
		Headers: []Header{{Name: "content-type", Value: "text/plain"}},
	}
	h := e.RequestHeader("tok")

	assert.Equal(t, "Bearer tok", h.Get("Authorization"))
	assert.Equal(t, "text/plain", h.Get("Content-Type"))
}

func TestNormalizedPreservesOrder(t *testing.T) {
	c := Collection{{
		Path: "/a",
		Parameters: []Parameter{
			{Name: "z"}, {Name: "a"}, {Name: "m"},
		},
	}}
	n := c.Normalized()

	// Declaration order is the documentation display order; normalization
	// never reorders.
	assert.Equal(t, "z", n[0].Parameters[0].Name)
	assert.Equal(t, "a", n[0].Parameters[1].Name)
	assert.Equal(t, "m", n[0].Parameters[2].Name)
}
