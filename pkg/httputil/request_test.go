package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	body := strings.NewReader(`{"name": "Acme API"}`)
	r := httptest.NewRequest(http.MethodPost, "/companies", body)

	var dest struct {
		Name string `json:"name"`
	}
	err := ParseJSON(r, &dest)

	require.NoError(t, err)
	assert.Equal(t, "Acme API", dest.Name)
}

func TestParseJSONInvalid(t *testing.T) {
	body := strings.NewReader(`{not json`)
	r := httptest.NewRequest(http.MethodPost, "/companies", body)

	var dest map[string]string
	err := ParseJSON(r, &dest)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestParseJSONOrError(t *testing.T) {
	body := strings.NewReader(`{broken`)
	r := httptest.NewRequest(http.MethodPost, "/companies", body)
	w := httptest.NewRecorder()

	var dest map[string]string
	ok := ParseJSONOrError(w, r, &dest)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParsePathString(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/projects/my-api", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "my-api"})

	val, err := ParsePathString(r, "slug")

	require.NoError(t, err)
	assert.Equal(t, "my-api", val)
}

func TestParsePathStringMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/projects", nil)

	_, err := ParsePathString(r, "slug")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing path parameter")
}

func TestParsePathStringOrError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/projects", nil)
	w := httptest.NewRecorder()

	_, ok := ParsePathStringOrError(w, r, "slug")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseQueryString(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/endpoints?q=users", nil)

	assert.Equal(t, "users", ParseQueryString(r, "q", ""))
	assert.Equal(t, "title", ParseQueryString(r, "sort", "title"))
}

func TestParseQueryBool(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/endpoints?bookmarked=true", nil)

	val, err := ParseQueryBool(r, "bookmarked", false)
	require.NoError(t, err)
	assert.True(t, val)

	val, err = ParseQueryBool(r, "missing", true)
	require.NoError(t, err)
	assert.True(t, val)
}

func TestParseQueryBoolInvalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/endpoints?bookmarked=maybe", nil)

	_, err := ParseQueryBool(r, "bookmarked", false)

	assert.Error(t, err)
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/projects?limit=25", nil)

	val, err := ParseQueryInt(r, "limit", 20)
	require.NoError(t, err)
	assert.Equal(t, 25, val)

	val, err = ParseQueryInt(r, "offset", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, val)

	bad := httptest.NewRequest(http.MethodGet, "/projects?limit=lots", nil)
	_, err = ParseQueryInt(bad, "limit", 20)
	assert.Error(t, err)
}

func TestRequireNonEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	assert.True(t, RequireNonEmpty(w, "value", "name"))

	w = httptest.NewRecorder()
	assert.False(t, RequireNonEmpty(w, "", "name"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
}
