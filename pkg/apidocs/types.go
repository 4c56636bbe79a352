package apidocs

import (
	"net/http"
	"strings"
)

// Recognized HTTP methods. Free text is accepted everywhere a method is
// stored; these are the values that get special styling and behavior.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
	MethodPatch  = "PATCH"
)

// Fixed headers attached to every generated snippet and live request.
// Endpoint-declared headers are applied after these and win on conflict.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	DefaultContentType = "application/json"
)

// Parameter documents one request parameter of an endpoint.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Example     string `json:"example,omitempty"`
}

// Header documents one extra request header declared by an endpoint.
type Header struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Example pairs a named request body with its expected response body.
// Both values are open-ended JSON shapes.
type Example struct {
	Name     string `json:"name"`
	Request  any    `json:"request"`
	Response any    `json:"response"`
}

// Endpoint is one documented HTTP operation. The wire key for Path is
// "endpoint", matching the stored content format. Path is stored verbatim;
// no slash normalization is performed.
type Endpoint struct {
	Method      string      `json:"method"`
	Path        string      `json:"endpoint"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Headers     []Header    `json:"headers"`
	Response    any         `json:"response"`
	Examples    []Example   `json:"examples"`
}

// Collection is the ordered list of endpoint records backing one
// API-documentation page. It is the entire persisted value of the page's
// content column; order is the documentation display order.
type Collection []Endpoint

// IsRecognizedMethod reports whether method is one of the methods that get
// dedicated styling and behavior.
func IsRecognizedMethod(method string) bool {
	switch method {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return true
	}
	return false
}

// SendsBody reports whether a request for this endpoint may carry a body.
// GET never sends a body regardless of stored state.
func (e Endpoint) SendsBody() bool {
	return e.Method != MethodGet
}

// Normalized returns a copy of the endpoint with nil parameter, header and
// example sequences replaced by empty ones. Parsing leaves absent fields
// nil; consumers rely on the sequences never being null.
func (e Endpoint) Normalized() Endpoint {
	if e.Parameters == nil {
		e.Parameters = []Parameter{}
	}
	if e.Headers == nil {
		e.Headers = []Header{}
	}
	if e.Examples == nil {
		e.Examples = []Example{}
	}
	return e
}

// Normalized returns a copy of the collection with every record normalized.
func (c Collection) Normalized() Collection {
	out := make(Collection, len(c))
	for i, e := range c {
		out[i] = e.Normalized()
	}
	return out
}

// MergedHeaders returns the effective request headers for the endpoint: the
// fixed Authorization and Content-Type defaults with the endpoint's declared
// headers applied on top. Declared headers win on name conflicts
// (case-insensitive); extras keep their declared order after the defaults.
func (e Endpoint) MergedHeaders(apiKey string) []Header {
	merged := []Header{
		{Name: HeaderAuthorization, Value: "Bearer " + apiKey},
		{Name: HeaderContentType, Value: DefaultContentType},
	}
	for _, h := range e.Headers {
		replaced := false
		for i := range merged {
			if strings.EqualFold(merged[i].Name, h.Name) {
				merged[i].Value = h.Value
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, Header{Name: h.Name, Value: h.Value})
		}
	}
	return merged
}

// RequestHeader builds an http.Header from the merged header set.
func (e Endpoint) RequestHeader(apiKey string) http.Header {
	header := make(http.Header)
	for _, h := range e.MergedHeaders(apiKey) {
		header.Set(h.Name, h.Value)
	}
	return header
}
