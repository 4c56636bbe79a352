package snippets

import (
	"github.com/dochub-io/dochub/pkg/apidocs"
)

// Env carries the user-supplied environment values that parameterize
// generated snippets and live requests. Both fields are runtime state
// edited by the end user; they are never persisted server-side.
type Env struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// DefaultEnv returns the placeholder environment shown before the user
// supplies real values.
func DefaultEnv() Env {
	return Env{
		BaseURL: "https://api.dochub.io",
		APIKey:  "YOUR_API_KEY",
	}
}

// Request is the resolved render input for one endpoint and environment
// pair: the full URL, the merged header set in display order, and the
// pretty-printed payload ("" when the request carries no body).
type Request struct {
	Method  string
	URL     string
	Headers []apidocs.Header
	Body    string
}

// HasBody reports whether the rendered request carries a payload.
func (r Request) HasBody() bool {
	return r.Body != ""
}

// RenderFunc renders one target's snippet text from a resolved request.
type RenderFunc func(req Request) string

// Target defines one snippet output target.
type Target struct {
	// Identification
	ID          string `json:"id" yaml:"id"`                     // "curl", "python"
	Name        string `json:"name" yaml:"name"`                 // "cURL", "Python"
	DisplayName string `json:"display_name" yaml:"display_name"` // "Python (requests)"

	// Syntax is the highlighting hint handed to viewers ("bash", "go", ...)
	Syntax string `json:"syntax" yaml:"syntax"`

	// Status
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Documentation
	Description string `json:"description" yaml:"description"`

	Render RenderFunc `json:"-" yaml:"-"`
}

// Validate checks if the target spec is valid
func (t *Target) Validate() error {
	if t.ID == "" {
		return ErrInvalidTargetID
	}
	if t.Name == "" {
		return ErrInvalidTargetName
	}
	if t.Render == nil {
		return ErrMissingRenderer
	}
	return nil
}

// Common target IDs
const (
	TargetCurl       = "curl"
	TargetJavaScript = "javascript"
	TargetPython     = "python"
	TargetPHP        = "php"
	TargetRuby       = "ruby"
	TargetGo         = "go"
)
