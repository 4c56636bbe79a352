package snippets

import (
	"github.com/dochub-io/dochub/pkg/apidocs"
)

// SampleParams maps each parameter name to its example value when one is
// declared, else to a synthesized placeholder derived from the name alone.
// The placeholder is a pure function of the parameter name, so regenerating
// with the same input always yields the same value.
func SampleParams(e apidocs.Endpoint) map[string]string {
	if len(e.Parameters) == 0 {
		return nil
	}
	params := make(map[string]string, len(e.Parameters))
	for _, p := range e.Parameters {
		if p.Example != "" {
			params[p.Name] = p.Example
		} else {
			params[p.Name] = "sample_" + p.Name
		}
	}
	return params
}

// BuildRequest resolves an endpoint and environment into the render input
// shared by every target: URL interpolation, merged headers (declared
// headers win over the fixed defaults), and the payload. A body is attached
// only when the method can send one and the endpoint declares parameters;
// GET never carries a body regardless of stored state.
func BuildRequest(e apidocs.Endpoint, env Env) (Request, error) {
	req := Request{
		Method:  e.Method,
		URL:     env.BaseURL + e.Path,
		Headers: e.MergedHeaders(env.APIKey),
	}

	params := SampleParams(e)
	if e.SendsBody() && len(params) > 0 {
		body, err := apidocs.PrettyValue(params)
		if err != nil {
			return Request{}, err
		}
		req.Body = body
	}
	return req, nil
}

// Generate renders snippets for every enabled target in the default
// registry, keyed by target ID.
func Generate(e apidocs.Endpoint, env Env) (map[string]string, error) {
	return DefaultRegistry().Generate(e, env)
}

// Generate renders snippets for every enabled target in this registry.
func (r *Registry) Generate(e apidocs.Endpoint, env Env) (map[string]string, error) {
	req, err := BuildRequest(e, env)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for _, t := range r.ListEnabled() {
		out[t.ID] = t.Render(req)
	}
	return out, nil
}
