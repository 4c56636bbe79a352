package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dochub-io/dochub/pkg/apidocs"
	"github.com/dochub-io/dochub/pkg/httputil"
	"github.com/dochub-io/dochub/pkg/observability"
	"github.com/dochub-io/dochub/pkg/projects"
	"github.com/dochub-io/dochub/pkg/snippets"
	"github.com/dochub-io/dochub/pkg/storage"
	"github.com/dochub-io/dochub/pkg/tryit"
)

// DocsHandlers handles endpoint collections, snippet generation, and the
// Try-It proxy
type DocsHandlers struct {
	projects    ProjectService
	registry    *snippets.Registry
	pageCache   *storage.RedisCache
	collections *storage.CollectionCache
	metrics     *observability.Metrics
	client      *http.Client
}

// NewDocsHandlers creates a new DocsHandlers
func NewDocsHandlers(svc ProjectService, registry *snippets.Registry, pageCache *storage.RedisCache, collections *storage.CollectionCache, metrics *observability.Metrics, client *http.Client) *DocsHandlers {
	if registry == nil {
		registry = snippets.DefaultRegistry()
	}
	return &DocsHandlers{
		projects:    svc,
		registry:    registry,
		pageCache:   pageCache,
		collections: collections,
		metrics:     metrics,
		client:      client,
	}
}

// RegisterRoutes registers docs routes
func (h *DocsHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/projects/{project_id}/pages/{page_slug}/endpoints", h.GetEndpoints).Methods("GET")
	router.HandleFunc("/projects/{project_id}/pages/{page_slug}/endpoints", h.SaveEndpoints).Methods("PUT")

	router.HandleFunc("/snippets/targets", h.ListSnippetTargets).Methods("GET")
	router.HandleFunc("/snippets", h.GenerateSnippets).Methods("POST")

	router.HandleFunc("/tryit", h.TryIt).Methods("POST")
}

// apiDocsPage loads a page and verifies its project uses the api-docs
// template.
func (h *DocsHandlers) apiDocsPage(w http.ResponseWriter, r *http.Request) (*projects.Page, bool) {
	vars := mux.Vars(r)
	projectID, pageSlug := vars["project_id"], vars["page_slug"]

	project, err := h.projects.GetProject(projectID)
	if errors.Is(err, projects.ErrProjectNotFound) {
		httputil.WriteNotFoundError(w, "project not found")
		return nil, false
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return nil, false
	}
	if project.TemplateType != projects.TemplateAPIDocs {
		httputil.WriteConflict(w, fmt.Sprintf("project template is %s, endpoints require api-docs", project.TemplateType))
		return nil, false
	}

	page, err := h.projects.GetPage(projectID, pageSlug)
	if errors.Is(err, projects.ErrPageNotFound) {
		httputil.WriteNotFoundError(w, "page not found")
		return nil, false
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return nil, false
	}

	return page, true
}

// GetEndpoints returns the endpoint collection stored in an api-docs page.
// Malformed stored content comes back as an empty collection.
func (h *DocsHandlers) GetEndpoints(w http.ResponseWriter, r *http.Request) {
	page, ok := h.apiDocsPage(w, r)
	if !ok {
		return
	}

	collection := apidocs.ParseCollection(page.Content)
	httputil.WriteSuccess(w, collection)
}

// SaveEndpoints replaces the endpoint collection stored in an api-docs page
func (h *DocsHandlers) SaveEndpoints(w http.ResponseWriter, r *http.Request) {
	page, ok := h.apiDocsPage(w, r)
	if !ok {
		return
	}

	var collection apidocs.Collection
	if !httputil.ParseJSONOrError(w, r, &collection) {
		return
	}

	collection = collection.Normalized()

	content, err := apidocs.SerializeCollection(collection)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	if err := h.projects.SavePageContent(page.ProjectID, page.Slug, content); err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	if h.pageCache != nil {
		if err := h.pageCache.InvalidatePage(r.Context(), page.ProjectID, page.Slug); err != nil {
			observability.FromContext(r.Context()).WithError(err).Warn("failed to invalidate page cache")
		}
	}
	if h.collections != nil {
		h.collections.Invalidate(page.ProjectID, page.Slug)
	}
	if h.metrics != nil {
		h.metrics.PageSavesTotal.WithLabelValues(string(projects.TemplateAPIDocs)).Inc()
	}

	httputil.WriteSuccess(w, collection)
}

// ListSnippetTargets lists the registered snippet targets
func (h *DocsHandlers) ListSnippetTargets(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, h.registry.List())
}

// snippetRequest is the body of a snippet generation call
type snippetRequest struct {
	Endpoint apidocs.Endpoint `json:"endpoint"`
	BaseURL  string           `json:"base_url,omitempty"`
	APIKey   string           `json:"api_key,omitempty"`
}

// GenerateSnippets renders code snippets for one endpoint in every enabled
// target language
func (h *DocsHandlers) GenerateSnippets(w http.ResponseWriter, r *http.Request) {
	var req snippetRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Endpoint.Path, "endpoint.path") {
		return
	}

	env := snippets.DefaultEnv()
	if req.BaseURL != "" {
		env.BaseURL = req.BaseURL
	}
	if req.APIKey != "" {
		env.APIKey = req.APIKey
	}

	rendered, err := h.registry.Generate(req.Endpoint, env)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	if h.metrics != nil {
		for target := range rendered {
			h.metrics.SnippetsGeneratedTotal.WithLabelValues(target).Inc()
		}
	}

	httputil.WriteSuccess(w, rendered)
}

// tryItRequest is the body of a Try-It proxy call
type tryItRequest struct {
	Endpoint  apidocs.Endpoint `json:"endpoint"`
	BaseURL   string           `json:"base_url,omitempty"`
	APIKey    string           `json:"api_key,omitempty"`
	BodyDraft string           `json:"body_draft,omitempty"`
}

// TryIt executes the documented request server-side and returns the settled
// result. Transport failures settle as status 0 with an error body; they
// are not HTTP errors. The declared method is sent verbatim, recognized
// or not; a method the transport cannot carry settles as an error result.
func (h *DocsHandlers) TryIt(w http.ResponseWriter, r *http.Request) {
	var req tryItRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Endpoint.Path, "endpoint.path") {
		return
	}

	env := snippets.DefaultEnv()
	if req.BaseURL != "" {
		env.BaseURL = req.BaseURL
	}
	if req.APIKey != "" {
		env.APIKey = req.APIKey
	}

	result := tryit.Do(r.Context(), h.client, req.Endpoint, env, req.BodyDraft)

	if h.metrics != nil {
		method := req.Endpoint.Normalized().Method
		h.metrics.TryItRequestsTotal.WithLabelValues(method, fmt.Sprintf("%d", result.StatusCode)).Inc()
		h.metrics.TryItRequestDuration.WithLabelValues(method).Observe(float64(result.ElapsedMS) / 1000)
	}

	httputil.WriteSuccess(w, result)
}
