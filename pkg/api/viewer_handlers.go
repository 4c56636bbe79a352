package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dochub-io/dochub/pkg/apidocs"
	"github.com/dochub-io/dochub/pkg/company"
	"github.com/dochub-io/dochub/pkg/httputil"
	"github.com/dochub-io/dochub/pkg/observability"
	"github.com/dochub-io/dochub/pkg/projects"
	"github.com/dochub-io/dochub/pkg/storage"
	"github.com/dochub-io/dochub/pkg/tryit"
)

// ViewerHandlers serves the public read-only viewer for published projects
type ViewerHandlers struct {
	companies   CompanyService
	projects    ProjectService
	pageCache   *storage.RedisCache
	collections *storage.CollectionCache
	metrics     *observability.Metrics
}

// NewViewerHandlers creates a new ViewerHandlers
func NewViewerHandlers(companies CompanyService, svc ProjectService, pageCache *storage.RedisCache, collections *storage.CollectionCache, metrics *observability.Metrics) *ViewerHandlers {
	return &ViewerHandlers{
		companies:   companies,
		projects:    svc,
		pageCache:   pageCache,
		collections: collections,
		metrics:     metrics,
	}
}

// RegisterRoutes registers public viewer routes
func (h *ViewerHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/{company_slug}/{project_slug}", h.ViewProject).Methods("GET")
	router.HandleFunc("/{company_slug}/{project_slug}/pages/{page_slug}", h.ViewPage).Methods("GET")
	router.HandleFunc("/{company_slug}/{project_slug}/endpoints", h.ViewEndpoints).Methods("GET")
}

// pageSummary is a page without its content, for navigation
type pageSummary struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
}

// projectView is the public project payload
type projectView struct {
	Project *projects.Project `json:"project"`
	Pages   []pageSummary     `json:"pages"`
}

// resolvePublicProject maps company and project slugs to a published,
// public project. Unpublished and private projects are indistinguishable
// from missing ones.
func (h *ViewerHandlers) resolvePublicProject(w http.ResponseWriter, r *http.Request) (*projects.Project, bool) {
	vars := mux.Vars(r)

	c, err := h.companies.GetCompanyBySlug(vars["company_slug"])
	if errors.Is(err, company.ErrCompanyNotFound) {
		httputil.WriteNotFoundError(w, "not found")
		return nil, false
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return nil, false
	}

	project, err := h.projects.GetProjectBySlug(c.ID, vars["project_slug"])
	if errors.Is(err, projects.ErrProjectNotFound) {
		httputil.WriteNotFoundError(w, "not found")
		return nil, false
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return nil, false
	}

	if !project.Published || project.Visibility != projects.VisibilityPublic {
		httputil.WriteNotFoundError(w, "not found")
		return nil, false
	}

	return project, true
}

// ViewProject returns a published project with its page navigation
func (h *ViewerHandlers) ViewProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.resolvePublicProject(w, r)
	if !ok {
		return
	}

	if h.pageCache != nil {
		var view projectView
		found, err := h.pageCache.GetJSON(r.Context(), h.pageCache.ProjectKey(project.ID), &view)
		if err != nil {
			observability.FromContext(r.Context()).WithError(err).Warn("project cache read failed")
		}
		if found {
			h.countCache("project", true)
			httputil.WriteSuccess(w, view)
			return
		}
		h.countCache("project", false)
	}

	pages, err := h.projects.ListPages(project.ID)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	view := projectView{Project: project, Pages: make([]pageSummary, 0, len(pages))}
	for _, p := range pages {
		view.Pages = append(view.Pages, pageSummary{Title: p.Title, Slug: p.Slug, Position: p.Position})
	}

	if h.pageCache != nil {
		if err := h.pageCache.SetJSON(r.Context(), h.pageCache.ProjectKey(project.ID), "project", view); err != nil {
			observability.FromContext(r.Context()).WithError(err).Warn("project cache write failed")
		}
	}

	httputil.WriteSuccess(w, view)
}

// ViewPage returns one page's content from a published project
func (h *ViewerHandlers) ViewPage(w http.ResponseWriter, r *http.Request) {
	project, ok := h.resolvePublicProject(w, r)
	if !ok {
		return
	}

	pageSlug := mux.Vars(r)["page_slug"]

	if h.pageCache != nil {
		content, found, err := h.pageCache.GetPageContent(r.Context(), project.ID, pageSlug)
		if err != nil {
			observability.FromContext(r.Context()).WithError(err).Warn("page cache read failed")
		}
		if found {
			h.countCache("page", true)
			httputil.WriteSuccess(w, map[string]string{"slug": pageSlug, "content": content})
			return
		}
		h.countCache("page", false)
	}

	page, err := h.projects.GetPage(project.ID, pageSlug)
	if errors.Is(err, projects.ErrPageNotFound) {
		httputil.WriteNotFoundError(w, "not found")
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	if h.pageCache != nil {
		if err := h.pageCache.SetPageContent(r.Context(), project.ID, pageSlug, page.Content); err != nil {
			observability.FromContext(r.Context()).WithError(err).Warn("page cache write failed")
		}
	}

	httputil.WriteSuccess(w, map[string]string{"slug": page.Slug, "content": page.Content})
}

// ViewEndpoints returns grouped endpoint navigation for an api-docs
// project, with optional search, method filter, and sorting.
func (h *ViewerHandlers) ViewEndpoints(w http.ResponseWriter, r *http.Request) {
	project, ok := h.resolvePublicProject(w, r)
	if !ok {
		return
	}

	if project.TemplateType != projects.TemplateAPIDocs {
		httputil.WriteSuccess(w, []tryit.Group{})
		return
	}

	pages, err := h.projects.ListPages(project.ID)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	groups := make([]tryit.Group, 0, len(pages))
	for _, p := range pages {
		groups = append(groups, tryit.Group{
			Page:      p.Title,
			Endpoints: h.collectionFor(project.ID, p),
		})
	}

	filter := tryit.Filter{
		Search: httputil.ParseQueryString(r, "q", ""),
		Method: httputil.ParseQueryString(r, "method", ""),
	}
	sortKey := tryit.SortKey(httputil.ParseQueryString(r, "sort", ""))

	viewer := tryit.NewViewerFromGroups(groups)
	httputil.WriteSuccess(w, viewer.Visible(filter, sortKey))
}

// collectionFor parses a page's endpoint collection, going through the LRU
// when one is configured
func (h *ViewerHandlers) collectionFor(projectID string, p *projects.Page) apidocs.Collection {
	if h.collections == nil {
		return apidocs.ParseCollection(p.Content)
	}

	if collection, ok := h.collections.Get(projectID, p.Slug); ok {
		h.countCache("collection", true)
		return collection
	}
	h.countCache("collection", false)

	collection := apidocs.ParseCollection(p.Content)
	h.collections.Set(projectID, p.Slug, collection)
	return collection
}

func (h *ViewerHandlers) countCache(cacheType string, hit bool) {
	if h.metrics == nil {
		return
	}
	if hit {
		h.metrics.CacheHitsTotal.WithLabelValues(cacheType).Inc()
		return
	}
	h.metrics.CacheMissesTotal.WithLabelValues(cacheType).Inc()
}
