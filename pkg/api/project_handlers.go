package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dochub-io/dochub/pkg/httputil"
	"github.com/dochub-io/dochub/pkg/middleware"
	"github.com/dochub-io/dochub/pkg/observability"
	"github.com/dochub-io/dochub/pkg/projects"
	"github.com/dochub-io/dochub/pkg/storage"
)

// ProjectHandlers handles project and page HTTP requests
type ProjectHandlers struct {
	projects    ProjectService
	pageCache   *storage.RedisCache
	collections *storage.CollectionCache
	metrics     *observability.Metrics
}

// NewProjectHandlers creates a new ProjectHandlers
func NewProjectHandlers(svc ProjectService, pageCache *storage.RedisCache, collections *storage.CollectionCache, metrics *observability.Metrics) *ProjectHandlers {
	return &ProjectHandlers{
		projects:    svc,
		pageCache:   pageCache,
		collections: collections,
		metrics:     metrics,
	}
}

// RegisterRoutes registers project and page routes
func (h *ProjectHandlers) RegisterRoutes(router *mux.Router, quota *middleware.QuotaMiddleware) {
	createProject := http.HandlerFunc(h.CreateProject)
	createPage := http.HandlerFunc(h.CreatePage)
	if quota != nil {
		router.Handle("/companies/{company_id}/projects", quota.EnforceProjectQuota(createProject)).Methods("POST")
		router.Handle("/projects/{project_id}/pages", quota.EnforcePageQuota(createPage)).Methods("POST")
	} else {
		router.Handle("/companies/{company_id}/projects", createProject).Methods("POST")
		router.Handle("/projects/{project_id}/pages", createPage).Methods("POST")
	}

	router.HandleFunc("/companies/{company_id}/projects", h.ListProjects).Methods("GET")
	router.HandleFunc("/projects/{project_id}", h.GetProject).Methods("GET")
	router.HandleFunc("/projects/{project_id}", h.UpdateProject).Methods("PUT")
	router.HandleFunc("/projects/{project_id}", h.DeleteProject).Methods("DELETE")

	router.HandleFunc("/projects/{project_id}/pages", h.ListPages).Methods("GET")
	router.HandleFunc("/projects/{project_id}/pages/{page_slug}", h.GetPage).Methods("GET")
	router.HandleFunc("/projects/{project_id}/pages/{page_slug}", h.UpdatePage).Methods("PUT")
	router.HandleFunc("/projects/{project_id}/pages/{page_slug}", h.DeletePage).Methods("DELETE")
	router.HandleFunc("/projects/{project_id}/pages/{page_slug}/content", h.SavePageContent).Methods("PUT")
}

// CreateProject creates a project for a company
func (h *ProjectHandlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	companyID, ok := httputil.ParsePathStringOrError(w, r, "company_id")
	if !ok {
		return
	}

	var req projects.CreateProjectRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Name, "name") {
		return
	}

	project, err := h.projects.CreateProject(companyID, &req)
	if errors.Is(err, projects.ErrInvalidTemplateType) {
		httputil.WriteValidationError(w, "invalid template type")
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteCreated(w, project)
}

// ListProjects lists a company's projects
func (h *ProjectHandlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	companyID, ok := httputil.ParsePathStringOrError(w, r, "company_id")
	if !ok {
		return
	}

	list, err := h.projects.ListProjects(companyID)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, list)
}

// GetProject retrieves a project by ID
func (h *ProjectHandlers) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httputil.ParsePathStringOrError(w, r, "project_id")
	if !ok {
		return
	}

	project, err := h.projects.GetProject(projectID)
	if errors.Is(err, projects.ErrProjectNotFound) {
		httputil.WriteNotFoundError(w, "project not found")
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, project)
}

// UpdateProject updates mutable project fields
func (h *ProjectHandlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httputil.ParsePathStringOrError(w, r, "project_id")
	if !ok {
		return
	}

	var req projects.UpdateProjectRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if err := h.projects.UpdateProject(projectID, &req); err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			httputil.WriteNotFoundError(w, "project not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	h.invalidateProject(r, projectID)

	project, err := h.projects.GetProject(projectID)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, project)
}

// DeleteProject removes a project and its pages
func (h *ProjectHandlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httputil.ParsePathStringOrError(w, r, "project_id")
	if !ok {
		return
	}

	if err := h.projects.DeleteProject(projectID); err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			httputil.WriteNotFoundError(w, "project not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	h.invalidateProject(r, projectID)
	httputil.WriteNoContent(w)
}

// CreatePage creates a page in a project
func (h *ProjectHandlers) CreatePage(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httputil.ParsePathStringOrError(w, r, "project_id")
	if !ok {
		return
	}

	var req projects.CreatePageRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Title, "title") {
		return
	}

	page, err := h.projects.CreatePage(projectID, &req)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteCreated(w, page)
}

// ListPages lists a project's pages in display order
func (h *ProjectHandlers) ListPages(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httputil.ParsePathStringOrError(w, r, "project_id")
	if !ok {
		return
	}

	pages, err := h.projects.ListPages(projectID)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, pages)
}

// GetPage retrieves a page by slug
func (h *ProjectHandlers) GetPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	page, err := h.projects.GetPage(vars["project_id"], vars["page_slug"])
	if errors.Is(err, projects.ErrPageNotFound) {
		httputil.WriteNotFoundError(w, "page not found")
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, page)
}

// UpdatePage updates page metadata or content
func (h *ProjectHandlers) UpdatePage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, pageSlug := vars["project_id"], vars["page_slug"]

	var req projects.UpdatePageRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if err := h.projects.UpdatePage(projectID, pageSlug, &req); err != nil {
		if errors.Is(err, projects.ErrPageNotFound) {
			httputil.WriteNotFoundError(w, "page not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	h.invalidatePage(r, projectID, pageSlug)

	page, err := h.projects.GetPage(projectID, pageSlug)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, page)
}

// SavePageContent replaces a page's content as one atomic value
func (h *ProjectHandlers) SavePageContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, pageSlug := vars["project_id"], vars["page_slug"]

	var req struct {
		Content string `json:"content"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if err := h.projects.SavePageContent(projectID, pageSlug, req.Content); err != nil {
		if errors.Is(err, projects.ErrPageNotFound) {
			httputil.WriteNotFoundError(w, "page not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	h.invalidatePage(r, projectID, pageSlug)

	if h.metrics != nil {
		templateType := "unknown"
		if project, err := h.projects.GetProject(projectID); err == nil {
			templateType = string(project.TemplateType)
		}
		h.metrics.PageSavesTotal.WithLabelValues(templateType).Inc()
	}

	httputil.WriteNoContent(w)
}

// DeletePage removes a page
func (h *ProjectHandlers) DeletePage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, pageSlug := vars["project_id"], vars["page_slug"]

	if err := h.projects.DeletePage(projectID, pageSlug); err != nil {
		if errors.Is(err, projects.ErrPageNotFound) {
			httputil.WriteNotFoundError(w, "page not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	h.invalidatePage(r, projectID, pageSlug)
	httputil.WriteNoContent(w)
}

// invalidatePage drops the cached copies of one page
func (h *ProjectHandlers) invalidatePage(r *http.Request, projectID, pageSlug string) {
	if h.pageCache != nil {
		if err := h.pageCache.InvalidatePage(r.Context(), projectID, pageSlug); err != nil {
			observability.FromContext(r.Context()).WithError(err).Warn("failed to invalidate page cache")
		}
	}
	if h.collections != nil {
		h.collections.Invalidate(projectID, pageSlug)
	}
}

// invalidateProject drops the cached copies of a project and its pages
func (h *ProjectHandlers) invalidateProject(r *http.Request, projectID string) {
	if h.pageCache != nil {
		if err := h.pageCache.InvalidateProject(r.Context(), projectID); err != nil {
			observability.FromContext(r.Context()).WithError(err).Warn("failed to invalidate project cache")
		}
	}
}
