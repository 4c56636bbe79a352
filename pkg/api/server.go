package api

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/dochub-io/dochub/pkg/httputil"
	"github.com/dochub-io/dochub/pkg/middleware"
	"github.com/dochub-io/dochub/pkg/observability"
	"github.com/dochub-io/dochub/pkg/snippets"
	"github.com/dochub-io/dochub/pkg/storage"
)

const maxRequestBody = 10 * 1024 * 1024 // 10MB

// Deps carries everything the server needs. PageCache, Collections,
// Metrics, Auth, and TryItClient are optional.
type Deps struct {
	Companies CompanyService
	Projects  ProjectService
	Snippets  *snippets.Registry

	PageCache   *storage.RedisCache
	Collections *storage.CollectionCache

	Logger  *observability.Logger
	Metrics *observability.Metrics

	Auth        *middleware.AuthMiddleware
	Quota       *middleware.QuotaMiddleware
	TryItClient *http.Client
}

// Server represents the dochub API server
type Server struct {
	router *mux.Router
	logger *observability.Logger

	companyHandlers *CompanyHandlers
	projectHandlers *ProjectHandlers
	docsHandlers    *DocsHandlers
	viewerHandlers  *ViewerHandlers
}

// NewServer creates a new API server
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = observability.NewLogger(observability.InfoLevel, os.Stdout)
	}

	s := &Server{
		router:          mux.NewRouter(),
		logger:          deps.Logger,
		companyHandlers: NewCompanyHandlers(deps.Companies),
		projectHandlers: NewProjectHandlers(deps.Projects, deps.PageCache, deps.Collections, deps.Metrics),
		docsHandlers:    NewDocsHandlers(deps.Projects, deps.Snippets, deps.PageCache, deps.Collections, deps.Metrics, deps.TryItClient),
		viewerHandlers:  NewViewerHandlers(deps.Companies, deps.Projects, deps.PageCache, deps.Collections, deps.Metrics),
	}

	s.setupRoutes(deps)
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes(deps Deps) {
	s.router.Use(httputil.RequestIDMiddleware)
	s.router.Use(httputil.LoggingMiddleware(s.logger))
	s.router.Use(httputil.RecoveryMiddleware(s.logger))
	s.router.Use(httputil.MaxBytesMiddleware(maxRequestBody))
	if deps.Metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(deps.Metrics))
	}

	// Authenticated management API
	apiRouter := s.router.PathPrefix("/api/v1").Subrouter()
	if deps.Auth != nil {
		apiRouter.Use(deps.Auth.Handler)
	}
	apiRouter.Use(middleware.CompanyContextMiddleware(deps.Companies))
	apiRouter.Use(middleware.RequireMembership(deps.Companies))

	s.companyHandlers.RegisterRoutes(apiRouter)
	s.projectHandlers.RegisterRoutes(apiRouter, deps.Quota)
	s.docsHandlers.RegisterRoutes(apiRouter)

	// Public viewer
	viewRouter := s.router.PathPrefix("/v1/view").Subrouter()
	s.viewerHandlers.RegisterRoutes(viewRouter)
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.router
}
