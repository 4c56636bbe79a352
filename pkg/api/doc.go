// Package api provides the HTTP API server for dochub.
//
// # Overview
//
// The server exposes two surfaces on one router:
//
//   - /api/v1: the authenticated management API (companies, members,
//     invitations, projects, pages, endpoint collections, snippet
//     generation, Try-It proxy)
//   - /v1/view: the public viewer for published projects, addressed by
//     company and project slug
//
// # Layout
//
// Handlers are grouped per domain, each with a RegisterRoutes method:
//
//   - CompanyHandlers: company CRUD, members, invitations
//   - ProjectHandlers: project and page CRUD
//   - DocsHandlers: endpoint collections, snippets, Try-It proxy
//   - ViewerHandlers: public read-only viewer
//
// Server wires the handler groups onto a gorilla/mux router together with
// request-ID, logging, recovery, and metrics middleware.
//
// # Related Packages
//
//   - pkg/apidocs: endpoint collection model and serialization
//   - pkg/snippets: code snippet generation
//   - pkg/tryit: live request execution and viewer pipeline
//   - pkg/storage: Redis and LRU caches backing the public viewer
package api
