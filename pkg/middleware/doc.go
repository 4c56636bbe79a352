// Package middleware provides HTTP middleware for authentication, company
// context, quota enforcement, and rate limiting.
//
// # Middleware Ordering Requirements
//
// Company-scoped middleware has strict ordering dependencies. Incorrect order
// causes membership and quota checks to be silently skipped.
//
// REQUIRED ORDERING (outer to inner):
//  1. AuthMiddleware - Validates the bearer token and sets the request identity
//  2. CompanyContextMiddleware - Resolves {company_id} from the URL and loads the company
//  3. RequireMembership / quota middleware - Need both identity and company in context
//
// Example (correct):
//
//	router.Use(authMiddleware.Handler)
//	router.Use(middleware.CompanyContextMiddleware(companyService))
//	router.Handle("/api/v1/companies/{company_id}/projects",
//	    middleware.RequireMembership(companyService)(handler)).Methods("POST")
//
// If identity or company is missing from context, membership and quota
// middleware skip their checks rather than failing closed, so ordering
// mistakes surface as missing enforcement, not errors.
//
// RequireMembership resolves the member's company role into the request
// identity, so per-route RequireRole gates must sit inside it. RequireRole
// itself fails closed: no identity means no privilege.
//
// # Rate Limiting
//
// Anonymous: 100 req/min, 10 burst (keyed by client IP)
// Per-User: 1000 req/min, 50 burst (keyed by user ID)
//
// RateLimitMiddleware keeps buckets in memory; DistributedRateLimitMiddleware
// shares counters through Redis so limits hold across instances.
//
// # Related Packages
//
//   - pkg/company: Membership lookups
//   - pkg/projects: Quota counting
package middleware
