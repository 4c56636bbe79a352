package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dochub-io/dochub/pkg/httputil"
)

// QuotaLimits caps how much content a company may create
type QuotaLimits struct {
	// MaxProjectsPerCompany caps projects per company (0 disables the check)
	MaxProjectsPerCompany int
	// MaxPagesPerProject caps pages per project (0 disables the check)
	MaxPagesPerProject int
}

// DefaultQuotaLimits returns default quota settings
func DefaultQuotaLimits() QuotaLimits {
	return QuotaLimits{
		MaxProjectsPerCompany: 50,
		MaxPagesPerProject:    500,
	}
}

// ContentCounter counts existing content for quota checks. Implemented by
// projects.Service.
type ContentCounter interface {
	CountProjects(companyID string) (int, error)
	CountPages(projectID string) (int, error)
}

// QuotaMiddleware enforces content quotas for write requests
//
// IMPORTANT: See package documentation for middleware ordering requirements.
// EnforceProjectQuota needs the company resolved by CompanyContextMiddleware.
type QuotaMiddleware struct {
	counter ContentCounter
	limits  QuotaLimits
}

// NewQuotaMiddleware creates a new QuotaMiddleware
func NewQuotaMiddleware(counter ContentCounter, limits QuotaLimits) *QuotaMiddleware {
	return &QuotaMiddleware{
		counter: counter,
		limits:  limits,
	}
}

// EnforceProjectQuota rejects project creation once a company reaches its
// project limit.
//
// REQUIRES: CompanyContextMiddleware must run before this middleware.
// If no company is in context the check is skipped.
func (m *QuotaMiddleware) EnforceProjectQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || m.limits.MaxProjectsPerCompany <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		c := GetCompany(r)
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}

		count, err := m.counter.CountProjects(c.ID)
		if err != nil {
			httputil.WriteInternalError(w, err)
			return
		}
		if count >= m.limits.MaxProjectsPerCompany {
			writeQuotaExceeded(w, "projects", count, m.limits.MaxProjectsPerCompany)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EnforcePageQuota rejects page creation once a project reaches its page
// limit. The project is addressed by the {project_id} path variable.
func (m *QuotaMiddleware) EnforcePageQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || m.limits.MaxPagesPerProject <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		projectID, ok := mux.Vars(r)["project_id"]
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		count, err := m.counter.CountPages(projectID)
		if err != nil {
			httputil.WriteInternalError(w, err)
			return
		}
		if count >= m.limits.MaxPagesPerProject {
			writeQuotaExceeded(w, "pages", count, m.limits.MaxPagesPerProject)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeQuotaExceeded(w http.ResponseWriter, resource string, current, limit int) {
	httputil.WriteJSON(w, http.StatusForbidden, map[string]interface{}{
		"error":    "quota_exceeded",
		"resource": resource,
		"current":  current,
		"limit":    limit,
	})
}
