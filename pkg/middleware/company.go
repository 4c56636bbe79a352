package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dochub-io/dochub/pkg/company"
	"github.com/dochub-io/dochub/pkg/httputil"
	"github.com/dochub-io/dochub/pkg/observability"
)

// CompanyDirectory is the subset of company.Service used to resolve
// companies and memberships.
type CompanyDirectory interface {
	GetCompany(id string) (*company.Company, error)
	GetCompanyBySlug(slug string) (*company.Company, error)
	GetMember(companyID, userID string) (*company.Member, error)
}

// CompanyContextMiddleware resolves the company named in the URL and adds it
// to the request context. Routes may address companies by {company_id} or
// {company_slug}; requests without either pass through untouched.
func CompanyContextMiddleware(svc CompanyDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vars := mux.Vars(r)

			var (
				c   *company.Company
				err error
			)
			if companyID, ok := vars["company_id"]; ok {
				c, err = svc.GetCompany(companyID)
			} else if companySlug, ok := vars["company_slug"]; ok {
				c, err = svc.GetCompanyBySlug(companySlug)
			} else {
				next.ServeHTTP(w, r)
				return
			}

			if errors.Is(err, company.ErrCompanyNotFound) {
				httputil.WriteNotFoundError(w, "company not found")
				return
			}
			if err != nil {
				httputil.WriteInternalError(w, err)
				return
			}

			ctx := WithCompany(r.Context(), c)
			ctx = observability.WithCompanyID(ctx, c.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCompany stores a company in the context
func WithCompany(ctx context.Context, c *company.Company) context.Context {
	return context.WithValue(ctx, companyKey, c)
}

// GetCompany extracts the resolved company from a request, or nil
func GetCompany(r *http.Request) *company.Company {
	c, ok := r.Context().Value(companyKey).(*company.Company)
	if !ok {
		return nil
	}
	return c
}

// RequireMembership creates middleware that rejects callers who are not
// members of the company in context. Identity and company must already be
// resolved; if either is missing the check is skipped. On success the
// caller's identity carries the member's company role, so downstream
// RequireRole checks see it.
func RequireMembership(svc CompanyDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r)
			c := GetCompany(r)
			if identity == nil || c == nil {
				next.ServeHTTP(w, r)
				return
			}

			member, err := svc.GetMember(c.ID, identity.UserID)
			if errors.Is(err, company.ErrMemberNotFound) {
				httputil.WriteForbidden(w, "not a member of this company")
				return
			}
			if err != nil {
				httputil.WriteInternalError(w, err)
				return
			}

			resolved := *identity
			resolved.CompanyID = c.ID
			resolved.Role = member.Role
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), &resolved)))
		})
	}
}
