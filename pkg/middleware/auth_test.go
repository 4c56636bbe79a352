package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dochub-io/dochub/pkg/company"
	"github.com/dochub-io/dochub/pkg/observability"
)

type fakeValidator struct {
	identity *Identity
	err      error
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func okHandler(seen **Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = GetIdentity(r)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&fakeValidator{}, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	m.Handler(okHandler(nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestAuthOptionalAllowsAnonymous(t *testing.T) {
	m := NewAuthMiddleware(&fakeValidator{}, true)

	var seen *Identity
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	m.Handler(okHandler(&seen)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthBadHeaderFormat(t *testing.T) {
	m := NewAuthMiddleware(&fakeValidator{}, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	m.Handler(okHandler(nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header format")
}

func TestAuthInvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&fakeValidator{err: errors.New("expired")}, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok_bad")
	rec := httptest.NewRecorder()
	m.Handler(okHandler(nil)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestAuthSetsIdentityAndContext(t *testing.T) {
	identity := &Identity{UserID: "usr_1", CompanyID: "cmp_1", Role: company.RoleAdmin}
	m := NewAuthMiddleware(&fakeValidator{identity: identity}, false)

	var seen *Identity
	var userID, companyID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetIdentity(r)
		userID = observability.GetUserID(r.Context())
		companyID = observability.GetCompanyID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok_good")
	rec := httptest.NewRecorder()
	m.Handler(handler).ServeHTTP(rec, req)

	assert.Equal(t, identity, seen)
	assert.Equal(t, "usr_1", userID)
	assert.Equal(t, "cmp_1", companyID)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		required company.Role
		want     int
	}{
		{"no identity", nil, company.RoleMember, http.StatusForbidden},
		{"member lacks admin", &Identity{UserID: "u", Role: company.RoleMember}, company.RoleAdmin, http.StatusForbidden},
		{"admin passes admin", &Identity{UserID: "u", Role: company.RoleAdmin}, company.RoleAdmin, http.StatusOK},
		{"owner passes admin", &Identity{UserID: "u", Role: company.RoleOwner}, company.RoleAdmin, http.StatusOK},
		{"admin lacks owner", &Identity{UserID: "u", Role: company.RoleAdmin}, company.RoleOwner, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.required)(okHandler(nil))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
