package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dochub-io/dochub/pkg/company"
	"github.com/dochub-io/dochub/pkg/httputil"
	"github.com/dochub-io/dochub/pkg/observability"
)

// ErrInvalidToken is returned by validators for unknown tokens.
var ErrInvalidToken = errors.New("invalid token")

type contextKey string

const (
	identityKey contextKey = "identity"
	companyKey  contextKey = "company"
)

// Identity describes the authenticated caller of a request.
type Identity struct {
	UserID    string
	Email     string
	CompanyID string
	Role      company.Role
}

// TokenValidator resolves a bearer token to an identity.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*Identity, error)
}

// AuthMiddleware provides bearer token authentication
type AuthMiddleware struct {
	validator TokenValidator
	optional  bool // If true, allow requests without auth
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(validator TokenValidator, optional bool) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		optional:  optional,
	}
}

// Handler wraps an HTTP handler with authentication
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Format: "Bearer <token>"
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if m.optional {
				next.ServeHTTP(w, r)
				return
			}
			httputil.WriteUnauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.WriteUnauthorized(w, "invalid authorization header format")
			return
		}

		identity, err := m.validator.ValidateToken(r.Context(), parts[1])
		if err != nil {
			httputil.WriteUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := WithIdentity(r.Context(), identity)
		ctx = observability.WithUserID(ctx, identity.UserID)
		if identity.CompanyID != "" {
			ctx = observability.WithCompanyID(ctx, identity.CompanyID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaticTokenValidator resolves tokens from a fixed token-to-user table.
// Used for service deployments that provision API tokens out of band; a
// real identity provider plugs in through the TokenValidator interface.
type StaticTokenValidator struct {
	tokens map[string]string
}

// NewStaticTokenValidator creates a validator over a token-to-userID map.
func NewStaticTokenValidator(tokens map[string]string) *StaticTokenValidator {
	return &StaticTokenValidator{tokens: tokens}
}

// ValidateToken resolves a token to its identity.
func (v *StaticTokenValidator) ValidateToken(ctx context.Context, token string) (*Identity, error) {
	userID, ok := v.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: userID}, nil
}

// WithIdentity stores an identity in the context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity extracts the authenticated identity from a request, or nil
func GetIdentity(r *http.Request) *Identity {
	identity, ok := r.Context().Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// roleRank orders company roles for permission comparisons
func roleRank(role company.Role) int {
	switch role {
	case company.RoleOwner:
		return 3
	case company.RoleAdmin:
		return 2
	case company.RoleMember:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires the caller to hold at least
// the given company role.
func RequireRole(role company.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r)
			if identity == nil {
				httputil.WriteForbidden(w, "authentication required")
				return
			}

			if roleRank(identity.Role) < roleRank(role) {
				httputil.WriteForbidden(w, "insufficient role permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
