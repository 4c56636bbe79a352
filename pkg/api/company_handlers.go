package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dochub-io/dochub/pkg/company"
	"github.com/dochub-io/dochub/pkg/httputil"
	"github.com/dochub-io/dochub/pkg/middleware"
)

// CompanyHandlers handles company-related HTTP requests
type CompanyHandlers struct {
	companies CompanyService
}

// NewCompanyHandlers creates a new CompanyHandlers
func NewCompanyHandlers(companies CompanyService) *CompanyHandlers {
	return &CompanyHandlers{
		companies: companies,
	}
}

// RegisterRoutes registers company routes. Member and invitation
// management require the admin role; deleting a company requires owner.
func (h *CompanyHandlers) RegisterRoutes(router *mux.Router) {
	admin := middleware.RequireRole(company.RoleAdmin)
	owner := middleware.RequireRole(company.RoleOwner)

	router.HandleFunc("/companies", h.CreateCompany).Methods("POST")
	router.HandleFunc("/companies", h.ListCompanies).Methods("GET")
	router.HandleFunc("/companies/{company_id}", h.GetCompany).Methods("GET")
	router.HandleFunc("/companies/{company_id}", h.UpdateCompany).Methods("PUT")
	router.Handle("/companies/{company_id}", owner(http.HandlerFunc(h.DeleteCompany))).Methods("DELETE")

	// Members
	router.HandleFunc("/companies/{company_id}/members", h.ListMembers).Methods("GET")
	router.Handle("/companies/{company_id}/members/{user_id}", admin(http.HandlerFunc(h.UpdateMember))).Methods("PUT")
	router.Handle("/companies/{company_id}/members/{user_id}", admin(http.HandlerFunc(h.RemoveMember))).Methods("DELETE")

	// Invitations
	router.Handle("/companies/{company_id}/invitations", admin(http.HandlerFunc(h.CreateInvitation))).Methods("POST")
	router.HandleFunc("/companies/{company_id}/invitations", h.ListInvitations).Methods("GET")
	router.Handle("/companies/{company_id}/invitations/{invitation_id}", admin(http.HandlerFunc(h.RevokeInvitation))).Methods("DELETE")
	router.HandleFunc("/invitations/{token}/accept", h.AcceptInvitation).Methods("POST")
}

// CreateCompany creates a new company owned by the caller
func (h *CompanyHandlers) CreateCompany(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r)
	if identity == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	var req company.CreateCompanyRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Name, "name") {
		return
	}

	c := &company.Company{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		OwnerID:     &identity.UserID,
		Settings:    req.Settings,
	}

	if err := h.companies.CreateCompany(c); err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteCreated(w, c)
}

// ListCompanies lists the caller's companies
func (h *CompanyHandlers) ListCompanies(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r)
	if identity == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	companies, err := h.companies.ListCompanies(identity.UserID)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, companies)
}

// GetCompany retrieves a company by ID
func (h *CompanyHandlers) GetCompany(w http.ResponseWriter, r *http.Request) {
	if c := middleware.GetCompany(r); c != nil {
		httputil.WriteSuccess(w, c)
		return
	}

	id, ok := httputil.ParsePathStringOrError(w, r, "company_id")
	if !ok {
		return
	}

	c, err := h.companies.GetCompany(id)
	if errors.Is(err, company.ErrCompanyNotFound) {
		httputil.WriteNotFoundError(w, "company not found")
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, c)
}

// UpdateCompany updates mutable company fields
func (h *CompanyHandlers) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "company_id")
	if !ok {
		return
	}

	var req company.UpdateCompanyRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if err := h.companies.UpdateCompany(id, &req); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			httputil.WriteNotFoundError(w, "company not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	c, err := h.companies.GetCompany(id)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, c)
}

// DeleteCompany soft-deletes a company
func (h *CompanyHandlers) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "company_id")
	if !ok {
		return
	}

	if err := h.companies.DeleteCompany(id); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			httputil.WriteNotFoundError(w, "company not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// ListMembers lists a company's members
func (h *CompanyHandlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "company_id")
	if !ok {
		return
	}

	members, err := h.companies.ListMembers(id)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, members)
}

// UpdateMember changes a member's role
func (h *CompanyHandlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, userID := vars["company_id"], vars["user_id"]

	var req company.UpdateMemberRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !req.Role.Valid() {
		httputil.WriteValidationError(w, "invalid role")
		return
	}

	if err := h.companies.UpdateMemberRole(companyID, userID, req.Role); err != nil {
		if errors.Is(err, company.ErrMemberNotFound) {
			httputil.WriteNotFoundError(w, "member not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// RemoveMember removes a member from a company
func (h *CompanyHandlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.companies.RemoveMember(vars["company_id"], vars["user_id"]); err != nil {
		if errors.Is(err, company.ErrMemberNotFound) {
			httputil.WriteNotFoundError(w, "member not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// CreateInvitation invites an e-mail address to join a company
func (h *CompanyHandlers) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r)
	if identity == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	companyID, ok := httputil.ParsePathStringOrError(w, r, "company_id")
	if !ok {
		return
	}

	var req company.InviteMemberRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Email, "email") {
		return
	}
	if !req.Role.Valid() {
		httputil.WriteValidationError(w, "invalid role")
		return
	}

	invitation := &company.Invitation{
		CompanyID: companyID,
		Email:     req.Email,
		Role:      req.Role,
		InvitedBy: identity.UserID,
		InvitedAt: time.Now().UTC(),
	}

	if err := h.companies.CreateInvitation(invitation); err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteCreated(w, invitation)
}

// ListInvitations lists a company's pending invitations
func (h *CompanyHandlers) ListInvitations(w http.ResponseWriter, r *http.Request) {
	companyID, ok := httputil.ParsePathStringOrError(w, r, "company_id")
	if !ok {
		return
	}

	invitations, err := h.companies.ListInvitations(companyID)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, invitations)
}

// AcceptInvitation redeems an invitation token for the caller
func (h *CompanyHandlers) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r)
	if identity == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	token, ok := httputil.ParsePathStringOrError(w, r, "token")
	if !ok {
		return
	}

	err := h.companies.AcceptInvitation(token, identity.UserID)
	switch {
	case errors.Is(err, company.ErrInvitationNotFound):
		httputil.WriteNotFoundError(w, "invitation not found")
	case errors.Is(err, company.ErrInvitationExpired):
		httputil.WriteErrorMessage(w, http.StatusGone, "invitation expired")
	case errors.Is(err, company.ErrInvitationAccepted):
		httputil.WriteConflict(w, "invitation already accepted")
	case err != nil:
		httputil.WriteInternalError(w, err)
	default:
		httputil.WriteNoContent(w)
	}
}

// RevokeInvitation revokes a pending invitation
func (h *CompanyHandlers) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, ok := httputil.ParsePathStringOrError(w, r, "invitation_id")
	if !ok {
		return
	}

	if err := h.companies.RevokeInvitation(invitationID); err != nil {
		if errors.Is(err, company.ErrInvitationNotFound) {
			httputil.WriteNotFoundError(w, "invitation not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}
