package company

import (
	"errors"
	"time"
)

// Role represents a member's role within a company
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Status represents company status
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// Company represents a tenant account that owns documentation projects
type Company struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description,omitempty"`
	OwnerID     *string        `json:"owner_id,omitempty"`
	Status      Status         `json:"status"`
	IsActive    bool           `json:"is_active"`
	Settings    map[string]any `json:"settings,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Member represents a company member
type Member struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	InvitedBy *string   `json:"invited_by,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Invitation represents an invitation to join a company
type Invitation struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Token      string     `json:"token,omitempty"`
	InvitedBy  string     `json:"invited_by"`
	InvitedAt  time.Time  `json:"invited_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy *string    `json:"accepted_by,omitempty"`
}

// CreateCompanyRequest represents request to create a company
type CreateCompanyRequest struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// UpdateCompanyRequest represents request to update a company
type UpdateCompanyRequest struct {
	DisplayName *string        `json:"display_name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// InviteMemberRequest represents request to invite a member
type InviteMemberRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UpdateMemberRequest represents request to update a member's role
type UpdateMemberRequest struct {
	Role Role `json:"role"`
}

var (
	// ErrCompanyNotFound indicates the company does not exist
	ErrCompanyNotFound = errors.New("company not found")

	// ErrMemberNotFound indicates the member does not exist
	ErrMemberNotFound = errors.New("member not found")

	// ErrMemberExists indicates the user is already a member
	ErrMemberExists = errors.New("member already exists")

	// ErrInvitationNotFound indicates the invitation does not exist
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrInvitationExpired indicates the invitation has expired
	ErrInvitationExpired = errors.New("invitation expired")

	// ErrInvitationAccepted indicates the invitation was already accepted
	ErrInvitationAccepted = errors.New("invitation already accepted")
)
