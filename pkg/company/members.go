package company

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvitationTTL is how long an invitation stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

// ListMembers retrieves all members of a company, oldest first
func (s *Service) ListMembers(companyID string) ([]*Member, error) {
	query := s.db.Rebind(`
		SELECT id, company_id, user_id, role, invited_by, joined_at, created_at
		FROM company_members
		WHERE company_id = ?
		ORDER BY created_at ASC
	`)
	rows, err := s.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(
			&member.ID, &member.CompanyID, &member.UserID, &member.Role,
			&member.InvitedBy, &member.JoinedAt, &member.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// GetMember retrieves a specific member
func (s *Service) GetMember(companyID, userID string) (*Member, error) {
	query := s.db.Rebind(`
		SELECT id, company_id, user_id, role, invited_by, joined_at, created_at
		FROM company_members
		WHERE company_id = ? AND user_id = ?
	`)
	member := &Member{}
	err := s.db.QueryRow(query, companyID, userID).Scan(
		&member.ID, &member.CompanyID, &member.UserID, &member.Role,
		&member.InvitedBy, &member.JoinedAt, &member.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// AddMember adds a user to a company
func (s *Service) AddMember(companyID, userID string, role Role, invitedBy *string) error {
	now := time.Now().UTC()
	query := s.db.Rebind(`
		INSERT INTO company_members (id, company_id, user_id, role, invited_by, joined_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (company_id, user_id) DO NOTHING
	`)
	result, err := s.db.Exec(query, uuid.NewString(), companyID, userID, role, invitedBy, now, now)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMemberExists
	}

	return nil
}

// UpdateMemberRole updates a member's role
func (s *Service) UpdateMemberRole(companyID, userID string, role Role) error {
	query := s.db.Rebind(`UPDATE company_members SET role = ? WHERE company_id = ? AND user_id = ?`)
	result, err := s.db.Exec(query, role, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

// RemoveMember removes a user from a company
func (s *Service) RemoveMember(companyID, userID string) error {
	query := s.db.Rebind(`DELETE FROM company_members WHERE company_id = ? AND user_id = ?`)
	result, err := s.db.Exec(query, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

// CreateInvitation creates a new invitation; re-inviting the same email
// rotates the token and extends the expiry.
func (s *Service) CreateInvitation(invitation *Invitation) error {
	if invitation.ID == "" {
		invitation.ID = uuid.NewString()
	}
	invitation.Token = uuid.NewString()

	if invitation.InvitedAt.IsZero() {
		invitation.InvitedAt = time.Now().UTC()
	}
	if invitation.ExpiresAt.IsZero() {
		invitation.ExpiresAt = invitation.InvitedAt.Add(InvitationTTL)
	}

	query := s.db.Rebind(`
		INSERT INTO company_invitations (id, company_id, email, role, token, invited_by, invited_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (company_id, email) DO UPDATE
		SET token = EXCLUDED.token, invited_at = EXCLUDED.invited_at, expires_at = EXCLUDED.expires_at
	`)
	_, err := s.db.Exec(query, invitation.ID, invitation.CompanyID, invitation.Email, invitation.Role,
		invitation.Token, invitation.InvitedBy, invitation.InvitedAt, invitation.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// GetInvitation retrieves an invitation by token
func (s *Service) GetInvitation(token string) (*Invitation, error) {
	query := s.db.Rebind(`
		SELECT id, company_id, email, role, token, invited_by, invited_at, expires_at, accepted_at, accepted_by
		FROM company_invitations
		WHERE token = ?
	`)
	invitation := &Invitation{}
	err := s.db.QueryRow(query, token).Scan(
		&invitation.ID, &invitation.CompanyID, &invitation.Email, &invitation.Role,
		&invitation.Token, &invitation.InvitedBy, &invitation.InvitedAt, &invitation.ExpiresAt,
		&invitation.AcceptedAt, &invitation.AcceptedBy,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return invitation, nil
}

// ListInvitations lists pending invitations for a company
func (s *Service) ListInvitations(companyID string) ([]*Invitation, error) {
	query := s.db.Rebind(`
		SELECT id, company_id, email, role, token, invited_by, invited_at, expires_at, accepted_at, accepted_by
		FROM company_invitations
		WHERE company_id = ? AND accepted_at IS NULL
		ORDER BY invited_at DESC
	`)
	rows, err := s.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*Invitation
	for rows.Next() {
		invitation := &Invitation{}
		if err := rows.Scan(
			&invitation.ID, &invitation.CompanyID, &invitation.Email, &invitation.Role,
			&invitation.Token, &invitation.InvitedBy, &invitation.InvitedAt, &invitation.ExpiresAt,
			&invitation.AcceptedAt, &invitation.AcceptedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	return invitations, rows.Err()
}

// AcceptInvitation accepts an invitation and adds the user to the company
func (s *Service) AcceptInvitation(token, userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.db.Rebind(`
		SELECT id, company_id, email, role, expires_at, accepted_at
		FROM company_invitations
		WHERE token = ?
	`)
	var id, companyID, email string
	var role Role
	var expiresAt time.Time
	var acceptedAt sql.NullTime

	err = tx.QueryRow(query, token).Scan(&id, &companyID, &email, &role, &expiresAt, &acceptedAt)
	if err == sql.ErrNoRows {
		return ErrInvitationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get invitation: %w", err)
	}

	if acceptedAt.Valid {
		return ErrInvitationAccepted
	}
	if time.Now().After(expiresAt) {
		return ErrInvitationExpired
	}

	now := time.Now().UTC()
	query = s.db.Rebind(`
		INSERT INTO company_members (id, company_id, user_id, role, joined_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (company_id, user_id) DO NOTHING
	`)
	if _, err := tx.Exec(query, uuid.NewString(), companyID, userID, role, now, now); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	query = s.db.Rebind(`UPDATE company_invitations SET accepted_at = ?, accepted_by = ? WHERE id = ?`)
	if _, err := tx.Exec(query, now, userID, id); err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	return tx.Commit()
}

// RevokeInvitation revokes a pending invitation
func (s *Service) RevokeInvitation(id string) error {
	query := s.db.Rebind(`DELETE FROM company_invitations WHERE id = ? AND accepted_at IS NULL`)
	result, err := s.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrInvitationNotFound
	}

	return nil
}

// CleanupExpiredInvitations removes expired unaccepted invitations and
// returns how many were deleted.
func (s *Service) CleanupExpiredInvitations() (int64, error) {
	query := s.db.Rebind(`DELETE FROM company_invitations WHERE expires_at < ? AND accepted_at IS NULL`)
	result, err := s.db.Exec(query, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired invitations: %w", err)
	}
	return result.RowsAffected()
}
