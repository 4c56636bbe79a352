package company

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMembers(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "company_id", "user_id", "role", "invited_by", "joined_at", "created_at"}).
		AddRow("mem_1", "cmp_1", "usr_1", "owner", nil, now, now).
		AddRow("mem_2", "cmp_1", "usr_2", "member", "usr_1", now, now)

	mock.ExpectQuery("SELECT (.+) FROM company_members").
		WithArgs("cmp_1").
		WillReturnRows(rows)

	members, err := svc.ListMembers("cmp_1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, RoleOwner, members[0].Role)
	require.NotNil(t, members[1].InvitedBy)
	assert.Equal(t, "usr_1", *members[1].InvitedBy)
}

func TestGetMemberNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM company_members").
		WithArgs("cmp_1", "usr_missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetMember("cmp_1", "usr_missing")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestAddMemberAlreadyExists(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("INSERT INTO company_members").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.AddMember("cmp_1", "usr_1", RoleMember, nil)
	assert.ErrorIs(t, err, ErrMemberExists)
}

func TestUpdateMemberRole(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("UPDATE company_members SET role").
		WithArgs(RoleAdmin, "cmp_1", "usr_2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.UpdateMemberRole("cmp_1", "usr_2", RoleAdmin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMemberNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("DELETE FROM company_members").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.RemoveMember("cmp_1", "usr_missing")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCreateInvitationSetsTokenAndExpiry(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("INSERT INTO company_invitations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	invitation := &Invitation{CompanyID: "cmp_1", Email: "jo@example.com", Role: RoleMember, InvitedBy: "usr_1"}
	require.NoError(t, svc.CreateInvitation(invitation))

	assert.NotEmpty(t, invitation.ID)
	assert.NotEmpty(t, invitation.Token)
	assert.False(t, invitation.InvitedAt.IsZero())
	assert.Equal(t, invitation.InvitedAt.Add(InvitationTTL), invitation.ExpiresAt)
}

func TestGetInvitationNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM company_invitations").
		WithArgs("tok_missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetInvitation("tok_missing")
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestAcceptInvitation(t *testing.T) {
	svc, mock := newTestService(t)

	expires := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{"id", "company_id", "email", "role", "expires_at", "accepted_at"}).
		AddRow("inv_1", "cmp_1", "jo@example.com", "member", expires, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM company_invitations").
		WithArgs("tok_1").
		WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO company_members").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE company_invitations SET accepted_at").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.AcceptInvitation("tok_1", "usr_2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptInvitationExpired(t *testing.T) {
	svc, mock := newTestService(t)

	expires := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "company_id", "email", "role", "expires_at", "accepted_at"}).
		AddRow("inv_1", "cmp_1", "jo@example.com", "member", expires, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM company_invitations").
		WithArgs("tok_1").
		WillReturnRows(rows)
	mock.ExpectRollback()

	err := svc.AcceptInvitation("tok_1", "usr_2")
	assert.ErrorIs(t, err, ErrInvitationExpired)
}

func TestAcceptInvitationAlreadyAccepted(t *testing.T) {
	svc, mock := newTestService(t)

	accepted := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "company_id", "email", "role", "expires_at", "accepted_at"}).
		AddRow("inv_1", "cmp_1", "jo@example.com", "member", time.Now().Add(time.Hour), accepted)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM company_invitations").
		WithArgs("tok_1").
		WillReturnRows(rows)
	mock.ExpectRollback()

	err := svc.AcceptInvitation("tok_1", "usr_2")
	assert.ErrorIs(t, err, ErrInvitationAccepted)
}

func TestCleanupExpiredInvitations(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("DELETE FROM company_invitations WHERE expires_at").
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := svc.CleanupExpiredInvitations()
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
