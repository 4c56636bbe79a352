package company

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dochub-io/dochub/pkg/storage"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(storage.NewDB(db, "sqlite3")), mock
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple name",
			input:    "Acme",
			expected: "acme",
		},
		{
			name:     "name with spaces",
			input:    "Acme Widgets Inc",
			expected: "acme-widgets-inc",
		},
		{
			name:     "name with invalid chars",
			input:    "Acme@Widgets!",
			expected: "acmewidgets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, generateSlug(tt.input))
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("superuser").Valid())
}

func TestCreateCompany(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("INSERT INTO companies").
		WillReturnResult(sqlmock.NewResult(0, 1))

	company := &Company{Name: "Acme Widgets"}
	err := svc.CreateCompany(company)
	require.NoError(t, err)

	assert.NotEmpty(t, company.ID)
	assert.Equal(t, "acme-widgets", company.Slug)
	assert.Equal(t, StatusActive, company.Status)
	assert.True(t, company.IsActive)
	assert.False(t, company.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCompanyAddsOwnerMember(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("INSERT INTO companies").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO company_members").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ownerID := "usr_1"
	company := &Company{Name: "Acme", OwnerID: &ownerID}
	require.NoError(t, svc.CreateCompany(company))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompany(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "name", "slug", "display_name", "description", "owner_id",
		"status", "is_active", "settings", "created_at", "updated_at",
	}).AddRow("cmp_1", "Acme", "acme", "Acme Inc", "", nil, "active", true, []byte(`{"theme":"dark"}`), now, now)

	mock.ExpectQuery("SELECT (.+) FROM companies").
		WithArgs("cmp_1").
		WillReturnRows(rows)

	company, err := svc.GetCompany("cmp_1")
	require.NoError(t, err)
	assert.Equal(t, "acme", company.Slug)
	assert.Equal(t, map[string]any{"theme": "dark"}, company.Settings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompanyNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM companies").
		WithArgs("cmp_missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetCompany("cmp_missing")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestListCompanies(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "name", "slug", "display_name", "description", "owner_id",
		"status", "is_active", "settings", "created_at", "updated_at",
	}).
		AddRow("cmp_2", "Beta", "beta", "Beta", "", nil, "active", true, []byte(`{}`), now, now).
		AddRow("cmp_1", "Acme", "acme", "Acme", "", nil, "active", true, []byte(`{}`), now, now)

	mock.ExpectQuery("SELECT DISTINCT (.+) FROM companies").
		WithArgs("usr_1").
		WillReturnRows(rows)

	companies, err := svc.ListCompanies("usr_1")
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "beta", companies[0].Slug)
}

func TestUpdateCompanyNoFieldsIsNoOp(t *testing.T) {
	svc, mock := newTestService(t)

	err := svc.UpdateCompany("cmp_1", &UpdateCompanyRequest{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCompany(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("UPDATE companies SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	displayName := "Acme International"
	err := svc.UpdateCompany("cmp_1", &UpdateCompanyRequest{DisplayName: &displayName})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCompanyNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("UPDATE companies SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	displayName := "Acme"
	err := svc.UpdateCompany("cmp_missing", &UpdateCompanyRequest{DisplayName: &displayName})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestDeleteCompanySoftDeletes(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("UPDATE companies SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.DeleteCompany("cmp_1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
