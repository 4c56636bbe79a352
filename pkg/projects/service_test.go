package projects

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

func TestTemplateTypeValid(t *testing.T) {
	assert.True(t, TemplateDocs.Valid())
	assert.True(t, TemplateChangelog.Valid())
	assert.True(t, TemplateAPIDocs.Valid())
	assert.True(t, TemplateGuides.Valid())
	assert.False(t, TemplateType("wiki").Valid())
}

func TestCreateProject(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("INSERT INTO projects").
		WillReturnResult(sqlmock.NewResult(0, 1))

	project, err := svc.CreateProject("cmp_1", &CreateProjectRequest{
		Name:         "API Reference",
		TemplateType: TemplateAPIDocs,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "cmp_1", project.CompanyID)
	assert.Equal(t, "api-reference", project.Slug)
	assert.Equal(t, TemplateAPIDocs, project.TemplateType)
	assert.Equal(t, VisibilityPrivate, project.Visibility)
	assert.False(t, project.Published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProjectRejectsUnknownTemplate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProject("cmp_1", &CreateProjectRequest{
		Name:         "Wiki",
		TemplateType: "wiki",
	})
	assert.ErrorIs(t, err, ErrInvalidTemplateType)
}

func TestGetProjectNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM projects").
		WithArgs("proj_missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetProject("proj_missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func projectRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "company_id", "name", "slug", "description", "template_type",
		"visibility", "published", "created_at", "updated_at",
	}).AddRow("proj_1", "cmp_1", "API Reference", "api-reference", "", "api-docs", "public", true, now, now)
}

func TestGetProjectBySlug(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM projects").
		WithArgs("cmp_1", "api-reference").
		WillReturnRows(projectRows())

	project, err := svc.GetProjectBySlug("cmp_1", "api-reference")
	require.NoError(t, err)
	assert.Equal(t, TemplateAPIDocs, project.TemplateType)
	assert.True(t, project.Published)
}

func TestUpdateProjectPublish(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("UPDATE projects SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	published := true
	require.NoError(t, svc.UpdateProject("proj_1", &UpdateProjectRequest{Published: &published}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectNoFieldsIsNoOp(t *testing.T) {
	svc, mock := newTestService(t)

	require.NoError(t, svc.UpdateProject("proj_1", &UpdateProjectRequest{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProjectCascadesPages(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pages").
		WithArgs("proj_1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM projects").
		WithArgs("proj_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteProject("proj_1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProjectNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pages").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM projects").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.DeleteProject("proj_missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestCreatePageAssignsNextPosition(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("proj_1").
		WillReturnRows(sqlmock.NewRows([]string{"position"}).AddRow(2))
	mock.ExpectExec("INSERT INTO pages").
		WillReturnResult(sqlmock.NewResult(0, 1))

	page, err := svc.CreatePage("proj_1", &CreatePageRequest{Title: "Getting Started"})
	require.NoError(t, err)

	assert.Equal(t, "getting-started", page.Slug)
	assert.Equal(t, 2, page.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPageNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM pages").
		WithArgs("proj_1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetPage("proj_1", "missing")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestListPagesOrdered(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "project_id", "title", "slug", "content", "position", "created_at", "updated_at"}).
		AddRow("page_1", "proj_1", "Overview", "overview", "", 0, now, now).
		AddRow("page_2", "proj_1", "API Reference", "api-reference", "[]", 1, now, now)

	mock.ExpectQuery("SELECT (.+) FROM pages").
		WithArgs("proj_1").
		WillReturnRows(rows)

	pages, err := svc.ListPages("proj_1")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "overview", pages[0].Slug)
	assert.Equal(t, 1, pages[1].Position)
}

func TestSavePageContent(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("UPDATE pages SET content").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.SavePageContent("proj_1", "api-reference", `[{"method":"GET"}]`))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePageContentNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("UPDATE pages SET content").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.SavePageContent("proj_1", "missing", "[]")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestDeletePage(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("DELETE FROM pages").
		WithArgs("proj_1", "overview").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.DeletePage("proj_1", "overview"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountProjects(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM projects`).
		WithArgs("cmp_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := svc.CountProjects("cmp_1")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestCountPages(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pages`).
		WithArgs("proj_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := svc.CountPages("proj_1")
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}
