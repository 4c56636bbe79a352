package projects

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dochub-io/dochub/pkg/storage"
)

// Service implements project and page management backed by SQL storage.
type Service struct {
	db *storage.DB
}

// NewService creates a new project service.
func NewService(db *storage.DB) *Service {
	return &Service{db: db}
}

// CreateProject creates a new project for a company
func (s *Service) CreateProject(companyID string, req *CreateProjectRequest) (*Project, error) {
	if !req.TemplateType.Valid() {
		return nil, ErrInvalidTemplateType
	}

	now := time.Now().UTC()
	project := &Project{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Name:         req.Name,
		Slug:         generateSlug(req.Name),
		Description:  req.Description,
		TemplateType: req.TemplateType,
		Visibility:   req.Visibility,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if project.Visibility == "" {
		project.Visibility = VisibilityPrivate
	}

	query := s.db.Rebind(`
		INSERT INTO projects (id, company_id, name, slug, description, template_type, visibility, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.Exec(query, project.ID, project.CompanyID, project.Name, project.Slug,
		project.Description, project.TemplateType, project.Visibility, project.Published,
		project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject retrieves a project by ID
func (s *Service) GetProject(id string) (*Project, error) {
	query := s.db.Rebind(`
		SELECT id, company_id, name, slug, description, template_type, visibility, published, created_at, updated_at
		FROM projects
		WHERE id = ?
	`)
	return s.scanProject(s.db.QueryRow(query, id))
}

// GetProjectBySlug retrieves a project by company and slug
func (s *Service) GetProjectBySlug(companyID, slug string) (*Project, error) {
	query := s.db.Rebind(`
		SELECT id, company_id, name, slug, description, template_type, visibility, published, created_at, updated_at
		FROM projects
		WHERE company_id = ? AND slug = ?
	`)
	return s.scanProject(s.db.QueryRow(query, companyID, slug))
}

func (s *Service) scanProject(row *sql.Row) (*Project, error) {
	project := &Project{}
	err := row.Scan(
		&project.ID, &project.CompanyID, &project.Name, &project.Slug, &project.Description,
		&project.TemplateType, &project.Visibility, &project.Published,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListProjects lists a company's projects, newest first
func (s *Service) ListProjects(companyID string) ([]*Project, error) {
	query := s.db.Rebind(`
		SELECT id, company_id, name, slug, description, template_type, visibility, published, created_at, updated_at
		FROM projects
		WHERE company_id = ?
		ORDER BY created_at DESC
	`)
	rows, err := s.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project := &Project{}
		if err := rows.Scan(
			&project.ID, &project.CompanyID, &project.Name, &project.Slug, &project.Description,
			&project.TemplateType, &project.Visibility, &project.Published,
			&project.CreatedAt, &project.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// UpdateProject updates mutable project fields. The template type is
// fixed at creation.
func (s *Service) UpdateProject(id string, updates *UpdateProjectRequest) error {
	setClauses := []string{}
	args := []interface{}{}

	if updates.Name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *updates.Name)
	}
	if updates.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, *updates.Description)
	}
	if updates.Visibility != nil {
		setClauses = append(setClauses, "visibility = ?")
		args = append(args, *updates.Visibility)
	}
	if updates.Published != nil {
		setClauses = append(setClauses, "published = ?")
		args = append(args, *updates.Published)
	}

	if len(setClauses) == 0 {
		return nil // Nothing to update
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC())

	args = append(args, id)
	query := s.db.Rebind(fmt.Sprintf("UPDATE projects SET %s WHERE id = ?", strings.Join(setClauses, ", ")))

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// DeleteProject deletes a project and its pages
func (s *Service) DeleteProject(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.db.Rebind(`DELETE FROM pages WHERE project_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete pages: %w", err)
	}

	result, err := tx.Exec(s.db.Rebind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return tx.Commit()
}

// CreatePage appends a page to a project at the next position
func (s *Service) CreatePage(projectID string, req *CreatePageRequest) (*Page, error) {
	now := time.Now().UTC()
	page := &Page{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     req.Title,
		Slug:      generateSlug(req.Title),
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := s.db.Rebind(`SELECT COALESCE(MAX(position) + 1, 0) FROM pages WHERE project_id = ?`)
	if err := s.db.QueryRow(query, projectID).Scan(&page.Position); err != nil {
		return nil, fmt.Errorf("failed to determine page position: %w", err)
	}

	query = s.db.Rebind(`
		INSERT INTO pages (id, project_id, title, slug, content, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.Exec(query, page.ID, page.ProjectID, page.Title, page.Slug,
		page.Content, page.Position, page.CreatedAt, page.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return page, nil
}

// GetPage retrieves a page by project and slug
func (s *Service) GetPage(projectID, slug string) (*Page, error) {
	query := s.db.Rebind(`
		SELECT id, project_id, title, slug, content, position, created_at, updated_at
		FROM pages
		WHERE project_id = ? AND slug = ?
	`)
	page := &Page{}
	err := s.db.QueryRow(query, projectID, slug).Scan(
		&page.ID, &page.ProjectID, &page.Title, &page.Slug, &page.Content,
		&page.Position, &page.CreatedAt, &page.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return page, nil
}

// ListPages lists a project's pages in display order
func (s *Service) ListPages(projectID string) ([]*Page, error) {
	query := s.db.Rebind(`
		SELECT id, project_id, title, slug, content, position, created_at, updated_at
		FROM pages
		WHERE project_id = ?
		ORDER BY position ASC
	`)
	rows, err := s.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*Page
	for rows.Next() {
		page := &Page{}
		if err := rows.Scan(
			&page.ID, &page.ProjectID, &page.Title, &page.Slug, &page.Content,
			&page.Position, &page.CreatedAt, &page.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// UpdatePage updates mutable page fields
func (s *Service) UpdatePage(projectID, slug string, updates *UpdatePageRequest) error {
	setClauses := []string{}
	args := []interface{}{}

	if updates.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *updates.Title)
	}
	if updates.Content != nil {
		setClauses = append(setClauses, "content = ?")
		args = append(args, *updates.Content)
	}
	if updates.Position != nil {
		setClauses = append(setClauses, "position = ?")
		args = append(args, *updates.Position)
	}

	if len(setClauses) == 0 {
		return nil // Nothing to update
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC())

	args = append(args, projectID, slug)
	query := s.db.Rebind(fmt.Sprintf("UPDATE pages SET %s WHERE project_id = ? AND slug = ?", strings.Join(setClauses, ", ")))

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPageNotFound
	}

	return nil
}

// SavePageContent replaces a page's content text
func (s *Service) SavePageContent(projectID, slug, content string) error {
	return s.UpdatePage(projectID, slug, &UpdatePageRequest{Content: &content})
}

// DeletePage removes a page
func (s *Service) DeletePage(projectID, slug string) error {
	query := s.db.Rebind(`DELETE FROM pages WHERE project_id = ? AND slug = ?`)
	result, err := s.db.Exec(query, projectID, slug)
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPageNotFound
	}

	return nil
}

// CountProjects returns the number of projects owned by a company
func (s *Service) CountProjects(companyID string) (int, error) {
	query := s.db.Rebind(`SELECT COUNT(*) FROM projects WHERE company_id = ?`)
	var count int
	if err := s.db.QueryRow(query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// CountPages returns the number of pages in a project
func (s *Service) CountPages(projectID string) (int, error) {
	query := s.db.Rebind(`SELECT COUNT(*) FROM pages WHERE project_id = ?`)
	var count int
	if err := s.db.QueryRow(query, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// generateSlug derives a URL-safe slug from a name
func generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, slug)
	return slug
}
