package projects

import (
	"errors"
	"time"
)

// TemplateType selects how a project's page content is interpreted and
// rendered.
type TemplateType string

const (
	TemplateDocs      TemplateType = "docs"
	TemplateChangelog TemplateType = "changelog"
	TemplateAPIDocs   TemplateType = "api-docs"
	TemplateGuides    TemplateType = "guides"
)

// Valid reports whether the template type is one of the known types.
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateDocs, TemplateChangelog, TemplateAPIDocs, TemplateGuides:
		return true
	}
	return false
}

// Visibility controls who can view a published project.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Project represents one documentation site owned by a company
type Project struct {
	ID           string       `json:"id"`
	CompanyID    string       `json:"company_id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description,omitempty"`
	TemplateType TemplateType `json:"template_type"`
	Visibility   Visibility   `json:"visibility"`
	Published    bool         `json:"published"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Page represents one page of a project. Content is an opaque text blob;
// for api-docs projects it holds the serialized endpoint collection.
type Page struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProjectRequest represents request to create a project
type CreateProjectRequest struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	TemplateType TemplateType `json:"template_type"`
	Visibility   Visibility   `json:"visibility,omitempty"`
}

// UpdateProjectRequest represents request to update a project
type UpdateProjectRequest struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Visibility  *Visibility `json:"visibility,omitempty"`
	Published   *bool       `json:"published,omitempty"`
}

// CreatePageRequest represents request to create a page
type CreatePageRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// UpdatePageRequest represents request to update a page
type UpdatePageRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Position *int    `json:"position,omitempty"`
}

var (
	// ErrProjectNotFound indicates the project does not exist
	ErrProjectNotFound = errors.New("project not found")

	// ErrPageNotFound indicates the page does not exist
	ErrPageNotFound = errors.New("page not found")

	// ErrInvalidTemplateType indicates an unknown template type
	ErrInvalidTemplateType = errors.New("invalid template type")
)
