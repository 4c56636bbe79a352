package api

import (
	"github.com/dochub-io/dochub/pkg/company"
	"github.com/dochub-io/dochub/pkg/projects"
)

// CompanyService is the company.Service surface the handlers depend on
type CompanyService interface {
	CreateCompany(c *company.Company) error
	GetCompany(id string) (*company.Company, error)
	GetCompanyBySlug(slug string) (*company.Company, error)
	ListCompanies(userID string) ([]*company.Company, error)
	UpdateCompany(id string, updates *company.UpdateCompanyRequest) error
	DeleteCompany(id string) error

	ListMembers(companyID string) ([]*company.Member, error)
	GetMember(companyID, userID string) (*company.Member, error)
	AddMember(companyID, userID string, role company.Role, invitedBy *string) error
	UpdateMemberRole(companyID, userID string, role company.Role) error
	RemoveMember(companyID, userID string) error

	CreateInvitation(invitation *company.Invitation) error
	ListInvitations(companyID string) ([]*company.Invitation, error)
	AcceptInvitation(token, userID string) error
	RevokeInvitation(id string) error
}

// ProjectService is the projects.Service surface the handlers depend on
type ProjectService interface {
	CreateProject(companyID string, req *projects.CreateProjectRequest) (*projects.Project, error)
	GetProject(id string) (*projects.Project, error)
	GetProjectBySlug(companyID, slug string) (*projects.Project, error)
	ListProjects(companyID string) ([]*projects.Project, error)
	UpdateProject(id string, updates *projects.UpdateProjectRequest) error
	DeleteProject(id string) error

	CreatePage(projectID string, req *projects.CreatePageRequest) (*projects.Page, error)
	GetPage(projectID, slug string) (*projects.Page, error)
	ListPages(projectID string) ([]*projects.Page, error)
	UpdatePage(projectID, slug string, updates *projects.UpdatePageRequest) error
	SavePageContent(projectID, slug, content string) error
	DeletePage(projectID, slug string) error
}
