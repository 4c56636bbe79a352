package api

import (
	"sort"

	"github.com/dochub-io/dochub/pkg/company"
	"github.com/dochub-io/dochub/pkg/projects"
)

// fakeCompanies is an in-memory CompanyService for handler tests
type fakeCompanies struct {
	companies   map[string]*company.Company
	members     map[string]*company.Member     // keyed companyID/userID
	invitations map[string]*company.Invitation // keyed by token
	created     []*company.Company
	err         error
}

func newFakeCompanies() *fakeCompanies {
	return &fakeCompanies{
		companies:   make(map[string]*company.Company),
		members:     make(map[string]*company.Member),
		invitations: make(map[string]*company.Invitation),
	}
}

func (f *fakeCompanies) CreateCompany(c *company.Company) error {
	if f.err != nil {
		return f.err
	}
	c.ID = "cmp_new"
	c.Slug = "new-co"
	f.companies[c.ID] = c
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCompanies) GetCompany(id string) (*company.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanies) GetCompanyBySlug(slug string) (*company.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.companies {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, company.ErrCompanyNotFound
}

func (f *fakeCompanies) ListCompanies(userID string) ([]*company.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*company.Company
	for _, c := range f.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCompanies) UpdateCompany(id string, updates *company.UpdateCompanyRequest) error {
	c, err := f.GetCompany(id)
	if err != nil {
		return err
	}
	if updates.DisplayName != nil {
		c.DisplayName = *updates.DisplayName
	}
	if updates.Description != nil {
		c.Description = *updates.Description
	}
	return nil
}

func (f *fakeCompanies) DeleteCompany(id string) error {
	if _, err := f.GetCompany(id); err != nil {
		return err
	}
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanies) ListMembers(companyID string) ([]*company.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*company.Member
	for _, m := range f.members {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeCompanies) GetMember(companyID, userID string) (*company.Member, error) {
	m, ok := f.members[companyID+"/"+userID]
	if !ok {
		return nil, company.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeCompanies) AddMember(companyID, userID string, role company.Role, invitedBy *string) error {
	f.members[companyID+"/"+userID] = &company.Member{CompanyID: companyID, UserID: userID, Role: role}
	return nil
}

func (f *fakeCompanies) UpdateMemberRole(companyID, userID string, role company.Role) error {
	m, ok := f.members[companyID+"/"+userID]
	if !ok {
		return company.ErrMemberNotFound
	}
	m.Role = role
	return nil
}

func (f *fakeCompanies) RemoveMember(companyID, userID string) error {
	if _, ok := f.members[companyID+"/"+userID]; !ok {
		return company.ErrMemberNotFound
	}
	delete(f.members, companyID+"/"+userID)
	return nil
}

func (f *fakeCompanies) CreateInvitation(invitation *company.Invitation) error {
	if f.err != nil {
		return f.err
	}
	invitation.ID = "inv_new"
	invitation.Token = "tok_new"
	f.invitations[invitation.Token] = invitation
	return nil
}

func (f *fakeCompanies) ListInvitations(companyID string) ([]*company.Invitation, error) {
	var out []*company.Invitation
	for _, inv := range f.invitations {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeCompanies) AcceptInvitation(token, userID string) error {
	inv, ok := f.invitations[token]
	if !ok {
		return company.ErrInvitationNotFound
	}
	return f.AddMember(inv.CompanyID, userID, inv.Role, nil)
}

func (f *fakeCompanies) RevokeInvitation(id string) error {
	for token, inv := range f.invitations {
		if inv.ID == id {
			delete(f.invitations, token)
			return nil
		}
	}
	return company.ErrInvitationNotFound
}

// fakeProjects is an in-memory ProjectService for handler tests
type fakeProjects struct {
	projects map[string]*projects.Project
	pages    map[string]*projects.Page // keyed projectID/slug
	saved    map[string]string         // content saves, keyed projectID/slug
	err      error
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{
		projects: make(map[string]*projects.Project),
		pages:    make(map[string]*projects.Page),
		saved:    make(map[string]string),
	}
}

func (f *fakeProjects) CreateProject(companyID string, req *projects.CreateProjectRequest) (*projects.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !req.TemplateType.Valid() {
		return nil, projects.ErrInvalidTemplateType
	}
	p := &projects.Project{
		ID:           "proj_new",
		CompanyID:    companyID,
		Name:         req.Name,
		Slug:         "new-project",
		TemplateType: req.TemplateType,
		Visibility:   projects.VisibilityPrivate,
	}
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeProjects) GetProject(id string) (*projects.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.projects[id]
	if !ok {
		return nil, projects.ErrProjectNotFound
	}
	return p, nil
}

func (f *fakeProjects) GetProjectBySlug(companyID, slug string) (*projects.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.projects {
		if p.CompanyID == companyID && p.Slug == slug {
			return p, nil
		}
	}
	return nil, projects.ErrProjectNotFound
}

func (f *fakeProjects) ListProjects(companyID string) ([]*projects.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*projects.Project
	for _, p := range f.projects {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjects) UpdateProject(id string, updates *projects.UpdateProjectRequest) error {
	p, err := f.GetProject(id)
	if err != nil {
		return err
	}
	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Published != nil {
		p.Published = *updates.Published
	}
	if updates.Visibility != nil {
		p.Visibility = *updates.Visibility
	}
	return nil
}

func (f *fakeProjects) DeleteProject(id string) error {
	if _, err := f.GetProject(id); err != nil {
		return err
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjects) CreatePage(projectID string, req *projects.CreatePageRequest) (*projects.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := &projects.Page{
		ID:        "page_new",
		ProjectID: projectID,
		Title:     req.Title,
		Slug:      "new-page",
		Content:   req.Content,
	}
	f.pages[projectID+"/"+p.Slug] = p
	return p, nil
}

func (f *fakeProjects) GetPage(projectID, slug string) (*projects.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.pages[projectID+"/"+slug]
	if !ok {
		return nil, projects.ErrPageNotFound
	}
	return p, nil
}

func (f *fakeProjects) ListPages(projectID string) ([]*projects.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*projects.Page
	for _, p := range f.pages {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeProjects) UpdatePage(projectID, slug string, updates *projects.UpdatePageRequest) error {
	p, err := f.GetPage(projectID, slug)
	if err != nil {
		return err
	}
	if updates.Title != nil {
		p.Title = *updates.Title
	}
	if updates.Content != nil {
		p.Content = *updates.Content
	}
	if updates.Position != nil {
		p.Position = *updates.Position
	}
	return nil
}

func (f *fakeProjects) SavePageContent(projectID, slug, content string) error {
	p, err := f.GetPage(projectID, slug)
	if err != nil {
		return err
	}
	p.Content = content
	f.saved[projectID+"/"+slug] = content
	return nil
}

func (f *fakeProjects) DeletePage(projectID, slug string) error {
	if _, err := f.GetPage(projectID, slug); err != nil {
		return err
	}
	delete(f.pages, projectID+"/"+slug)
	return nil
}
