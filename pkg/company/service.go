package company

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dochub-io/dochub/pkg/storage"
)

// Service implements company management backed by SQL storage.
type Service struct {
	db *storage.DB
}

// NewService creates a new company service.
func NewService(db *storage.DB) *Service {
	return &Service{db: db}
}

// CreateCompany creates a new company and adds the owner as its first
// member.
func (s *Service) CreateCompany(company *Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	if company.Slug == "" {
		company.Slug = generateSlug(company.Name)
	}
	if company.Status == "" {
		company.Status = StatusActive
	}
	company.IsActive = true

	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	settingsJSON, err := json.Marshal(company.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	query := s.db.Rebind(`
		INSERT INTO companies (id, name, slug, display_name, description, owner_id, status, is_active, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = s.db.Exec(query, company.ID, company.Name, company.Slug, company.DisplayName,
		company.Description, company.OwnerID, company.Status, company.IsActive, settingsJSON,
		company.CreatedAt, company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	if company.OwnerID != nil {
		if err := s.AddMember(company.ID, *company.OwnerID, RoleOwner, nil); err != nil {
			return fmt.Errorf("failed to add owner member: %w", err)
		}
	}

	return nil
}

// GetCompany retrieves a company by ID
func (s *Service) GetCompany(id string) (*Company, error) {
	return s.getCompany("id", id)
}

// GetCompanyBySlug retrieves a company by slug
func (s *Service) GetCompanyBySlug(slug string) (*Company, error) {
	return s.getCompany("slug", slug)
}

func (s *Service) getCompany(column, value string) (*Company, error) {
	query := s.db.Rebind(fmt.Sprintf(`
		SELECT id, name, slug, display_name, description, owner_id, status, is_active, settings, created_at, updated_at
		FROM companies
		WHERE %s = ?
	`, column))

	company := &Company{}
	var settingsJSON []byte
	err := s.db.QueryRow(query, value).Scan(
		&company.ID, &company.Name, &company.Slug, &company.DisplayName, &company.Description,
		&company.OwnerID, &company.Status, &company.IsActive, &settingsJSON,
		&company.CreatedAt, &company.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if len(settingsJSON) > 0 {
		if err := json.Unmarshal(settingsJSON, &company.Settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
		}
	}

	return company, nil
}

// ListCompanies lists active companies the user is a member of
func (s *Service) ListCompanies(userID string) ([]*Company, error) {
	query := s.db.Rebind(`
		SELECT DISTINCT c.id, c.name, c.slug, c.display_name, c.description, c.owner_id,
		       c.status, c.is_active, c.settings, c.created_at, c.updated_at
		FROM companies c
		JOIN company_members cm ON c.id = cm.company_id
		WHERE cm.user_id = ? AND c.is_active = true
		ORDER BY c.created_at DESC
	`)
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*Company
	for rows.Next() {
		company := &Company{}
		var settingsJSON []byte
		if err := rows.Scan(
			&company.ID, &company.Name, &company.Slug, &company.DisplayName, &company.Description,
			&company.OwnerID, &company.Status, &company.IsActive, &settingsJSON,
			&company.CreatedAt, &company.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		if len(settingsJSON) > 0 {
			if err := json.Unmarshal(settingsJSON, &company.Settings); err != nil {
				return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
			}
		}
		companies = append(companies, company)
	}

	return companies, rows.Err()
}

// UpdateCompany updates mutable company fields
func (s *Service) UpdateCompany(id string, updates *UpdateCompanyRequest) error {
	setClauses := []string{}
	args := []interface{}{}

	if updates.DisplayName != nil {
		setClauses = append(setClauses, "display_name = ?")
		args = append(args, *updates.DisplayName)
	}
	if updates.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, *updates.Description)
	}
	if updates.Settings != nil {
		settingsJSON, err := json.Marshal(updates.Settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		setClauses = append(setClauses, "settings = ?")
		args = append(args, settingsJSON)
	}

	if len(setClauses) == 0 {
		return nil // Nothing to update
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC())

	args = append(args, id)
	query := s.db.Rebind(fmt.Sprintf("UPDATE companies SET %s WHERE id = ?", strings.Join(setClauses, ", ")))

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCompanyNotFound
	}

	return nil
}

// DeleteCompany soft deletes a company
func (s *Service) DeleteCompany(id string) error {
	query := s.db.Rebind(`UPDATE companies SET status = ?, is_active = false, updated_at = ? WHERE id = ?`)
	result, err := s.db.Exec(query, StatusDeleted, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCompanyNotFound
	}

	return nil
}

// generateSlug derives a URL-safe slug from a company name
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
