package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Organization errors
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationInUse    = errors.New("organization still has members")
	ErrOrganizationName     = errors.New("organization name is required")
)

// OrganizationService handles organization business logic
type OrganizationService struct {
	orgRepo    *repositories.OrganizationRepository
	memberRepo repositories.MemberRepository
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo *repositories.OrganizationRepository,
	memberRepo repositories.MemberRepository,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
	}
}

// OrganizationInput represents organization create/update input
type OrganizationInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Create creates a new organization
func (s *OrganizationService) Create(ctx context.Context, input *OrganizationInput, createdBy uint) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrOrganizationName
	}

	org := &models.Organization{
		Name:      name,
		CreatedBy: createdBy,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	log.Printf("✅ Organization created: %s (ID: %d)", org.Name, org.ID)
	return org, nil
}

// GetByID gets an organization by ID
func (s *OrganizationService) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return org, nil
}

// List lists organizations with pagination
func (s *OrganizationService) List(ctx context.Context, offset, limit int) ([]*models.Organization, int64, error) {
	return s.orgRepo.List(ctx, offset, limit)
}

// Update renames an organization
func (s *OrganizationService) Update(ctx context.Context, id uint, input *OrganizationInput) (*models.Organization, error) {
	org, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrOrganizationName
	}

	org.Name = name
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

// Delete deletes an organization. Deletion is refused while members
// still reference it.
func (s *OrganizationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.memberRepo.CountByOrganization(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrOrganizationInUse
	}

	if err := s.orgRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Organization deleted: ID %d", id)
	return nil
}
