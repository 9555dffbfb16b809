package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/adapters/persistence/repositories"
	"cooploan/internal/pkg/password"

	"gorm.io/gorm"
)

// Member errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrMemberInUse    = errors.New("member still has loans or contributions")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
)

// MemberService handles member business logic
type MemberService struct {
	memberRepo       repositories.MemberRepository
	orgRepo          *repositories.OrganizationRepository
	loanRepo         *repositories.LoanRepository
	contributionRepo *repositories.ContributionRepository
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repositories.MemberRepository,
	orgRepo *repositories.OrganizationRepository,
	loanRepo *repositories.LoanRepository,
	contributionRepo *repositories.ContributionRepository,
) *MemberService {
	return &MemberService{
		memberRepo:       memberRepo,
		orgRepo:          orgRepo,
		loanRepo:         loanRepo,
		contributionRepo: contributionRepo,
	}
}

// CreateMemberInput represents member creation input
type CreateMemberInput struct {
	Name           string `json:"name" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	OrganizationID *uint  `json:"organizationId"`
	IsAdmin        bool   `json:"isAdmin"`
	CanAddMembers  bool   `json:"canAddMembers"`
}

// UpdateMemberInput represents member update input. Nil fields are
// left unchanged.
type UpdateMemberInput struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	OrganizationID *uint   `json:"organizationId"`
	IsAdmin        *bool   `json:"isAdmin"`
	CanAddMembers  *bool   `json:"canAddMembers"`
	IsActive       *bool   `json:"isActive"`
}

// Create creates a new member account
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.MemberResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// 1. Check email uniqueness
	exists, err := s.memberRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// 2. Validate password strength
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}

	// 3. Validate organization reference
	if input.OrganizationID != nil {
		if _, err := s.orgRepo.GetByID(ctx, *input.OrganizationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOrganizationNotFound
			}
			return nil, err
		}
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create member
	member := &models.Member{
		Name:           strings.TrimSpace(input.Name),
		Email:          email,
		Password:       hashedPassword,
		OrganizationID: input.OrganizationID,
		IsAdmin:        input.IsAdmin,
		CanAddMembers:  input.CanAddMembers,
		IsActive:       true,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	// Reload to embed the organization
	created, err := s.memberRepo.GetByID(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Member created: %s (ID: %d)", created.Email, created.ID)
	return created.ToResponse(), nil
}

// GetByID gets a member with its organization
func (s *MemberService) GetByID(ctx context.Context, id uint) (*models.MemberResponse, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member.ToResponse(), nil
}

// List lists members with pagination
func (s *MemberService) List(ctx context.Context, offset, limit int) ([]*models.MemberResponse, int64, error) {
	members, total, err := s.memberRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.MemberResponse, len(members))
	for i, m := range members {
		responses[i] = m.ToResponse()
	}
	return responses, total, nil
}

// ListByOrganization lists members of an organization
func (s *MemberService) ListByOrganization(ctx context.Context, organizationID uint) ([]*models.MemberResponse, error) {
	members, err := s.memberRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.MemberResponse, len(members))
	for i, m := range members {
		responses[i] = m.ToResponse()
	}
	return responses, nil
}

// Update applies a partial update to a member
func (s *MemberService) Update(ctx context.Context, id uint, input *UpdateMemberInput) (*models.MemberResponse, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		member.Name = strings.TrimSpace(*input.Name)
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != member.Email {
			exists, err := s.memberRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailTaken
			}
			member.Email = email
		}
	}

	if input.Password != nil {
		if !password.Validate(*input.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		member.Password = hashed
	}

	if input.OrganizationID != nil {
		if _, err := s.orgRepo.GetByID(ctx, *input.OrganizationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOrganizationNotFound
			}
			return nil, err
		}
		member.OrganizationID = input.OrganizationID
	}

	if input.IsAdmin != nil {
		member.IsAdmin = *input.IsAdmin
	}
	if input.CanAddMembers != nil {
		member.CanAddMembers = *input.CanAddMembers
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	updated, err := s.memberRepo.GetByID(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// Delete deletes a member. Deletion is refused while loans or
// contributions still reference the member.
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	if _, err := s.memberRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	loanCount, err := s.loanRepo.CountByMember(ctx, id)
	if err != nil {
		return err
	}
	contributionCount, err := s.contributionRepo.CountByMember(ctx, id)
	if err != nil {
		return err
	}
	if loanCount > 0 || contributionCount > 0 {
		return ErrMemberInUse
	}

	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Member deleted: ID %d", id)
	return nil
}
