package handlers

import (
	"errors"
	"strconv"

	"cooploan/internal/core/services"
	"cooploan/internal/pkg/pagination"
	"cooploan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService       *services.MemberService
	loanService         *services.LoanService
	repaymentService    *services.RepaymentService
	contributionService *services.ContributionService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(
	memberService *services.MemberService,
	loanService *services.LoanService,
	repaymentService *services.RepaymentService,
	contributionService *services.ContributionService,
) *MemberHandler {
	return &MemberHandler{
		memberService:       memberService,
		loanService:         loanService,
		repaymentService:    repaymentService,
		contributionService: contributionService,
	}
}

// CreateMemberRequest represents member creation request
type CreateMemberRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	OrganizationID *uint  `json:"organizationId"`
	IsAdmin        bool   `json:"isAdmin"`
	CanAddMembers  bool   `json:"canAddMembers"`
}

// UpdateMemberRequest represents member update request
type UpdateMemberRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	OrganizationID *uint   `json:"organizationId"`
	IsAdmin        *bool   `json:"isAdmin"`
	CanAddMembers  *bool   `json:"canAddMembers"`
	IsActive       *bool   `json:"isActive"`
}

// Create creates a new member
// @Summary Create member
// @Description Create a new member account
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.CreateMemberInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		OrganizationID: req.OrganizationID,
		IsAdmin:        req.IsAdmin,
		CanAddMembers:  req.CanAddMembers,
	}

	member, err := h.memberService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member,
	})
}

// List lists members
// @Summary List members
// @Description List members, optionally filtered by organization
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param organizationId query int false "Filter by organization ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	if organizationID := c.Query("organizationId"); organizationID != "" {
		id, err := strconv.ParseUint(organizationID, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid organization ID")
		}
		members, err := h.memberService.ListByOrganization(c.Context(), uint(id))
		if err != nil {
			return response.InternalServerError(c, "Failed to list members")
		}
		return response.Success(c, "Members retrieved successfully", fiber.Map{"members": members})
	}

	params := pagination.GetParams(c)

	members, total, err := h.memberService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", pagination.NewResponse(members, params, total))
}

// Get gets a member by ID
// @Summary Get member
// @Description Get a member with their organization
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to get member")
		}
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member,
	})
}

// Loans lists a member's loans
// @Summary List member loans
// @Description List loans belonging to a member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/loans [get]
func (h *MemberHandler) Loans(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if _, err := h.memberService.GetByID(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	loans, err := h.loanService.ListByMember(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// Repayments lists a member's repayments
// @Summary List member repayments
// @Description List repayments across all of a member's loans
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/repayments [get]
func (h *MemberHandler) Repayments(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if _, err := h.memberService.GetByID(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	repayments, err := h.repaymentService.ListByMember(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to list repayments")
	}

	return response.Success(c, "Repayments retrieved successfully", fiber.Map{
		"repayments": repayments,
	})
}

// Contributions lists a member's monthly contributions
// @Summary List member contributions
// @Description List monthly contributions of a member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/contributions [get]
func (h *MemberHandler) Contributions(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	contributions, err := h.contributionService.ListByMember(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to list contributions")
		}
	}

	return response.Success(c, "Contributions retrieved successfully", fiber.Map{
		"contributions": contributions,
	})
}

// Update updates a member
// @Summary Update member
// @Description Apply a partial update to a member (admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body UpdateMemberRequest true "Member data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateMemberInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		OrganizationID: req.OrganizationID,
		IsAdmin:        req.IsAdmin,
		CanAddMembers:  req.CanAddMembers,
		IsActive:       req.IsActive,
	}

	member, err := h.memberService.Update(c.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member,
	})
}

// Delete deletes a member
// @Summary Delete member
// @Description Delete a member without loans or contributions (admin only)
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrMemberInUse):
			return response.Conflict(c, "Member still has loans or contributions")
		default:
			return response.InternalServerError(c, "Failed to delete member")
		}
	}

	return response.NoContent(c)
}
