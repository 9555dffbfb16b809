package handlers

import (
	"errors"
	"strconv"

	"cooploan/internal/core/services"
	"cooploan/internal/pkg/pagination"
	"cooploan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OrganizationHandler handles organization endpoints
type OrganizationHandler struct {
	orgService    *services.OrganizationService
	memberService *services.MemberService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgService *services.OrganizationService, memberService *services.MemberService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:    orgService,
		memberService: memberService,
	}
}

// OrganizationRequest represents organization create/update request
type OrganizationRequest struct {
	Name string `json:"name"`
}

// Create creates a new organization
// @Summary Create organization
// @Description Create a new organization (admin only)
// @Tags Organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OrganizationRequest true "Organization data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var req OrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	memberID, _ := c.Locals("memberID").(uint)

	org, err := h.orgService.Create(c.Context(), &services.OrganizationInput{Name: req.Name}, memberID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrganizationName):
			return response.BadRequest(c, "Name is required")
		default:
			return response.InternalServerError(c, "Failed to create organization")
		}
	}

	return response.Created(c, "Organization created successfully", fiber.Map{
		"organization": org,
	})
}

// List lists organizations
// @Summary List organizations
// @Description List all organizations
// @Tags Organizations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	orgs, total, err := h.orgService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list organizations")
	}

	return response.Success(c, "Organizations retrieved successfully", pagination.NewResponse(orgs, params, total))
}

// Get gets an organization by ID
// @Summary Get organization
// @Description Get an organization by ID
// @Tags Organizations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid organization ID")
	}

	org, err := h.orgService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		default:
			return response.InternalServerError(c, "Failed to get organization")
		}
	}

	return response.Success(c, "Organization retrieved successfully", fiber.Map{
		"organization": org,
	})
}

// Members lists the members of an organization
// @Summary List organization members
// @Description List members belonging to an organization
// @Tags Organizations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /organizations/{id}/members [get]
func (h *OrganizationHandler) Members(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid organization ID")
	}

	if _, err := h.orgService.GetByID(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		default:
			return response.InternalServerError(c, "Failed to get organization")
		}
	}

	members, err := h.memberService.ListByOrganization(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members": members,
	})
}

// Update renames an organization
// @Summary Update organization
// @Description Rename an organization (admin only)
// @Tags Organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Param body body OrganizationRequest true "Organization data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /organizations/{id} [put]
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid organization ID")
	}

	var req OrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	org, err := h.orgService.Update(c.Context(), id, &services.OrganizationInput{Name: req.Name})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		case errors.Is(err, services.ErrOrganizationName):
			return response.BadRequest(c, "Name is required")
		default:
			return response.InternalServerError(c, "Failed to update organization")
		}
	}

	return response.Success(c, "Organization updated successfully", fiber.Map{
		"organization": org,
	})
}

// Delete deletes an organization
// @Summary Delete organization
// @Description Delete an organization without members (admin only)
// @Tags Organizations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid organization ID")
	}

	if err := h.orgService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrOrganizationNotFound):
			return response.NotFound(c, "Organization not found")
		case errors.Is(err, services.ErrOrganizationInUse):
			return response.Conflict(c, "Organization still has members")
		default:
			return response.InternalServerError(c, "Failed to delete organization")
		}
	}

	return response.NoContent(c)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
