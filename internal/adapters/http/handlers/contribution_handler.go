package handlers

import (
	"errors"
	"strconv"

	"cooploan/internal/core/services"
	"cooploan/internal/pkg/pagination"
	"cooploan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ContributionHandler handles monthly contribution endpoints
type ContributionHandler struct {
	contributionService *services.ContributionService
}

// NewContributionHandler creates a new contribution handler
func NewContributionHandler(contributionService *services.ContributionService) *ContributionHandler {
	return &ContributionHandler{contributionService: contributionService}
}

// RecordContributionRequest represents contribution request
type RecordContributionRequest struct {
	MemberID   uint            `json:"memberId"`
	Month      string          `json:"month"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

// Record records a monthly contribution
// @Summary Record contribution
// @Description Record a member's monthly contribution; one per member per month
// @Tags Contributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordContributionRequest true "Contribution data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /contributions [post]
func (h *ContributionHandler) Record(c *fiber.Ctx) error {
	var req RecordContributionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.MemberID == 0 {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.Month == "" {
		return response.BadRequest(c, "Month is required")
	}

	input := &services.RecordContributionInput{
		MemberID:   req.MemberID,
		Month:      req.Month,
		AmountPaid: req.AmountPaid,
	}

	contribution, err := h.contributionService.Record(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrMemberInactive):
			return response.BadRequest(c, "Member account is inactive")
		case errors.Is(err, services.ErrInvalidMonth):
			return response.BadRequest(c, "Month must be YYYY-MM")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than 0")
		case errors.Is(err, services.ErrDuplicateContribution):
			return response.Conflict(c, "Contribution already recorded for this month")
		default:
			return response.InternalServerError(c, "Failed to record contribution")
		}
	}

	return response.Created(c, "Contribution recorded successfully", fiber.Map{
		"contribution": contribution,
	})
}

// List lists contributions
// @Summary List contributions
// @Description List contributions, optionally filtered by member or month
// @Tags Contributions
// @Produce json
// @Security BearerAuth
// @Param memberId query int false "Filter by member ID"
// @Param month query string false "Filter by month (YYYY-MM)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /contributions [get]
func (h *ContributionHandler) List(c *fiber.Ctx) error {
	if memberID := c.Query("memberId"); memberID != "" {
		id, err := strconv.ParseUint(memberID, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid member ID")
		}
		contributions, err := h.contributionService.ListByMember(c.Context(), uint(id))
		if err != nil {
			if errors.Is(err, services.ErrMemberNotFound) {
				return response.NotFound(c, "Member not found")
			}
			return response.InternalServerError(c, "Failed to list contributions")
		}
		return response.Success(c, "Contributions retrieved successfully", fiber.Map{
			"contributions": contributions,
		})
	}

	if month := c.Query("month"); month != "" {
		contributions, err := h.contributionService.ListByMonth(c.Context(), month)
		if err != nil {
			if errors.Is(err, services.ErrInvalidMonth) {
				return response.BadRequest(c, "Month must be YYYY-MM")
			}
			return response.InternalServerError(c, "Failed to list contributions")
		}
		return response.Success(c, "Contributions retrieved successfully", fiber.Map{
			"contributions": contributions,
		})
	}

	params := pagination.GetParams(c)
	contributions, total, err := h.contributionService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list contributions")
	}

	return response.Success(c, "Contributions retrieved successfully", pagination.NewResponse(contributions, params, total))
}

// Get gets a contribution by ID
// @Summary Get contribution
// @Description Get a contribution with its member
// @Tags Contributions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contribution ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contributions/{id} [get]
func (h *ContributionHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid contribution ID")
	}

	contribution, err := h.contributionService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContributionNotFound):
			return response.NotFound(c, "Contribution not found")
		default:
			return response.InternalServerError(c, "Failed to get contribution")
		}
	}

	return response.Success(c, "Contribution retrieved successfully", fiber.Map{
		"contribution": contribution,
	})
}
