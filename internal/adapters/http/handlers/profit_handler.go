package handlers

import (
	"errors"
	"strconv"

	"cooploan/internal/core/services"
	"cooploan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProfitHandler handles annual profit endpoints
type ProfitHandler struct {
	profitService *services.ProfitService
}

// NewProfitHandler creates a new profit handler
func NewProfitHandler(profitService *services.ProfitService) *ProfitHandler {
	return &ProfitHandler{profitService: profitService}
}

// CreateProfitRequest represents profit record request
type CreateProfitRequest struct {
	TotalProfit            decimal.Decimal `json:"totalProfit"`
	FixedPercent           decimal.Decimal `json:"fixedPercent"`
	SharedPercentPerMember decimal.Decimal `json:"sharedPercentPerMember"`
	Year                   int             `json:"year"`
}

// Create records a yearly profit
// @Summary Record profit
// @Description Record the cooperative's profit for a year (admin only)
// @Tags Profits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProfitRequest true "Profit data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profits [post]
func (h *ProfitHandler) Create(c *fiber.Ctx) error {
	var req CreateProfitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Year == 0 {
		return response.BadRequest(c, "Year is required")
	}

	input := &services.CreateProfitInput{
		TotalProfit:            req.TotalProfit,
		FixedPercent:           req.FixedPercent,
		SharedPercentPerMember: req.SharedPercentPerMember,
		Year:                   req.Year,
	}

	profit, err := h.profitService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidProfit):
			return response.BadRequest(c, "Profit must not be negative and percents must be between 0 and 100")
		case errors.Is(err, services.ErrInvalidYear):
			return response.BadRequest(c, "Invalid year")
		case errors.Is(err, services.ErrDuplicateYear):
			return response.Conflict(c, "Profit record already exists for this year")
		default:
			return response.InternalServerError(c, "Failed to record profit")
		}
	}

	return response.Created(c, "Profit recorded successfully", fiber.Map{
		"profit": profit,
	})
}

// List lists profit records
// @Summary List profits
// @Description List yearly profit records, optionally filtered by year
// @Tags Profits
// @Produce json
// @Security BearerAuth
// @Param year query int false "Filter by year"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profits [get]
func (h *ProfitHandler) List(c *fiber.Ctx) error {
	if yearParam := c.Query("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil || year <= 0 {
			return response.BadRequest(c, "Invalid year")
		}
		profit, err := h.profitService.GetByYear(c.Context(), year)
		if err != nil {
			if errors.Is(err, services.ErrProfitNotFound) {
				return response.NotFound(c, "Profit record not found")
			}
			return response.InternalServerError(c, "Failed to list profits")
		}
		return response.Success(c, "Profits retrieved successfully", fiber.Map{
			"profits": []interface{}{profit},
		})
	}

	profits, err := h.profitService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list profits")
	}

	return response.Success(c, "Profits retrieved successfully", fiber.Map{
		"profits": profits,
	})
}

// GetByYear gets the profit record for a year
// @Summary Get profit by year
// @Description Get the profit record for a year
// @Tags Profits
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profits/{year} [get]
func (h *ProfitHandler) GetByYear(c *fiber.Ctx) error {
	year, err := parseYearParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid year")
	}

	profit, err := h.profitService.GetByYear(c.Context(), year)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfitNotFound):
			return response.NotFound(c, "Profit record not found")
		default:
			return response.InternalServerError(c, "Failed to get profit")
		}
	}

	return response.Success(c, "Profit retrieved successfully", fiber.Map{
		"profit": profit,
	})
}

// Distribution computes the payout plan for a year
// @Summary Get profit distribution
// @Description Compute the payout plan for a year's profit across active members
// @Tags Profits
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profits/{year}/distribution [get]
func (h *ProfitHandler) Distribution(c *fiber.Ctx) error {
	year, err := parseYearParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid year")
	}

	distribution, err := h.profitService.Distribute(c.Context(), year)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfitNotFound):
			return response.NotFound(c, "Profit record not found")
		case errors.Is(err, services.ErrNoActiveMembers):
			return response.Conflict(c, "No active members to distribute to")
		default:
			return response.InternalServerError(c, "Failed to compute distribution")
		}
	}

	return response.Success(c, "Distribution computed successfully", fiber.Map{
		"distribution": distribution,
	})
}

// parseYearParam parses the :year path parameter
func parseYearParam(c *fiber.Ctx) (int, error) {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year <= 0 {
		return 0, errors.New("invalid year")
	}
	return year, nil
}
