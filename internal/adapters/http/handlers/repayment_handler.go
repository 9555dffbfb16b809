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

// RepaymentHandler handles repayment endpoints
type RepaymentHandler struct {
	repaymentService *services.RepaymentService
}

// NewRepaymentHandler creates a new repayment handler
func NewRepaymentHandler(repaymentService *services.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{repaymentService: repaymentService}
}

// RecordRepaymentRequest represents repayment request
type RecordRepaymentRequest struct {
	LoanID       uint            `json:"loanId"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentMonth string          `json:"paymentMonth"`
}

// Record records a repayment
// @Summary Record repayment
// @Description Record a repayment against a loan; one per loan per month
// @Tags Repayments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordRepaymentRequest true "Repayment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /repayments [post]
func (h *RepaymentHandler) Record(c *fiber.Ctx) error {
	var req RecordRepaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.LoanID == 0 {
		return response.BadRequest(c, "Loan ID is required")
	}
	if req.PaymentMonth == "" {
		return response.BadRequest(c, "Payment month is required")
	}

	input := &services.RecordRepaymentInput{
		LoanID:       req.LoanID,
		Amount:       req.Amount,
		PaymentMonth: req.PaymentMonth,
	}

	repayment, err := h.repaymentService.Record(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrLoanNotRepayable):
			return response.BadRequest(c, "Loan is not accepting repayments")
		case errors.Is(err, services.ErrInvalidMonth):
			return response.BadRequest(c, "Payment month must be YYYY-MM")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than 0")
		case errors.Is(err, services.ErrDuplicateRepayment):
			return response.Conflict(c, "Repayment already recorded for this month")
		default:
			return response.InternalServerError(c, "Failed to record repayment")
		}
	}

	return response.Created(c, "Repayment recorded successfully", fiber.Map{
		"repayment": repayment,
	})
}

// List lists repayments
// @Summary List repayments
// @Description List repayments, optionally filtered by loan or member
// @Tags Repayments
// @Produce json
// @Security BearerAuth
// @Param loanId query int false "Filter by loan ID"
// @Param memberId query int false "Filter by member ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /repayments [get]
func (h *RepaymentHandler) List(c *fiber.Ctx) error {
	if loanID := c.Query("loanId"); loanID != "" {
		id, err := strconv.ParseUint(loanID, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid loan ID")
		}
		repayments, err := h.repaymentService.ListByLoan(c.Context(), uint(id))
		if err != nil {
			if errors.Is(err, services.ErrLoanNotFound) {
				return response.NotFound(c, "Loan not found")
			}
			return response.InternalServerError(c, "Failed to list repayments")
		}
		return response.Success(c, "Repayments retrieved successfully", fiber.Map{"repayments": repayments})
	}

	if memberID := c.Query("memberId"); memberID != "" {
		id, err := strconv.ParseUint(memberID, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid member ID")
		}
		repayments, err := h.repaymentService.ListByMember(c.Context(), uint(id))
		if err != nil {
			return response.InternalServerError(c, "Failed to list repayments")
		}
		return response.Success(c, "Repayments retrieved successfully", fiber.Map{"repayments": repayments})
	}

	params := pagination.GetParams(c)

	repayments, total, err := h.repaymentService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list repayments")
	}

	return response.Success(c, "Repayments retrieved successfully", pagination.NewResponse(repayments, params, total))
}

// Get gets a repayment by ID
// @Summary Get repayment
// @Description Get a repayment with its loan chain
// @Tags Repayments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Repayment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /repayments/{id} [get]
func (h *RepaymentHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid repayment ID")
	}

	repayment, err := h.repaymentService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRepaymentNotFound):
			return response.NotFound(c, "Repayment not found")
		default:
			return response.InternalServerError(c, "Failed to get repayment")
		}
	}

	return response.Success(c, "Repayment retrieved successfully", fiber.Map{
		"repayment": repayment,
	})
}
