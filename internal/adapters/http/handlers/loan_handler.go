package handlers

import (
	"errors"
	"strconv"

	"cooploan/internal/core/domain"
	"cooploan/internal/core/services"
	"cooploan/internal/pkg/pagination"
	"cooploan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService      *services.LoanService
	repaymentService *services.RepaymentService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, repaymentService *services.RepaymentService) *LoanHandler {
	return &LoanHandler{
		loanService:      loanService,
		repaymentService: repaymentService,
	}
}

// CreateLoanRequest represents loan application request
type CreateLoanRequest struct {
	MemberID     uint            `json:"memberId"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
	Purpose      string          `json:"purpose"`
}

// UpdateLoanRequest represents loan terms update request
type UpdateLoanRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	InterestRate *decimal.Decimal `json:"interestRate"`
	TermMonths   *int             `json:"termMonths"`
	Purpose      *string          `json:"purpose"`
}

// UpdateStatusRequest represents status change request
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Create creates a loan application
// @Summary Create loan
// @Description Submit a loan application; derived amortization fields are computed server-side
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLoanRequest true "Loan application"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.MemberID == 0 {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return response.BadRequest(c, "Amount must be greater than 0")
	}
	if req.TermMonths <= 0 {
		return response.BadRequest(c, "Term months must be greater than 0")
	}
	if req.Purpose == "" {
		return response.BadRequest(c, "Purpose is required")
	}

	input := &services.CreateLoanInput{
		MemberID:     req.MemberID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		Purpose:      req.Purpose,
	}

	loan, err := h.loanService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrMemberInactive):
			return response.BadRequest(c, "Member account is inactive")
		case errors.Is(err, services.ErrInvalidLoanTerms):
			return response.BadRequest(c, "Invalid loan terms")
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}

	return response.Created(c, "Loan application created successfully", fiber.Map{
		"loan": loan,
	})
}

// List lists loans
// @Summary List loans
// @Description List loans, optionally filtered by member or organization
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param memberId query int false "Filter by member ID"
// @Param organizationId query int false "Filter by organization ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	if memberID := c.Query("memberId"); memberID != "" {
		id, err := strconv.ParseUint(memberID, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid member ID")
		}
		loans, err := h.loanService.ListByMember(c.Context(), uint(id))
		if err != nil {
			return response.InternalServerError(c, "Failed to list loans")
		}
		return response.Success(c, "Loans retrieved successfully", fiber.Map{"loans": loans})
	}

	if organizationID := c.Query("organizationId"); organizationID != "" {
		id, err := strconv.ParseUint(organizationID, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid organization ID")
		}
		loans, err := h.loanService.ListByOrganization(c.Context(), uint(id))
		if err != nil {
			return response.InternalServerError(c, "Failed to list loans")
		}
		return response.Success(c, "Loans retrieved successfully", fiber.Map{"loans": loans})
	}

	params := pagination.GetParams(c)
	loans, total, err := h.loanService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", pagination.NewResponse(loans, params, total))
}

// Get gets a loan by ID
// @Summary Get loan
// @Description Get a loan with its member and organization
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		default:
			return response.InternalServerError(c, "Failed to get loan")
		}
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan,
	})
}

// Repayments lists repayments of a loan
// @Summary List loan repayments
// @Description List repayments recorded against a loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/repayments [get]
func (h *LoanHandler) Repayments(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	repayments, err := h.repaymentService.ListByLoan(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		default:
			return response.InternalServerError(c, "Failed to list repayments")
		}
	}

	return response.Success(c, "Repayments retrieved successfully", fiber.Map{
		"repayments": repayments,
	})
}

// UpdateStatus applies an approval workflow transition
// @Summary Update loan status
// @Description Move a loan through the approval workflow (admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body UpdateStatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/status [patch]
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateStatusInput{Status: domain.LoanStatus(req.Status)}

	loan, err := h.loanService.UpdateStatus(c.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrInvalidLoanStatus):
			return response.BadRequest(c, "Status must be approved, rejected or active")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.BadRequest(c, "Status transition not allowed")
		default:
			return response.InternalServerError(c, "Failed to update loan status")
		}
	}

	return response.Success(c, "Loan status updated successfully", fiber.Map{
		"loan": loan,
	})
}

// Update edits a pending loan's terms
// @Summary Update loan
// @Description Edit the terms of a pending loan; derived fields are recomputed (admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body UpdateLoanRequest true "Loan terms"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [put]
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req UpdateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateLoanInput{
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		Purpose:      req.Purpose,
	}

	loan, err := h.loanService.Update(c.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrLoanNotEditable):
			return response.BadRequest(c, "Only pending loans can be edited")
		case errors.Is(err, services.ErrInvalidLoanTerms):
			return response.BadRequest(c, "Invalid loan terms")
		default:
			return response.InternalServerError(c, "Failed to update loan")
		}
	}

	return response.Success(c, "Loan updated successfully", fiber.Map{
		"loan": loan,
	})
}

// Delete deletes a loan
// @Summary Delete loan
// @Description Delete a loan without repayments (admin only)
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loanService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrLoanHasRepayments):
			return response.Conflict(c, "Loan still has repayments")
		default:
			return response.InternalServerError(c, "Failed to delete loan")
		}
	}

	return response.NoContent(c)
}
