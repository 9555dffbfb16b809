package handlers

import (
	"cooploan/internal/core/services"
	"cooploan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatisticsHandler handles the dashboard statistics endpoint
type StatisticsHandler struct {
	statsService *services.StatisticsService
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statsService *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

// Get returns the dashboard snapshot
// @Summary Get statistics
// @Description Get dashboard counters: organizations, members, loans, contributions, profit and overdue payments
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /statistics [get]
func (h *StatisticsHandler) Get(c *fiber.Ctx) error {
	stats, err := h.statsService.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", fiber.Map{
		"statistics": stats,
	})
}
