package handlers

import (
	"time"

	"cooploan/internal/config"
	"cooploan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root returns basic API info
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "CoopLoan API", fiber.Map{
		"version": "1.0",
		"docs":    "/swagger/index.html",
	})
}

// Check returns service and database health
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	data := fiber.Map{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if dbStatus == "down" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Success: false,
			Message: "Service degraded",
			Data:    data,
		})
	}

	return response.Success(c, "Service healthy", data)
}
