package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, handler fiber.Handler) (int, *Response) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if len(body) == 0 {
		return resp.StatusCode, nil
	}

	var envelope Response
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, &envelope
}

func TestSuccess(t *testing.T) {
	status, envelope := run(t, func(c *fiber.Ctx) error {
		return Success(c, "ok", fiber.Map{"value": 1})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, envelope.Success)
	assert.Equal(t, "ok", envelope.Message)
	assert.NotNil(t, envelope.Data)
}

func TestCreated(t *testing.T) {
	status, envelope := run(t, func(c *fiber.Ctx) error {
		return Created(c, "created", nil)
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, envelope.Success)
}

func TestNoContent(t *testing.T) {
	status, envelope := run(t, func(c *fiber.Ctx) error {
		return NoContent(c)
	})

	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Nil(t, envelope)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		handler fiber.Handler
		status  int
	}{
		{"bad request", func(c *fiber.Ctx) error { return BadRequest(c, "bad") }, fiber.StatusBadRequest},
		{"unauthorized", func(c *fiber.Ctx) error { return Unauthorized(c, "no") }, fiber.StatusUnauthorized},
		{"forbidden", func(c *fiber.Ctx) error { return Forbidden(c, "no") }, fiber.StatusForbidden},
		{"not found", func(c *fiber.Ctx) error { return NotFound(c, "gone") }, fiber.StatusNotFound},
		{"conflict", func(c *fiber.Ctx) error { return Conflict(c, "dup") }, fiber.StatusConflict},
		{"internal", func(c *fiber.Ctx) error { return InternalServerError(c, "boom") }, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := run(t, tt.handler)
			assert.Equal(t, tt.status, status)
			assert.False(t, envelope.Success)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}
