package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getParamsFor runs GetParams against a real fiber context
func getParamsFor(t *testing.T, target string) *Params {
	t.Helper()

	var params *Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		params = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, params)

	return params
}

func TestGetParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params := getParamsFor(t, "/")
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, DefaultLimit, params.Limit)
		assert.Equal(t, 0, params.Offset)
	})

	t.Run("explicit page and limit", func(t *testing.T) {
		params := getParamsFor(t, "/?page=3&limit=10")
		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 10, params.Limit)
		assert.Equal(t, 20, params.Offset)
	})

	t.Run("limit is capped", func(t *testing.T) {
		params := getParamsFor(t, "/?limit=9999")
		assert.Equal(t, MaxLimit, params.Limit)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		params := getParamsFor(t, "/?page=-1&limit=0")
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, DefaultLimit, params.Limit)
	})
}

func TestGetMeta(t *testing.T) {
	t.Run("exact division", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 1, Limit: 10}, 30)
		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})

	t.Run("partial last page", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 4, Limit: 10}, 31)
		assert.Equal(t, 4, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("empty collection", func(t *testing.T) {
		meta := GetMeta(&Params{Page: 1, Limit: 10}, 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})
}
