package middleware

import (
	"strings"

	"cooploan/internal/config"
	"cooploan/internal/pkg/jwt"
	"cooploan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set member info in context
		c.Locals("memberID", claims.MemberID)
		c.Locals("email", claims.Email)
		c.Locals("name", claims.Name)
		c.Locals("isAdmin", claims.IsAdmin)
		c.Locals("isSuperAdmin", claims.IsSuperAdmin)
		c.Locals("canAddMembers", claims.CanAddMembers)

		return c.Next()
	}
}

// AdminOnly middleware allows only admins
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("isAdmin").(bool)
		isSuperAdmin, _ := c.Locals("isSuperAdmin").(bool)

		if !isAdmin && !isSuperAdmin {
			return response.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// SuperAdminOnly middleware allows only the super admin
func SuperAdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isSuperAdmin, _ := c.Locals("isSuperAdmin").(bool)

		if !isSuperAdmin {
			return response.Forbidden(c, "Super admin access required")
		}
		return c.Next()
	}
}

// CanAddMembers middleware allows admins and members with the
// can-add-members flag
func CanAddMembers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("isAdmin").(bool)
		isSuperAdmin, _ := c.Locals("isSuperAdmin").(bool)
		canAddMembers, _ := c.Locals("canAddMembers").(bool)

		if !isAdmin && !isSuperAdmin && !canAddMembers {
			return response.Forbidden(c, "You don't have permission to add members")
		}
		return c.Next()
	}
}
