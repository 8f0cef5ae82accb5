package middleware

import (
	"log"
	"strings"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/adapters/persistence/repositories"
	"linka-backend/internal/config"
	"linka-backend/internal/pkg/authz"
	"linka-backend/internal/pkg/response"
	"linka-backend/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Authenticate resolves the caller's identity from the Authorization
// header. Every failure path continues as anonymous; the access policy
// decides later whether anonymous is enough for the route.
func Authenticate(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("authenticated", false)

		// 1. Extract the bearer token
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}
		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		// 2. Validate signature and expiry
		if !token.Validate(accessToken, cfg.JWT.Secret) {
			log.Printf("⚠️ Rejected token on %s %s", c.Method(), c.Path())
			return c.Next()
		}

		// 3. Resolve the account behind the token
		email, err := token.ExtractEmail(accessToken, cfg.JWT.Secret)
		if err != nil {
			return c.Next()
		}

		user, err := userRepo.GetByEmail(c.Context(), email)
		if err != nil {
			log.Printf("⚠️ Token for unknown account on %s %s", c.Method(), c.Path())
			return c.Next()
		}

		// 4. Inactive or locked accounts stay anonymous even with a valid token
		if user.Status != models.UserStatusActive || user.IsLocked() {
			log.Printf("⚠️ Token for %s account on %s %s", user.Status, c.Method(), c.Path())
			return c.Next()
		}

		// 5. Attach identity to the request
		c.Locals("authenticated", true)
		c.Locals("userID", user.ID)
		c.Locals("email", user.Email)
		c.Locals("userType", user.UserType)
		c.Locals("fullName", user.FullName())
		c.Locals("authorities", authz.AuthoritiesFor(user.UserType))

		return c.Next()
	}
}

// AccessPolicy enforces the route access table against the identity
// established by Authenticate
func AccessPolicy(policy *authz.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authenticated, _ := c.Locals("authenticated").(bool)
		authorities, _ := c.Locals("authorities").([]authz.Authority)

		switch policy.Evaluate(c.Method(), c.Path(), authenticated, authorities) {
		case authz.Allow:
			return c.Next()
		case authz.RequireAuth:
			return response.Unauthorized(c, "Authentication required")
		default:
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
	}
}

// IsAdmin reports whether the current request carries the ADMIN authority
func IsAdmin(c *fiber.Ctx) bool {
	authorities, _ := c.Locals("authorities").([]authz.Authority)
	for _, a := range authorities {
		if a == authz.AuthorityAdmin {
			return true
		}
	}
	return false
}

// CurrentUserID returns the authenticated user's ID, zero when anonymous
func CurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// CurrentEmail returns the authenticated user's email, empty when anonymous
func CurrentEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}
