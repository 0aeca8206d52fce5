package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"jobhunter/internal/db"
	"jobhunter/internal/models"
)

// UserFromContext returns the authenticated user set by RequireAuth.
func UserFromContext(c fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok
}

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	db *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// RequireAuth ensures the request carries an authenticated session. API
// clients get a 401 instead of a redirect.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err != nil {
		sess.Destroy()
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAdmin ensures the authenticated user has the admin role. Must
// run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user, ok := UserFromContext(c)
	if !ok || !user.IsAdmin() {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}
