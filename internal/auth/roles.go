package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/govhub/helpdesk-portal/internal/domain"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

// LoginPath is where anonymous visitors are sent.
const LoginPath = "/login"

// RequireSession redirects to the login screen when no session is present.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireRole ensures the principal has one of the allowed roles. This hides
// screens from the wrong roles; the backend still authorizes every call.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		if _, exists := allowedSet[principal.Role()]; !exists {
			return apperrors.NewForbidden("you do not have access to this page")
		}
		return c.Next()
	}
}

// RequireManager admits admins and department heads.
func RequireManager() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleDepartmentHead)
}
