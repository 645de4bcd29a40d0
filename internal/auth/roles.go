package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/civic-kit/complaint-service/internal/domain"
	apperrors "github.com/civic-kit/complaint-service/pkg/util"
)

// RequireCitizen ensures the actor is a plain user.
func RequireCitizen() fiber.Handler {
	return requireRole(domain.RoleUser)
}

// RequireStaff ensures the actor is an admin or superadmin.
func RequireStaff() fiber.Handler {
	return requireRole(domain.RoleAdmin, domain.RoleSuperadmin)
}

// RequireSuperadmin ensures the actor is a superadmin.
func RequireSuperadmin() fiber.Handler {
	return requireRole(domain.RoleSuperadmin)
}

func requireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[actor.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
