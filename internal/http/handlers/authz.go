package handlers

import (
	applog "muciocar/internal/log"
	"muciocar/internal/services"
	"muciocar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(c.UserContext(), sid)
		if err != nil || u == nil || !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Acesso negado"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// ValidID rejects a malformed :id route parameter before it reaches a handler.
func ValidID(c *fiber.Ctx) error {
	raw := c.Params("id")
	if id, ok := validate.ID(raw); !ok || id != raw {
		applog.Security(c, "request.bad_id", map[string]any{"id": raw})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Registro não encontrado"})
	}
	return c.Next()
}
