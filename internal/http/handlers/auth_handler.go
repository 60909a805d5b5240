package handlers

import (
	"time"

	"muciocar/internal/log"
	"muciocar/internal/services"
	"muciocar/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const badLogin = "Email ou senha inválidos"

type AuthHandler struct {
	Auth         *services.AuthService
	SecureCookie bool
}

func (h *AuthHandler) setSID(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.SecureCookie,
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": badLogin, "CSRFToken": c.Cookies("csrf_")})
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": badLogin, "CSRFToken": c.Cookies("csrf_")})
	}

	// New sid per login; a sid presented before login is never promoted.
	sid := uuid.NewString()
	_, err := h.Auth.Login(c.UserContext(), sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": badLogin, "CSRFToken": c.Cookies("csrf_")})
	}
	if prev := c.Cookies("sid"); prev != "" {
		_ = h.Auth.Logout(c.UserContext(), prev)
	}
	h.setSID(c, sid)

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		_ = h.Auth.Logout(c.UserContext(), sid)
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.SecureCookie,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
