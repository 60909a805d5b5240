package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "muciocar/internal/log"
	"muciocar/internal/services"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user if present
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if b, ok := c.Locals("business").(string); ok {
		data["Business"] = b
	}
	// Pick up the token the CSRF middleware put into Locals; the cookie is
	// the fallback when Locals was not populated.
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// failure maps a service error to a status and a message fit for the page.
func failure(err error) (int, string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Msg
	case errors.Is(err, services.ErrSlotTaken), errors.Is(err, services.ErrProfessionalInUse):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "Registro não encontrado"
	}
	return fiber.StatusInternalServerError, "Algo deu errado. Por favor, tente novamente."
}

// renderError shows the generic message page for err; unexpected errors are logged.
func renderError(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	code, msg := failure(err)
	if code == fiber.StatusInternalServerError {
		applog.Error(c, action, err, fields)
	}
	return c.Status(code).Render("notfound", fiber.Map{"Message": msg})
}
