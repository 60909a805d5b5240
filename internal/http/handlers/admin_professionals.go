package handlers

import (
	"github.com/gofiber/fiber/v2"

	"muciocar/internal/domain"
	applog "muciocar/internal/log"
	"muciocar/internal/services"
)

func professionalInput(c *fiber.Ctx) services.ProfessionalInput {
	return services.ProfessionalInput{
		Name:      c.FormValue("name"),
		Specialty: c.FormValue("specialty"),
		PhotoURL:  c.FormValue("photo_url"),
		Active:    c.FormValue("active") != "",
	}
}

func (h *AdminHandler) professionalsPage(c *fiber.Ctx, status int, msg string) error {
	list, err := h.Pros.List(c.UserContext())
	if err != nil {
		return renderError(c, "admin.professionals.list.fail", err, nil)
	}
	c.Status(status)
	return render(c, "admin_professionals", fiber.Map{"Professionals": list, "Err": msg})
}

// GET /admin/professionals
func (h *AdminHandler) Professionals(c *fiber.Ctx) error {
	return h.professionalsPage(c, fiber.StatusOK, "")
}

// GET /admin/professionals/new
func (h *AdminHandler) NewProfessional(c *fiber.Ctx) error {
	return render(c, "admin_professional_form", fiber.Map{
		"Professional": domain.Professional{Active: true},
		"Action":       "/admin/professionals",
	})
}

// POST /admin/professionals
func (h *AdminHandler) CreateProfessional(c *fiber.Ctx) error {
	in := professionalInput(c)
	p, err := h.Pros.Create(c.UserContext(), in)
	if err != nil {
		code, msg := failure(err)
		if code != fiber.StatusBadRequest {
			return renderError(c, "admin.professionals.create.fail", err, nil)
		}
		c.Status(code)
		return render(c, "admin_professional_form", fiber.Map{
			"Professional": domain.Professional{Name: in.Name, Specialty: in.Specialty, PhotoURL: in.PhotoURL, Active: in.Active},
			"Action":       "/admin/professionals",
			"Err":          msg,
		})
	}
	applog.Audit(c, "admin.professionals.create", map[string]any{"professional_id": p.ID, "name": p.Name})
	return c.Redirect("/admin/professionals")
}

// GET /admin/professionals/:id/edit
func (h *AdminHandler) EditProfessional(c *fiber.Ctx) error {
	p, err := h.Pros.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return renderError(c, "admin.professionals.edit.fail", err, nil)
	}
	return render(c, "admin_professional_form", fiber.Map{
		"Professional": p,
		"Action":       "/admin/professionals/" + p.ID,
	})
}

// POST /admin/professionals/:id
func (h *AdminHandler) UpdateProfessional(c *fiber.Ctx) error {
	id := c.Params("id")
	in := professionalInput(c)
	if _, err := h.Pros.Update(c.UserContext(), id, in); err != nil {
		code, msg := failure(err)
		if code != fiber.StatusBadRequest {
			return renderError(c, "admin.professionals.update.fail", err, map[string]any{"professional_id": id})
		}
		c.Status(code)
		return render(c, "admin_professional_form", fiber.Map{
			"Professional": domain.Professional{ID: id, Name: in.Name, Specialty: in.Specialty, PhotoURL: in.PhotoURL, Active: in.Active},
			"Action":       "/admin/professionals/" + id,
			"Err":          msg,
		})
	}
	applog.Audit(c, "admin.professionals.update", map[string]any{"professional_id": id})
	return c.Redirect("/admin/professionals")
}

// POST /admin/professionals/:id/toggle
func (h *AdminHandler) ToggleProfessional(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Pros.ToggleActive(c.UserContext(), id); err != nil {
		return renderError(c, "admin.professionals.toggle.fail", err, map[string]any{"professional_id": id})
	}
	applog.Audit(c, "admin.professionals.toggle", map[string]any{"professional_id": id})
	return c.Redirect("/admin/professionals")
}

// POST /admin/professionals/:id/delete
func (h *AdminHandler) DeleteProfessional(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Pros.Delete(c.UserContext(), id); err != nil {
		code, msg := failure(err)
		if code == fiber.StatusConflict {
			applog.Info(c, "admin.professionals.delete.refused", map[string]any{"professional_id": id})
			return h.professionalsPage(c, code, msg)
		}
		return renderError(c, "admin.professionals.delete.fail", err, map[string]any{"professional_id": id})
	}
	applog.Audit(c, "admin.professionals.delete", map[string]any{"professional_id": id})
	return c.Redirect("/admin/professionals")
}
