package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "muciocar/internal/log"
)

func (h *AdminHandler) testimonialsPage(c *fiber.Ctx, status int, msg, replyID string) error {
	list, err := h.TestimonialSvc.ListAll(c.UserContext())
	if err != nil {
		return renderError(c, "admin.testimonials.list.fail", err, nil)
	}
	c.Status(status)
	return render(c, "admin_testimonials", fiber.Map{"Testimonials": list, "Err": msg, "ReplyID": replyID})
}

// GET /admin/testimonials
func (h *AdminHandler) Testimonials(c *fiber.Ctx) error {
	return h.testimonialsPage(c, fiber.StatusOK, "", "")
}

// POST /admin/testimonials/:id/approve
func (h *AdminHandler) ApproveTestimonial(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.TestimonialSvc.Approve(c.UserContext(), id); err != nil {
		return renderError(c, "admin.testimonials.approve.fail", err, map[string]any{"testimonial_id": id})
	}
	applog.Audit(c, "admin.testimonials.approve", map[string]any{"testimonial_id": id})
	return c.Redirect("/admin/testimonials")
}

// POST /admin/testimonials/:id/reply
func (h *AdminHandler) ReplyTestimonial(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.TestimonialSvc.Reply(c.UserContext(), id, c.FormValue("response")); err != nil {
		code, msg := failure(err)
		if code == fiber.StatusBadRequest {
			return h.testimonialsPage(c, code, msg, id)
		}
		return renderError(c, "admin.testimonials.reply.fail", err, map[string]any{"testimonial_id": id})
	}
	applog.Audit(c, "admin.testimonials.reply", map[string]any{"testimonial_id": id})
	return c.Redirect("/admin/testimonials")
}

// POST /admin/testimonials/:id/delete
func (h *AdminHandler) DeleteTestimonial(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.TestimonialSvc.Delete(c.UserContext(), id); err != nil {
		return renderError(c, "admin.testimonials.delete.fail", err, map[string]any{"testimonial_id": id})
	}
	applog.Audit(c, "admin.testimonials.delete", map[string]any{"testimonial_id": id})
	return c.Redirect("/admin/testimonials")
}
