package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "muciocar/internal/log"
	"muciocar/internal/services"
)

type SiteHandler struct {
	Catalog      *services.CatalogService
	Testimonials *services.TestimonialService
}

func (h *SiteHandler) homeData(c *fiber.Ctx, extra fiber.Map) (fiber.Map, error) {
	latest, err := h.Testimonials.Latest(c.UserContext(), 3)
	if err != nil {
		return nil, err
	}
	data := fiber.Map{
		"Services":     h.Catalog.List(),
		"Testimonials": latest,
		"Sent":         c.Query("depoimento") == "enviado",
	}
	for k, v := range extra {
		data[k] = v
	}
	return data, nil
}

// GET /
func (h *SiteHandler) Home(c *fiber.Ctx) error {
	data, err := h.homeData(c, nil)
	if err != nil {
		applog.Error(c, "home.testimonials.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "home", data)
}

// GET /services/:id
func (h *SiteHandler) ServiceDetail(c *fiber.Ctx) error {
	svc, err := h.Catalog.Get(c.Params("id"))
	if err != nil {
		return c.Redirect("/")
	}
	return render(c, "service", fiber.Map{"Service": svc})
}

// POST /testimonials
func (h *SiteHandler) SubmitTestimonial(c *fiber.Ctx) error {
	in := services.TestimonialInput{
		Name:         c.FormValue("name"),
		Rating:       c.FormValue("rating"),
		Comment:      c.FormValue("comment"),
		VehicleModel: c.FormValue("vehicle_model"),
		ServiceName:  c.FormValue("service_name"),
	}
	t, err := h.Testimonials.Submit(c.UserContext(), in)
	if err != nil {
		var ve *services.ValidationError
		if !errors.As(err, &ve) {
			applog.Error(c, "testimonial.submit.fail", err, nil)
			return fiber.ErrInternalServerError
		}
		data, derr := h.homeData(c, fiber.Map{"TestimonialErr": ve.Msg, "Form": in})
		if derr != nil {
			return derr
		}
		c.Status(fiber.StatusBadRequest)
		return render(c, "home", data)
	}
	applog.Audit(c, "testimonial.submit", map[string]any{"testimonial_id": t.ID, "rating": t.Rating})
	return c.Redirect("/?depoimento=enviado#depoimentos")
}
