package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "muciocar/internal/log"
	"muciocar/internal/services"
)

type APIHandler struct {
	Booking        *services.BookingService
	TestimonialSvc *services.TestimonialService
}

func apiError(c *fiber.Ctx, action string, err error) error {
	code, msg := failure(err)
	if code == fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

// GET /api/v1/availability?date=YYYY-MM-DD&professional=<id>
func (h *APIHandler) Availability(c *fiber.Ctx) error {
	date, pro := c.Query("date"), c.Query("professional")
	slots, err := h.Booking.Availability(c.UserContext(), date, pro)
	if err != nil {
		return apiError(c, "api.availability.fail", err)
	}
	return c.JSON(fiber.Map{"date": date, "professional": pro, "slots": slots})
}

// GET /api/v1/calendar?month=YYYY-MM
func (h *APIHandler) Calendar(c *fiber.Ctx) error {
	month := c.Query("month")
	days, err := h.Booking.Calendar(c.UserContext(), month)
	if err != nil {
		return apiError(c, "api.calendar.fail", err)
	}
	return c.JSON(fiber.Map{"month": month, "days": days})
}

// GET /api/v1/testimonials
func (h *APIHandler) Testimonials(c *fiber.Ctx) error {
	n := c.QueryInt("limit", 3)
	if n > 20 {
		n = 20
	}
	list, err := h.TestimonialSvc.Latest(c.UserContext(), n)
	if err != nil {
		return apiError(c, "api.testimonials.fail", err)
	}
	return c.JSON(fiber.Map{"testimonials": list})
}
