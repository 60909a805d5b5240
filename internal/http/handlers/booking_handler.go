package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"muciocar/internal/domain"
	applog "muciocar/internal/log"
	"muciocar/internal/services"
	"muciocar/internal/validate"
)

type BookingHandler struct {
	Booking *services.BookingService
	Catalog *services.CatalogService
	Now     func() time.Time
	Loc     *time.Location
}

func (h *BookingHandler) form(c *fiber.Ctx, status int, req services.BookingRequest, msg string) error {
	pros, err := h.Booking.Professionals(c.UserContext())
	if err != nil {
		applog.Error(c, "booking.professionals.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	c.Status(status)
	return render(c, "booking", fiber.Map{
		"Services":      h.Catalog.List(),
		"Professionals": pros,
		"Slots":         validate.Slots,
		"Today":         h.Now().In(h.Loc).Format(domain.DateLayout),
		"Form":          req,
		"Err":           msg,
	})
}

// GET /booking
func (h *BookingHandler) Form(c *fiber.Ctx) error {
	req := services.BookingRequest{ServiceID: c.Query("service")}
	return h.form(c, fiber.StatusOK, req, "")
}

// POST /booking
func (h *BookingHandler) Submit(c *fiber.Ctx) error {
	req := services.BookingRequest{
		Name:           c.FormValue("name"),
		Phone:          c.FormValue("phone"),
		Email:          c.FormValue("email"),
		Vehicle:        c.FormValue("vehicle"),
		Year:           c.FormValue("year"),
		Plate:          c.FormValue("plate"),
		ServiceID:      c.FormValue("service"),
		ProfessionalID: c.FormValue("professional"),
		Date:           c.FormValue("date"),
		Time:           c.FormValue("time"),
		Marketing:      c.FormValue("marketing") != "",
	}
	res, err := h.Booking.Book(c.UserContext(), req)
	if err != nil {
		code, msg := failure(err)
		if code == fiber.StatusInternalServerError {
			applog.Error(c, "booking.create.fail", err, nil)
			return fiber.ErrInternalServerError
		}
		applog.Info(c, "booking.rejected", map[string]any{"reason": msg})
		return h.form(c, code, req, msg)
	}

	a := res.Appointment
	applog.Audit(c, "booking.create", map[string]any{
		"appointment_id": a.ID, "date": a.Date, "time": a.Time, "professional_id": a.ProfessionalID,
	})
	return render(c, "booking_done", fiber.Map{
		"Appointment": a,
		"Service":     res.Service,
		"Handoff":     res.Handoff,
	})
}
