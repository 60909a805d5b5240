package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"muciocar/internal/domain"
	applog "muciocar/internal/log"
	"muciocar/internal/repos"
	"muciocar/internal/services"
	"muciocar/internal/validate"
)

type AdminHandler struct {
	Appts          *services.AppointmentService
	Pros           *services.ProfessionalService
	TestimonialSvc *services.TestimonialService
	Catalog        *services.CatalogService
	Now            func() time.Time
	Loc            *time.Location
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	now := h.Now().In(h.Loc)
	st, err := h.Appts.Stats(c.UserContext(), now)
	if err != nil {
		return renderError(c, "admin.dashboard.fail", err, nil)
	}
	today, err := h.Appts.List(c.UserContext(), repos.AppointmentFilter{Date: now.Format(domain.DateLayout)})
	if err != nil {
		return renderError(c, "admin.dashboard.fail", err, nil)
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": st, "TodayList": today})
}

// GET /admin/appointments
func (h *AdminHandler) Appointments(c *fiber.Ctx) error {
	f := repos.AppointmentFilter{
		Professional: validate.Optional(c.Query("professional"), 80),
		Client:       validate.Optional(c.Query("client"), 80),
		Vehicle:      validate.Optional(c.Query("vehicle"), 80),
		Date:         validate.Optional(c.Query("date"), 10),
	}
	list, err := h.Appts.List(c.UserContext(), f)
	if err != nil {
		return renderError(c, "admin.appointments.list.fail", err, nil)
	}
	return render(c, "admin_appointments", fiber.Map{"Appointments": list, "Filter": f})
}

func (h *AdminHandler) appointmentPage(c *fiber.Ctx, status int, a domain.Appointment, msg string) error {
	pros, err := h.Pros.List(c.UserContext())
	if err != nil {
		return renderError(c, "admin.appointment.view.fail", err, nil)
	}
	c.Status(status)
	return render(c, "admin_appointment", fiber.Map{
		"Appointment":   a,
		"Services":      h.Catalog.List(),
		"Professionals": pros,
		"Slots":         validate.Slots,
		"Err":           msg,
	})
}

// GET /admin/appointments/:id
func (h *AdminHandler) Appointment(c *fiber.Ctx) error {
	a, err := h.Appts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return renderError(c, "admin.appointment.view.fail", err, nil)
	}
	return h.appointmentPage(c, fiber.StatusOK, a, "")
}

// POST /admin/appointments/:id
func (h *AdminHandler) UpdateAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	a, err := h.Appts.Update(c.UserContext(), id, c.FormValue("time"), c.FormValue("service"), c.FormValue("professional"))
	if err != nil {
		code, msg := failure(err)
		if code == fiber.StatusBadRequest || code == fiber.StatusConflict {
			cur, gerr := h.Appts.Get(c.UserContext(), id)
			if gerr != nil {
				return renderError(c, "admin.appointment.update.fail", gerr, nil)
			}
			return h.appointmentPage(c, code, cur, msg)
		}
		return renderError(c, "admin.appointment.update.fail", err, map[string]any{"appointment_id": id})
	}
	applog.Audit(c, "admin.appointment.update", map[string]any{
		"appointment_id": a.ID, "time": a.Time, "service_id": a.ServiceID, "professional_id": a.ProfessionalID,
	})
	return c.Redirect("/admin/appointments/" + a.ID)
}

// POST /admin/appointments/:id/cancel
func (h *AdminHandler) CancelAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Appts.Cancel(c.UserContext(), id); err != nil {
		return renderError(c, "admin.appointment.cancel.fail", err, map[string]any{"appointment_id": id})
	}
	applog.Audit(c, "admin.appointment.cancel", map[string]any{"appointment_id": id})
	return c.Redirect("/admin/appointments")
}
