package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"muciocar/internal/domain"
	"muciocar/internal/events"
	"muciocar/internal/repos"
)

type AppointmentService struct {
	Appts   *repos.AppointmentRepo
	Booking *BookingService
	Events  events.Publisher
}

func NewAppointmentService(appts *repos.AppointmentRepo, booking *BookingService, pub events.Publisher) *AppointmentService {
	return &AppointmentService{Appts: appts, Booking: booking, Events: pub}
}

func (s *AppointmentService) List(ctx context.Context, f repos.AppointmentFilter) ([]domain.Appointment, error) {
	return s.Appts.List(ctx, f)
}

func (s *AppointmentService) Get(ctx context.Context, id string) (domain.Appointment, error) {
	a, err := s.Appts.Get(ctx, id)
	return a, notFound(err)
}

// Update moves an appointment to another slot, service or professional on the
// same day. The double-booking check ignores the appointment itself.
func (s *AppointmentService) Update(ctx context.Context, id, slot, serviceID, professionalID string) (domain.Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}
	slot = strings.TrimSpace(slot)
	if slot == "" || strings.TrimSpace(serviceID) == "" || strings.TrimSpace(professionalID) == "" {
		return domain.Appointment{}, invalid("", "Todos os campos são obrigatórios")
	}
	if _, err := s.Booking.checkSlot(a.Date, slot); err != nil {
		return domain.Appointment{}, err
	}
	svc, pro, err := s.Booking.resolve(ctx, serviceID, professionalID)
	if err != nil {
		return domain.Appointment{}, err
	}
	taken, err := s.Appts.SlotTaken(ctx, a.Date, slot, pro.ID, a.ID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if taken {
		return domain.Appointment{}, ErrSlotTaken
	}
	if err := s.Appts.Reschedule(ctx, a.ID, slot, svc.ID, svc.Title, pro.ID, s.Booking.Now().UTC().Format(time.RFC3339)); err != nil {
		if errors.Is(err, repos.ErrConflict) {
			return domain.Appointment{}, ErrSlotTaken
		}
		return domain.Appointment{}, err
	}
	updated, err := s.Get(ctx, a.ID)
	if err != nil {
		return domain.Appointment{}, err
	}
	events.Emit(ctx, s.Events, events.AppointmentUpdated, updated)
	return updated, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.Appts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	events.Emit(ctx, s.Events, events.AppointmentCancelled, a)
	return nil
}

// Stats feeds the dashboard. "Week" counts appointments dated from seven
// days ago onwards, future ones included.
func (s *AppointmentService) Stats(ctx context.Context, now time.Time) (domain.DashboardStats, error) {
	today := now.Format(domain.DateLayout)
	weekStart := now.AddDate(0, 0, -7).Format(domain.DateLayout)

	total, onToday, week, err := s.Appts.Counts(ctx, today, weekStart)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	rows, err := s.Appts.CountByProfessional(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	st := domain.DashboardStats{Total: total, Today: onToday, Week: week}
	for _, r := range rows {
		pc := domain.ProfessionalCount{Name: r.Name, Count: r.Count}
		if total > 0 {
			pc.Percent = math.Round(float64(r.Count)*1000/float64(total)) / 10
		}
		st.PerProfessional = append(st.PerProfessional, pc)
	}
	return st, nil
}
