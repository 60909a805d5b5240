package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"muciocar/internal/catalog"
	"muciocar/internal/domain"
	"muciocar/internal/events"
	"muciocar/internal/handoff"
	"muciocar/internal/repos"
	"muciocar/internal/validate"
)

// BookingRequest is the raw booking form.
type BookingRequest struct {
	Name           string
	Phone          string
	Email          string
	Vehicle        string
	Year           string
	Plate          string
	ServiceID      string
	ProfessionalID string
	Date           string
	Time           string
	Marketing      bool
}

type BookingResult struct {
	Appointment domain.Appointment
	Service     domain.Service
	Handoff     handoff.Message
}

type BookingService struct {
	Catalog  *catalog.Catalog
	Appts    *repos.AppointmentRepo
	Pros     *repos.ProfessionalRepo
	Events   events.Publisher
	Business string
	WhatsApp string
	Loc      *time.Location
	Now      func() time.Time
}

func NewBookingService(c *catalog.Catalog, appts *repos.AppointmentRepo, pros *repos.ProfessionalRepo,
	pub events.Publisher, business, whatsapp string, loc *time.Location) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		Catalog: c, Appts: appts, Pros: pros, Events: pub,
		Business: business, WhatsApp: whatsapp, Loc: loc, Now: time.Now,
	}
}

func (s *BookingService) today() time.Time {
	n := s.Now().In(s.Loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.Loc)
}

// slotPassed reports whether slot on day has already started.
func (s *BookingService) slotPassed(day time.Time, slot string) bool {
	t, err := time.ParseInLocation("2006-01-02 15:04", day.Format(domain.DateLayout)+" "+slot, s.Loc)
	if err != nil {
		return true
	}
	return !t.After(s.Now().In(s.Loc))
}

// checkSlot validates date and time for a new or moved appointment.
func (s *BookingService) checkSlot(date, slot string) (time.Time, error) {
	day, ok := validate.Date(date, s.Loc)
	if !ok {
		return time.Time{}, invalid("date", "Data inválida")
	}
	if day.Weekday() == time.Sunday {
		return time.Time{}, invalid("date", "Não realizamos agendamentos aos domingos")
	}
	today := s.today()
	if day.Before(today) {
		return time.Time{}, invalid("date", "Não é possível agendar para uma data passada")
	}
	if _, ok := validate.Slot(slot); !ok {
		return time.Time{}, invalid("time", "Horário inválido")
	}
	if day.Equal(today) && s.slotPassed(day, slot) {
		return time.Time{}, invalid("time", "Este horário já passou. Por favor, escolha outro horário.")
	}
	return day, nil
}

// resolve loads the service and an active professional.
func (s *BookingService) resolve(ctx context.Context, serviceID, professionalID string) (domain.Service, domain.Professional, error) {
	svc, ok := s.Catalog.Get(serviceID)
	if !ok {
		return domain.Service{}, domain.Professional{}, invalid("service", "Serviço ou profissional inválido")
	}
	pro, err := s.Pros.Get(ctx, strings.TrimSpace(professionalID))
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return domain.Service{}, domain.Professional{}, invalid("professional", "Serviço ou profissional inválido")
		}
		return domain.Service{}, domain.Professional{}, err
	}
	if !pro.Active {
		return domain.Service{}, domain.Professional{}, invalid("professional", "Este profissional não está disponível para agendamentos")
	}
	return svc, pro, nil
}

// Book validates the form, stores the appointment and prepares the
// WhatsApp handoff for the confirmation page.
func (s *BookingService) Book(ctx context.Context, r BookingRequest) (BookingResult, error) {
	required := []string{r.Name, r.Phone, r.Email, r.Vehicle, r.Plate, r.Year, r.ServiceID, r.ProfessionalID, r.Date, r.Time}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return BookingResult{}, invalid("", "Todos os campos são obrigatórios")
		}
	}
	email, ok := validate.Email(r.Email)
	if !ok {
		return BookingResult{}, invalid("email", "Por favor, insira um email válido")
	}
	phone, ok := validate.Phone(r.Phone)
	if !ok {
		return BookingResult{}, invalid("phone", "Por favor, insira um telefone válido com DDD")
	}
	name, ok := validate.Name(r.Name)
	if !ok {
		return BookingResult{}, invalid("name", "Nome inválido")
	}
	vehicle, ok := validate.Text(r.Vehicle, 80)
	if !ok {
		return BookingResult{}, invalid("vehicle", "Veículo inválido")
	}
	plate, ok := validate.Plate(r.Plate)
	if !ok {
		return BookingResult{}, invalid("plate", "Placa inválida")
	}
	year, ok := validate.Year(r.Year, s.Now().In(s.Loc))
	if !ok {
		return BookingResult{}, invalid("year", "Ano do veículo inválido")
	}
	day, err := s.checkSlot(r.Date, r.Time)
	if err != nil {
		return BookingResult{}, err
	}
	svc, pro, err := s.resolve(ctx, r.ServiceID, r.ProfessionalID)
	if err != nil {
		return BookingResult{}, err
	}

	a := domain.Appointment{
		ID:               uuid.NewString(),
		Date:             day.Format(domain.DateLayout),
		Time:             strings.TrimSpace(r.Time),
		ServiceID:        svc.ID,
		ServiceName:      svc.Title,
		ProfessionalID:   pro.ID,
		ProfessionalName: pro.Name,
		ClientName:       name,
		Phone:            phone,
		Email:            email,
		Vehicle:          vehicle,
		VehicleYear:      year,
		Plate:            plate,
		MarketingOptIn:   r.Marketing,
		CreatedAt:        s.Now().UTC().Format(time.RFC3339),
	}

	taken, err := s.Appts.SlotTaken(ctx, a.Date, a.Time, a.ProfessionalID, "")
	if err != nil {
		return BookingResult{}, err
	}
	if taken {
		return BookingResult{}, ErrSlotTaken
	}
	if err := s.Appts.Create(ctx, a); err != nil {
		if errors.Is(err, repos.ErrConflict) {
			return BookingResult{}, ErrSlotTaken
		}
		return BookingResult{}, err
	}

	events.Emit(ctx, s.Events, events.AppointmentBooked, a)
	return BookingResult{
		Appointment: a,
		Service:     svc,
		Handoff:     handoff.New(s.Business, s.WhatsApp, a, svc),
	}, nil
}

// Availability lists every slot of date for an active professional. Sundays,
// past days and started slots are unavailable.
func (s *BookingService) Availability(ctx context.Context, date, professionalID string) ([]domain.Slot, error) {
	day, ok := validate.Date(date, s.Loc)
	if !ok {
		return nil, invalid("date", "Data inválida")
	}
	pro, err := s.Pros.Get(ctx, strings.TrimSpace(professionalID))
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, invalid("professional", "Profissional inválido")
		}
		return nil, err
	}
	if !pro.Active {
		return nil, invalid("professional", "Este profissional não está disponível para agendamentos")
	}

	closed := day.Weekday() == time.Sunday || day.Before(s.today())
	taken := map[string]bool{}
	if !closed {
		times, err := s.Appts.TakenTimes(ctx, day.Format(domain.DateLayout), strings.TrimSpace(professionalID))
		if err != nil {
			return nil, err
		}
		for _, t := range times {
			taken[t] = true
		}
	}

	isToday := day.Equal(s.today())
	out := make([]domain.Slot, 0, len(validate.Slots))
	for _, t := range validate.Slots {
		free := !closed && !taken[t] && !(isToday && s.slotPassed(day, t))
		out = append(out, domain.Slot{Time: t, Available: free})
	}
	return out, nil
}

// Calendar returns the booked days of a month with their counts.
func (s *BookingService) Calendar(ctx context.Context, month string) ([]domain.BookedDay, error) {
	m, ok := validate.Month(month, s.Loc)
	if !ok {
		return nil, invalid("month", "Mês inválido")
	}
	from := m.Format(domain.DateLayout)
	to := m.AddDate(0, 1, -1).Format(domain.DateLayout)
	return s.Appts.BookedDays(ctx, from, to)
}

// Professionals lists who can be booked.
func (s *BookingService) Professionals(ctx context.Context) ([]domain.Professional, error) {
	return s.Pros.List(ctx, true)
}
