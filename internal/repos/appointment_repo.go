package repos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"muciocar/internal/domain"
)

type AppointmentRepo struct{ db *sqlx.DB }

func NewAppointmentRepo(db *sqlx.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

const appointmentCols = `
    a.id, a.date, a.time, a.service_id, a.service_name, a.professional_id,
    COALESCE(p.name,'') AS professional_name,
    a.client_name, a.phone, a.email, a.vehicle, a.vehicle_year, a.plate,
    a.marketing_opt_in, a.created_at, COALESCE(a.updated_at,'') AS updated_at`

// AppointmentFilter narrows the admin list. Text fields are case-insensitive
// substring matches; Date is an exact day.
type AppointmentFilter struct {
	Professional string
	Client       string
	Vehicle      string
	Date         string
}

// Create inserts a new appointment. A taken (date, time, professional) slot
// yields ErrConflict.
func (r *AppointmentRepo) Create(ctx context.Context, a domain.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO appointments
	    (id, date, time, service_id, service_name, professional_id, client_name, phone, email,
	     vehicle, vehicle_year, plate, marketing_opt_in, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Date, a.Time, a.ServiceID, a.ServiceName, a.ProfessionalID, a.ClientName, a.Phone, a.Email,
		a.Vehicle, a.VehicleYear, a.Plate, a.MarketingOptIn, a.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *AppointmentRepo) Get(ctx context.Context, id string) (domain.Appointment, error) {
	var a domain.Appointment
	err := r.db.GetContext(ctx, &a, `
	  SELECT`+appointmentCols+`
	  FROM appointments a
	  LEFT JOIN professionals p ON p.id = a.professional_id
	  WHERE a.id = ?
	`, id)
	return a, err
}

func (r *AppointmentRepo) List(ctx context.Context, f AppointmentFilter) ([]domain.Appointment, error) {
	where := []string{"1=1"}
	args := []any{}
	if v := strings.ToLower(strings.TrimSpace(f.Professional)); v != "" {
		where = append(where, `LOWER(COALESCE(p.name,'')) LIKE ? ESCAPE '\'`)
		args = append(args, contains(v))
	}
	if v := strings.ToLower(strings.TrimSpace(f.Client)); v != "" {
		where = append(where, `LOWER(a.client_name) LIKE ? ESCAPE '\'`)
		args = append(args, contains(v))
	}
	if v := strings.ToLower(strings.TrimSpace(f.Vehicle)); v != "" {
		where = append(where, `(LOWER(a.vehicle) LIKE ? ESCAPE '\' OR LOWER(a.plate) LIKE ? ESCAPE '\' OR a.vehicle_year LIKE ? ESCAPE '\')`)
		p := contains(v)
		args = append(args, p, p, p)
	}
	if v := strings.TrimSpace(f.Date); v != "" {
		where = append(where, `a.date = ?`)
		args = append(args, v)
	}

	out := []domain.Appointment{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT`+appointmentCols+`
	  FROM appointments a
	  LEFT JOIN professionals p ON p.id = a.professional_id
	  WHERE `+strings.Join(where, " AND ")+`
	  ORDER BY a.date, a.time, professional_name
	`, args...)
	return out, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains builds a LIKE pattern matching v literally anywhere in the column.
func contains(v string) string { return "%" + likeEscaper.Replace(v) + "%" }

// SlotTaken reports whether another appointment holds (date, time, professional).
// exceptID lets an edit ignore its own row.
func (r *AppointmentRepo) SlotTaken(ctx context.Context, date, time, professionalID, exceptID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
	  SELECT COUNT(*) FROM appointments
	  WHERE date = ? AND time = ? AND professional_id = ? AND id != ?
	`, date, time, professionalID, exceptID)
	return n > 0, err
}

// TakenTimes returns the booked start times for a professional on a day.
func (r *AppointmentRepo) TakenTimes(ctx context.Context, date, professionalID string) ([]string, error) {
	out := []string{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT time FROM appointments WHERE date = ? AND professional_id = ? ORDER BY time
	`, date, professionalID)
	return out, err
}

// BookedDays counts appointments per day within [from, to].
func (r *AppointmentRepo) BookedDays(ctx context.Context, from, to string) ([]domain.BookedDay, error) {
	out := []domain.BookedDay{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT date, COUNT(*) AS n FROM appointments
	  WHERE date >= ? AND date <= ?
	  GROUP BY date ORDER BY date
	`, from, to)
	return out, err
}

// Reschedule changes time, service and professional of an appointment.
// updatedAt is RFC3339, like created_at.
func (r *AppointmentRepo) Reschedule(ctx context.Context, id, time, serviceID, serviceName, professionalID, updatedAt string) error {
	_, err := r.db.ExecContext(ctx, `
	  UPDATE appointments
	  SET time = ?, service_id = ?, service_name = ?, professional_id = ?, updated_at = ?
	  WHERE id = ?
	`, time, serviceID, serviceName, professionalID, updatedAt, id)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// Delete removes an appointment; it reports whether a row existed.
func (r *AppointmentRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type dayCount struct {
	Total int `db:"total"`
	Today int `db:"today"`
	Week  int `db:"week"`
}

// Counts returns total, on-day and since-day counts for the dashboard.
func (r *AppointmentRepo) Counts(ctx context.Context, today, weekStart string) (total, onToday, sinceWeek int, err error) {
	var c dayCount
	err = r.db.GetContext(ctx, &c, `
	  SELECT COUNT(*) AS total,
	         COALESCE(SUM(CASE WHEN date = ? THEN 1 ELSE 0 END),0) AS today,
	         COALESCE(SUM(CASE WHEN date >= ? THEN 1 ELSE 0 END),0) AS week
	  FROM appointments
	`, today, weekStart)
	return c.Total, c.Today, c.Week, err
}

type ProfessionalCountRow struct {
	Name  string `db:"name"`
	Count int    `db:"n"`
}

func (r *AppointmentRepo) CountByProfessional(ctx context.Context) ([]ProfessionalCountRow, error) {
	out := []ProfessionalCountRow{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT COALESCE(p.name, a.professional_id) AS name, COUNT(*) AS n
	  FROM appointments a
	  LEFT JOIN professionals p ON p.id = a.professional_id
	  GROUP BY a.professional_id
	  ORDER BY n DESC, name
	`)
	return out, err
}
