package repos

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"muciocar/internal/domain"
)

// ErrInUse is returned when a row is still referenced elsewhere.
var ErrInUse = errors.New("in use")

type ProfessionalRepo struct{ db *sqlx.DB }

func NewProfessionalRepo(db *sqlx.DB) *ProfessionalRepo { return &ProfessionalRepo{db: db} }

const professionalCols = `id, name, specialty, photo_url, active, COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProfessionalRepo) List(ctx context.Context, onlyActive bool) ([]domain.Professional, error) {
	q := `SELECT ` + professionalCols + ` FROM professionals`
	if onlyActive {
		q += ` WHERE active = 1`
	}
	q += ` ORDER BY name`
	out := []domain.Professional{}
	err := r.db.SelectContext(ctx, &out, q)
	return out, err
}

func (r *ProfessionalRepo) Get(ctx context.Context, id string) (domain.Professional, error) {
	var p domain.Professional
	err := r.db.GetContext(ctx, &p, `SELECT `+professionalCols+` FROM professionals WHERE id = ?`, id)
	return p, err
}

func (r *ProfessionalRepo) Create(ctx context.Context, p domain.Professional) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO professionals(id, name, specialty, photo_url, active, created_at)
		VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Specialty, p.PhotoURL, p.Active)
	return err
}

// Update overwrites the editable fields; it reports whether the row existed.
func (r *ProfessionalRepo) Update(ctx context.Context, p domain.Professional) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE professionals
		SET name = ?, specialty = ?, photo_url = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.Specialty, p.PhotoURL, p.Active, p.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ProfessionalRepo) ToggleActive(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE professionals SET active = 1 - active, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a professional. Rows referenced by appointments yield ErrInUse.
func (r *ProfessionalRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM professionals WHERE id = ?`, id)
	if isForeignKeyViolation(err) {
		return false, ErrInUse
	}
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
