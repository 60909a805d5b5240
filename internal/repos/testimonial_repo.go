package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"muciocar/internal/domain"
)

type TestimonialRepo struct{ db *sqlx.DB }

func NewTestimonialRepo(db *sqlx.DB) *TestimonialRepo { return &TestimonialRepo{db: db} }

const testimonialCols = `id, name, rating, comment, vehicle_model, service_name, approved, response, response_date, created_at`

func (r *TestimonialRepo) Create(ctx context.Context, t domain.Testimonial) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO testimonials(id, name, rating, comment, vehicle_model, service_name, approved, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Rating, t.Comment, t.VehicleModel, t.ServiceName, t.Approved, t.CreatedAt)
	return err
}

func (r *TestimonialRepo) Get(ctx context.Context, id string) (domain.Testimonial, error) {
	var t domain.Testimonial
	err := r.db.GetContext(ctx, &t, `SELECT `+testimonialCols+` FROM testimonials WHERE id = ?`, id)
	return t, err
}

// LatestApproved returns approved testimonials, newest first.
func (r *TestimonialRepo) LatestApproved(ctx context.Context, limit int) ([]domain.Testimonial, error) {
	if limit <= 0 {
		limit = 3
	}
	out := []domain.Testimonial{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+testimonialCols+` FROM testimonials
		WHERE approved = 1
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	return out, err
}

// ListAll returns every testimonial for the back-office, pending first.
func (r *TestimonialRepo) ListAll(ctx context.Context) ([]domain.Testimonial, error) {
	out := []domain.Testimonial{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+testimonialCols+` FROM testimonials
		ORDER BY approved, created_at DESC
	`)
	return out, err
}

func (r *TestimonialRepo) Approve(ctx context.Context, id string) (bool, error) {
	return r.exec(ctx, `UPDATE testimonials SET approved = 1 WHERE id = ?`, id)
}

func (r *TestimonialRepo) Reply(ctx context.Context, id, response, responseDate string) (bool, error) {
	return r.exec(ctx, `UPDATE testimonials SET response = ?, response_date = ? WHERE id = ?`, response, responseDate, id)
}

func (r *TestimonialRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.exec(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
}

func (r *TestimonialRepo) exec(ctx context.Context, q string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
