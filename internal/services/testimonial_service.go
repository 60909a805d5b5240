package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"muciocar/internal/domain"
	"muciocar/internal/events"
	"muciocar/internal/repos"
	"muciocar/internal/validate"
)

type TestimonialInput struct {
	Name         string
	Rating       string
	Comment      string
	VehicleModel string
	ServiceName  string
}

type TestimonialService struct {
	Repo   *repos.TestimonialRepo
	Events events.Publisher
	Now    func() time.Time
}

func NewTestimonialService(repo *repos.TestimonialRepo, pub events.Publisher) *TestimonialService {
	return &TestimonialService{Repo: repo, Events: pub, Now: time.Now}
}

// Submit stores a testimonial pending approval.
func (s *TestimonialService) Submit(ctx context.Context, in TestimonialInput) (domain.Testimonial, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Testimonial{}, invalid("name", "Por favor, informe seu nome")
	}
	rating, ok := validate.Rating(in.Rating)
	if !ok {
		return domain.Testimonial{}, invalid("rating", "Por favor, selecione uma avaliação de 1 a 5 estrelas")
	}
	comment, ok := validate.Text(in.Comment, 1000)
	if !ok {
		return domain.Testimonial{}, invalid("comment", "Por favor, escreva um comentário")
	}
	t := domain.Testimonial{
		ID:           uuid.NewString(),
		Name:         name,
		Rating:       rating,
		Comment:      comment,
		VehicleModel: validate.Optional(in.VehicleModel, 80),
		ServiceName:  validate.Optional(in.ServiceName, 80),
		CreatedAt:    s.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return domain.Testimonial{}, err
	}
	events.Emit(ctx, s.Events, events.TestimonialSubmitted, t)
	return t, nil
}

// Latest returns the newest approved testimonials; n defaults to 3.
func (s *TestimonialService) Latest(ctx context.Context, n int) ([]domain.Testimonial, error) {
	return s.Repo.LatestApproved(ctx, n)
}

func (s *TestimonialService) ListAll(ctx context.Context) ([]domain.Testimonial, error) {
	return s.Repo.ListAll(ctx)
}

func (s *TestimonialService) Approve(ctx context.Context, id string) error {
	ok, err := s.Repo.Approve(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if t, err := s.Repo.Get(ctx, id); err == nil {
		events.Emit(ctx, s.Events, events.TestimonialApproved, t)
	}
	return nil
}

func (s *TestimonialService) Reply(ctx context.Context, id, text string) error {
	resp, ok := validate.Text(text, 1000)
	if !ok {
		return invalid("response", "Por favor, digite uma resposta antes de enviar.")
	}
	ok, err := s.Repo.Reply(ctx, id, resp, s.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
