package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"muciocar/internal/domain"
	"muciocar/internal/repos"
	"muciocar/internal/validate"
)

type ProfessionalInput struct {
	Name      string
	Specialty string
	PhotoURL  string
	Active    bool
}

type ProfessionalService struct {
	Pros *repos.ProfessionalRepo
}

func NewProfessionalService(pros *repos.ProfessionalRepo) *ProfessionalService {
	return &ProfessionalService{Pros: pros}
}

func (s *ProfessionalService) List(ctx context.Context) ([]domain.Professional, error) {
	return s.Pros.List(ctx, false)
}

func (s *ProfessionalService) ListActive(ctx context.Context) ([]domain.Professional, error) {
	return s.Pros.List(ctx, true)
}

func (s *ProfessionalService) Get(ctx context.Context, id string) (domain.Professional, error) {
	p, err := s.Pros.Get(ctx, id)
	return p, notFound(err)
}

func checkProfessional(in ProfessionalInput) (domain.Professional, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Professional{}, invalid("name", "Nome e especialidade são obrigatórios")
	}
	spec, ok := validate.Text(in.Specialty, 80)
	if !ok {
		return domain.Professional{}, invalid("specialty", "Nome e especialidade são obrigatórios")
	}
	photo, ok := validate.URL(in.PhotoURL)
	if !ok {
		return domain.Professional{}, invalid("photo_url", "URL da foto inválida")
	}
	return domain.Professional{Name: name, Specialty: spec, PhotoURL: photo, Active: in.Active}, nil
}

func (s *ProfessionalService) Create(ctx context.Context, in ProfessionalInput) (domain.Professional, error) {
	p, err := checkProfessional(in)
	if err != nil {
		return domain.Professional{}, err
	}
	p.ID = uuid.NewString()
	if err := s.Pros.Create(ctx, p); err != nil {
		return domain.Professional{}, err
	}
	return p, nil
}

func (s *ProfessionalService) Update(ctx context.Context, id string, in ProfessionalInput) (domain.Professional, error) {
	p, err := checkProfessional(in)
	if err != nil {
		return domain.Professional{}, err
	}
	p.ID = id
	ok, err := s.Pros.Update(ctx, p)
	if err != nil {
		return domain.Professional{}, err
	}
	if !ok {
		return domain.Professional{}, ErrNotFound
	}
	return p, nil
}

func (s *ProfessionalService) ToggleActive(ctx context.Context, id string) error {
	ok, err := s.Pros.ToggleActive(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete refuses professionals that still have appointments.
func (s *ProfessionalService) Delete(ctx context.Context, id string) error {
	ok, err := s.Pros.Delete(ctx, id)
	if errors.Is(err, repos.ErrInUse) {
		return ErrProfessionalInUse
	}
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
