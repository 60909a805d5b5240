package services

import (
	"muciocar/internal/catalog"
	"muciocar/internal/domain"
)

type CatalogService struct {
	Cat *catalog.Catalog
}

func NewCatalogService(c *catalog.Catalog) *CatalogService { return &CatalogService{Cat: c} }

func (s *CatalogService) List() []domain.Service { return s.Cat.All() }

func (s *CatalogService) Get(id string) (domain.Service, error) {
	svc, ok := s.Cat.Get(id)
	if !ok {
		return domain.Service{}, ErrNotFound
	}
	return svc, nil
}
