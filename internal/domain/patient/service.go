package patient

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPatients(ctx context.Context, query string) ([]*Patient, error) {
	return s.repo.List(ctx, strings.TrimSpace(query))
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) RegisterPatient(ctx context.Context, p *Patient) error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if p.NameEn == "" {
		return fmt.Errorf("name_en is required")
	}
	if p.PatientCode == "" {
		return fmt.Errorf("patient code is required")
	}
	return s.repo.Create(ctx, p)
}
