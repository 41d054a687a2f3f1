package visit

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetVisit(ctx context.Context, patientID, visitID string) (*Visit, error) {
	return s.repo.GetByID(ctx, patientID, visitID)
}

// ListVisitsByPatient returns a patient's visits, newest first.
func (s *Service) ListVisitsByPatient(ctx context.Context, patientID string) ([]*Visit, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
