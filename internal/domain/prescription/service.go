package prescription

import (
	"context"

	"github.com/mediflow/clinic/internal/domain/doctor"
	"github.com/mediflow/clinic/internal/domain/patient"
	"github.com/mediflow/clinic/internal/domain/visit"
)

type Service struct {
	doctors  doctor.Repository
	patients patient.Repository
	visits   visit.Repository
	baseURL  string
}

func NewService(doctors doctor.Repository, patients patient.Repository, visits visit.Repository, verifyBaseURL string) *Service {
	return &Service{doctors: doctors, patients: patients, visits: visits, baseURL: verifyBaseURL}
}

// Document fetches the patient, the visit and the prescribing doctor, in
// that order, and shapes the printable document. All three must resolve
// before anything is built.
func (s *Service) Document(ctx context.Context, patientID, visitID string, mode Mode, lang string) (*Document, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	v, err := s.visits.GetByID(ctx, patientID, visitID)
	if err != nil {
		return nil, err
	}
	d, err := s.doctors.GetByID(ctx, v.DoctorID)
	if err != nil {
		return nil, err
	}
	return Build(d, p, v, Options{Mode: mode, Language: lang, VerifyBaseURL: s.baseURL}), nil
}

// Resolve maps a verification token back to its visit.
func (s *Service) Resolve(ctx context.Context, token string) (*visit.Visit, error) {
	visits, err := s.visits.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range visits {
		if Token(v.ID) == token {
			return v, nil
		}
	}
	return nil, visit.ErrNotFound
}
