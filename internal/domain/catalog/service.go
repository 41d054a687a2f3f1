package catalog

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// MinQueryLength is the shortest query the type-ahead will run; anything
// shorter returns an empty result set without touching the store.
const MinQueryLength = 2

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) SearchMedicines(ctx context.Context, query string) ([]Medicine, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, nil
	}
	return s.repo.SearchMedicines(ctx, query)
}

func (s *Service) SearchLabTests(ctx context.Context, query string) ([]LabTest, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, nil
	}
	return s.repo.SearchLabTests(ctx, query)
}

// NewMedicineSearcher opens a debounced, last-query-wins searcher over the
// medicine catalog for one interactive session. Callers own the returned
// searcher and must Close it.
func (s *Service) NewMedicineSearcher(debounce time.Duration) *Searcher[Medicine] {
	return NewSearcher(s.SearchMedicines, debounce)
}

// NewLabTestSearcher is the lab-test counterpart of NewMedicineSearcher.
func (s *Service) NewLabTestSearcher(debounce time.Duration) *Searcher[LabTest] {
	return NewSearcher(s.SearchLabTests, debounce)
}

func (s *Service) GetMedicine(ctx context.Context, id string) (*Medicine, error) {
	return s.repo.GetMedicine(ctx, id)
}

func (s *Service) GetLabTest(ctx context.Context, id string) (*LabTest, error) {
	return s.repo.GetLabTest(ctx, id)
}
