package visit

import (
	"context"
	"sort"
	"sync"
	"time"
)

type repoMem struct {
	mu      sync.RWMutex
	visits  []*Visit
	latency time.Duration
}

// NewMemRepo returns an empty in-memory visit store with optional simulated
// latency. Visits are cloned on the way in and out, so callers can never
// alias stored state.
func NewMemRepo(latency time.Duration) Repository {
	return &repoMem{latency: latency}
}

func (r *repoMem) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(r.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *repoMem) Create(ctx context.Context, v *Visit) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, v.Clone())
	return nil
}

func (r *repoMem) Update(ctx context.Context, v *Visit) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.visits {
		if existing.ID == v.ID {
			r.visits[i] = v.Clone()
			return nil
		}
	}
	return ErrNotFound
}

func (r *repoMem) GetByID(ctx context.Context, patientID, visitID string) (*Visit, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.visits {
		if v.PatientID == patientID && v.ID == visitID {
			return v.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *repoMem) ListByPatient(ctx context.Context, patientID string) ([]*Visit, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Visit
	for _, v := range r.visits {
		if v.PatientID == patientID {
			out = append(out, v.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitDate.After(out[j].VisitDate)
	})
	return out, nil
}

func (r *repoMem) List(ctx context.Context) ([]*Visit, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Visit, 0, len(r.visits))
	for _, v := range r.visits {
		out = append(out, v.Clone())
	}
	return out, nil
}
