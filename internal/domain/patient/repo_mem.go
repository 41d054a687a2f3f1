package patient

import (
	"context"
	"sync"
	"time"
)

type repoMem struct {
	mu       sync.RWMutex
	patients []*Patient
	latency  time.Duration
}

// NewMemRepo returns an empty in-memory registry with optional simulated
// store latency.
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

func clone(p *Patient) *Patient {
	cp := *p
	cp.Allergies = append([]string(nil), p.Allergies...)
	return &cp
}

func (r *repoMem) List(ctx context.Context, query string) ([]*Patient, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Patient, 0, len(r.patients))
	for _, p := range r.patients {
		if query == "" || p.Matches(query) {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (r *repoMem) GetByID(ctx context.Context, id string) (*Patient, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.patients {
		if p.ID == id {
			return clone(p), nil
		}
	}
	return nil, ErrNotFound
}

func (r *repoMem) Create(ctx context.Context, p *Patient) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.patients = append(r.patients, clone(p))
	return nil
}
