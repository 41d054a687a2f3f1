package doctor

import (
	"context"
	"sync"
)

type repoMem struct {
	mu      sync.RWMutex
	doctors map[string]Doctor
}

func NewMemRepo() Repository {
	return &repoMem{doctors: make(map[string]Doctor)}
}

func (r *repoMem) GetByID(_ context.Context, id string) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *repoMem) Create(_ context.Context, d *Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[d.ID] = *d
	return nil
}
