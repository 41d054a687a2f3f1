package catalog

import (
	"context"
	"strings"
	"sync"
	"time"
)

// repoMem is the in-memory catalog. Entries keep insertion order so search
// results rank by catalog order, matching the Postgres repository.
type repoMem struct {
	mu        sync.RWMutex
	medicines []Medicine
	labTests  []LabTest
	latency   time.Duration
}

// NewMemRepo returns an empty in-memory catalog. A non-zero latency is
// applied to every call to mimic a remote store during development.
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

func (r *repoMem) SearchMedicines(ctx context.Context, query string) ([]Medicine, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	lowered := strings.ToLower(query)
	var out []Medicine
	for i := range r.medicines {
		if r.medicines[i].Matches(lowered) {
			out = append(out, r.medicines[i])
			if len(out) == MaxSearchResults {
				break
			}
		}
	}
	return out, nil
}

func (r *repoMem) SearchLabTests(ctx context.Context, query string) ([]LabTest, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	lowered := strings.ToLower(query)
	var out []LabTest
	for i := range r.labTests {
		if r.labTests[i].Matches(lowered) {
			out = append(out, r.labTests[i].Clone())
			if len(out) == MaxSearchResults {
				break
			}
		}
	}
	return out, nil
}

func (r *repoMem) GetMedicine(ctx context.Context, id string) (*Medicine, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.medicines {
		if r.medicines[i].ID == id {
			m := r.medicines[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (r *repoMem) GetLabTest(ctx context.Context, id string) (*LabTest, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.labTests {
		if r.labTests[i].ID == id {
			t := r.labTests[i].Clone()
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *repoMem) CreateMedicine(ctx context.Context, m *Medicine) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.medicines = append(r.medicines, *m)
	return nil
}

func (r *repoMem) CreateLabTest(ctx context.Context, t *LabTest) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labTests = append(r.labTests, t.Clone())
	return nil
}
