package patient

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("patient not found")

type Repository interface {
	// List returns patients in registry order. A non-empty query filters by
	// Patient.Matches semantics; an empty query returns everyone.
	List(ctx context.Context, query string) ([]*Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	Create(ctx context.Context, p *Patient) error
}
