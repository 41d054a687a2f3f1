package visit

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a visit id is absent from the store. During
// an update it means the record vanished between load and commit.
var ErrNotFound = errors.New("visit not found")

type Repository interface {
	// Create inserts a new visit under the id already set on v.
	Create(ctx context.Context, v *Visit) error
	// Update replaces an existing visit wholesale; ErrNotFound when the id
	// is absent.
	Update(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, patientID, visitID string) (*Visit, error)
	// ListByPatient returns a patient's visits, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]*Visit, error)
	// List returns every visit; used by token verification.
	List(ctx context.Context) ([]*Visit, error)
}
