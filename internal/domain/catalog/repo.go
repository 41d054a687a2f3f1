package catalog

import (
	"context"
	"errors"
)

// MaxSearchResults caps catalog lookups; the editor's type-ahead only ever
// shows the first five matches.
const MaxSearchResults = 5

var ErrNotFound = errors.New("catalog entry not found")

type Repository interface {
	// SearchMedicines returns at most MaxSearchResults medicines whose brand
	// or generic name contains the query (case-insensitive), in catalog order.
	SearchMedicines(ctx context.Context, query string) ([]Medicine, error)
	// SearchLabTests returns at most MaxSearchResults tests whose name
	// contains the query (case-insensitive), in catalog order.
	SearchLabTests(ctx context.Context, query string) ([]LabTest, error)

	GetMedicine(ctx context.Context, id string) (*Medicine, error)
	GetLabTest(ctx context.Context, id string) (*LabTest, error)

	// Create operations exist for seeding and catalog administration.
	CreateMedicine(ctx context.Context, m *Medicine) error
	CreateLabTest(ctx context.Context, t *LabTest) error
}
