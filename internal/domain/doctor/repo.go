package doctor

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("doctor not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (*Doctor, error)
	Create(ctx context.Context, d *Doctor) error
}
