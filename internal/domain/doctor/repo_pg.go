package doctor

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Doctor, error) {
	var d Doctor
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, bmdc_reg_no, specialization, digital_signature_url, chamber, visiting_hours
		FROM doctor WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.BMDCRegNo, &d.Specialization, &d.DigitalSignatureURL, &d.Chamber, &d.VisitingHours)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor (id, name, bmdc_reg_no, specialization, digital_signature_url, chamber, visiting_hours)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO NOTHING`,
		d.ID, d.Name, d.BMDCRegNo, d.Specialization, d.DigitalSignatureURL, d.Chamber, d.VisitingHours,
	)
	return err
}
