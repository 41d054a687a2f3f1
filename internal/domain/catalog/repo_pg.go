package catalog

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

const medCols = `id, generic_name, brand_name, strength, dosage_form, company`

func (r *repoPG) SearchMedicines(ctx context.Context, query string) ([]Medicine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+medCols+` FROM medicine
		WHERE brand_name ILIKE '%' || $1 || '%' OR generic_name ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT $2`, query, MaxSearchResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Medicine
	for rows.Next() {
		var m Medicine
		if err := rows.Scan(&m.ID, &m.GenericName, &m.BrandName, &m.Strength, &m.DosageForm, &m.Company); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repoPG) SearchLabTests(ctx context.Context, query string) ([]LabTest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, preparation FROM lab_test
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT $2`, query, MaxSearchResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LabTest
	for rows.Next() {
		var t LabTest
		if err := rows.Scan(&t.ID, &t.Name, &t.Preparation); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repoPG) GetMedicine(ctx context.Context, id string) (*Medicine, error) {
	var m Medicine
	err := r.pool.QueryRow(ctx, `SELECT `+medCols+` FROM medicine WHERE id = $1`, id).
		Scan(&m.ID, &m.GenericName, &m.BrandName, &m.Strength, &m.DosageForm, &m.Company)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repoPG) GetLabTest(ctx context.Context, id string) (*LabTest, error) {
	var t LabTest
	err := r.pool.QueryRow(ctx, `SELECT id, name, preparation FROM lab_test WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Preparation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repoPG) CreateMedicine(ctx context.Context, m *Medicine) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medicine (id, generic_name, brand_name, strength, dosage_form, company)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO NOTHING`,
		m.ID, m.GenericName, m.BrandName, m.Strength, m.DosageForm, m.Company,
	)
	return err
}

func (r *repoPG) CreateLabTest(ctx context.Context, t *LabTest) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_test (id, name, preparation)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO NOTHING`,
		t.ID, t.Name, t.Preparation,
	)
	return err
}
