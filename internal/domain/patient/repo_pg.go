package patient

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

const patientCols = `id, patient_code, name_en, name_bn, age, dob, gender, phone, address,
	blood_group, allergies, weight_kg, height_cm, nid, occupation, photo_url, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.PatientCode, &p.NameEn, &p.NameBn, &p.Age, &p.DOB, &p.Gender,
		&p.Phone, &p.Address, &p.BloodGroup, &p.Allergies, &p.Weight, &p.Height,
		&p.NID, &p.Occupation, &p.PhotoURL, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) List(ctx context.Context, query string) ([]*Patient, error) {
	sql := `SELECT ` + patientCols + ` FROM patient ORDER BY created_at, id`
	args := []interface{}{}
	if query != "" {
		sql = `SELECT ` + patientCols + ` FROM patient
			WHERE name_en ILIKE '%' || $1 || '%'
			   OR name_bn LIKE '%' || $1 || '%'
			   OR phone LIKE '%' || $1 || '%'
			   OR patient_code ILIKE '%' || $1 || '%'
			ORDER BY created_at, id`
		args = append(args, query)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (
			id, patient_code, name_en, name_bn, age, dob, gender, phone, address,
			blood_group, allergies, weight_kg, height_cm, nid, occupation, photo_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (id) DO NOTHING`,
		p.ID, p.PatientCode, p.NameEn, p.NameBn, p.Age, p.DOB, p.Gender,
		p.Phone, p.Address, p.BloodGroup, p.Allergies, p.Weight, p.Height,
		p.NID, p.Occupation, p.PhotoURL,
	)
	return err
}
