package visit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// repoPG stores line-item sequences as JSONB documents, which keeps the
// embedded catalog snapshots copy-by-value in storage.
type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const visitCols = `id, patient_id, doctor_id, visit_date, clinical_notes, diagnosis,
	medicines, lab_tests, advice, follow_up_date, prescription_version`

func marshalLines(v *Visit) ([]byte, []byte, error) {
	meds := v.Medicines
	if meds == nil {
		meds = []PrescribedMedicine{}
	}
	tests := v.LabTests
	if tests == nil {
		tests = []OrderedLabTest{}
	}
	medsJSON, err := json.Marshal(meds)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal medicines: %w", err)
	}
	testsJSON, err := json.Marshal(tests)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal lab tests: %w", err)
	}
	return medsJSON, testsJSON, nil
}

func scanVisit(row pgx.Row) (*Visit, error) {
	var (
		v         Visit
		medsJSON  []byte
		testsJSON []byte
	)
	err := row.Scan(
		&v.ID, &v.PatientID, &v.DoctorID, &v.VisitDate, &v.ClinicalNotes, &v.Diagnosis,
		&medsJSON, &testsJSON, &v.Advice, &v.FollowUpDate, &v.PrescriptionVersion,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(medsJSON, &v.Medicines); err != nil {
		return nil, fmt.Errorf("unmarshal medicines: %w", err)
	}
	if err := json.Unmarshal(testsJSON, &v.LabTests); err != nil {
		return nil, fmt.Errorf("unmarshal lab tests: %w", err)
	}
	return &v, nil
}

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	medsJSON, testsJSON, err := marshalLines(v)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO visit (
			id, patient_id, doctor_id, visit_date, clinical_notes, diagnosis,
			medicines, lab_tests, advice, follow_up_date, prescription_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO NOTHING`,
		v.ID, v.PatientID, v.DoctorID, v.VisitDate, v.ClinicalNotes, v.Diagnosis,
		medsJSON, testsJSON, v.Advice, v.FollowUpDate, v.PrescriptionVersion,
	)
	return err
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	medsJSON, testsJSON, err := marshalLines(v)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE visit SET
			visit_date=$2, clinical_notes=$3, diagnosis=$4,
			medicines=$5, lab_tests=$6, advice=$7, follow_up_date=$8,
			prescription_version=$9
		WHERE id = $1`,
		v.ID, v.VisitDate, v.ClinicalNotes, v.Diagnosis,
		medsJSON, testsJSON, v.Advice, v.FollowUpDate, v.PrescriptionVersion,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, patientID, visitID string) (*Visit, error) {
	return scanVisit(r.pool.QueryRow(ctx,
		`SELECT `+visitCols+` FROM visit WHERE id = $1 AND patient_id = $2`,
		visitID, patientID))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID string) ([]*Visit, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+visitCols+` FROM visit WHERE patient_id = $1 ORDER BY visit_date DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *repoPG) List(ctx context.Context) ([]*Visit, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+visitCols+` FROM visit ORDER BY visit_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
