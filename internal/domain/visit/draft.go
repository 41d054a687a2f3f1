package visit

import (
	"errors"
	"fmt"
	"time"
)

// ErrIndexOutOfRange signals a positional line-item mutation outside the
// sequence bounds. A correctly synchronized caller never triggers it; it is
// a contract violation, not a user error. The failing mutation leaves the
// sequence untouched.
var ErrIndexOutOfRange = errors.New("line item index out of range")

// Field names the free-text visit fields a draft accepts.
type Field string

const (
	FieldClinicalNotes Field = "clinicalNotes"
	FieldDiagnosis     Field = "diagnosis"
	FieldAdvice        Field = "advice"
	FieldFollowUpDate  Field = "followUpDate"
)

// MedicineField names the editable fields of a medicine line.
type MedicineField string

const (
	MedFieldDose      MedicineField = "dose"
	MedFieldFrequency MedicineField = "frequency"
	MedFieldDuration  MedicineField = "duration"
	MedFieldRoute     MedicineField = "route"
	MedFieldSig       MedicineField = "sig"
)

// followUpLayout is the wire format of the follow-up date field.
const followUpLayout = "2006-01-02"

// Draft is an in-memory visit under active editing. loadedVersion is the
// prescription version the draft was loaded with; a commit of an edit
// persists loadedVersion + 1 regardless of what was changed in between.
type Draft struct {
	Visit

	loadedVersion int
	isEdit        bool
}

// SetField replaces one visit-level field. No validation happens here:
// empty diagnosis, empty medicine list and past follow-up dates are all
// accepted. FieldFollowUpDate takes YYYY-MM-DD, or "" to clear.
func (d *Draft) SetField(f Field, value string) error {
	switch f {
	case FieldClinicalNotes:
		d.ClinicalNotes = value
	case FieldDiagnosis:
		d.Diagnosis = value
	case FieldAdvice:
		d.Advice = value
	case FieldFollowUpDate:
		if value == "" {
			d.FollowUpDate = nil
			return nil
		}
		t, err := time.Parse(followUpLayout, value)
		if err != nil {
			return fmt.Errorf("parse follow-up date %q: %w", value, err)
		}
		d.FollowUpDate = &t
	default:
		return fmt.Errorf("unknown draft field %q", f)
	}
	return nil
}

// UpdateMedicineField edits one field of the medicine line at index i.
func (d *Draft) UpdateMedicineField(i int, f MedicineField, value string) error {
	if i < 0 || i >= len(d.Medicines) {
		return fmt.Errorf("update medicine %d of %d: %w", i, len(d.Medicines), ErrIndexOutOfRange)
	}
	switch f {
	case MedFieldDose:
		d.Medicines[i].Dose = value
	case MedFieldFrequency:
		d.Medicines[i].Frequency = value
	case MedFieldDuration:
		d.Medicines[i].Duration = value
	case MedFieldRoute:
		d.Medicines[i].Route = value
	case MedFieldSig:
		d.Medicines[i].Sig = value
	default:
		return fmt.Errorf("unknown medicine field %q", f)
	}
	return nil
}

// RemoveMedicine drops the line at index i. Remaining lines keep their
// identities and relative order.
func (d *Draft) RemoveMedicine(i int) error {
	if i < 0 || i >= len(d.Medicines) {
		return fmt.Errorf("remove medicine %d of %d: %w", i, len(d.Medicines), ErrIndexOutOfRange)
	}
	d.Medicines = append(d.Medicines[:i], d.Medicines[i+1:]...)
	return nil
}

// UpdateTestInstructions edits the free-text instructions of the lab-test
// line at index i.
func (d *Draft) UpdateTestInstructions(i int, value string) error {
	if i < 0 || i >= len(d.LabTests) {
		return fmt.Errorf("update lab test %d of %d: %w", i, len(d.LabTests), ErrIndexOutOfRange)
	}
	d.LabTests[i].Instructions = value
	return nil
}

// RemoveTest drops the lab-test line at index i.
func (d *Draft) RemoveTest(i int) error {
	if i < 0 || i >= len(d.LabTests) {
		return fmt.Errorf("remove lab test %d of %d: %w", i, len(d.LabTests), ErrIndexOutOfRange)
	}
	d.LabTests = append(d.LabTests[:i], d.LabTests[i+1:]...)
	return nil
}

// LoadedVersion returns the prescription version this draft was loaded
// with (1 for a new draft).
func (d *Draft) LoadedVersion() int {
	return d.loadedVersion
}

// IsEdit reports whether committing this draft updates an existing visit.
func (d *Draft) IsEdit() bool {
	return d.isEdit
}
