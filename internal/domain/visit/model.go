// Package visit holds encounter records and the prescription draft
// composer. A visit owns its medicine and lab-test line items; line items
// embed a copy of the catalog entry taken at insertion time, so later
// catalog edits never rewrite a saved prescription.
package visit

import (
	"time"

	"github.com/mediflow/clinic/internal/domain/catalog"
)

// PrescribedMedicine is one medicine line of a prescription. IsNew marks a
// line added during the current edit session; it only drives print
// filtering and carries no clinical meaning beyond that session.
type PrescribedMedicine struct {
	ID        string           `json:"id"`
	Medicine  catalog.Medicine `json:"medicine"`
	Dose      string           `json:"dose"`
	Frequency string           `json:"frequency"`
	Duration  string           `json:"duration"`
	Route     string           `json:"route"`
	Sig       string           `json:"sig"`
	IsNew     bool             `json:"isNew"`
}

// OrderedLabTest is one ordered investigation line.
type OrderedLabTest struct {
	ID           string          `json:"id"`
	Test         catalog.LabTest `json:"test"`
	Instructions string          `json:"instructions"`
}

// Visit maps to the visit table. Line-item order is insertion order and is
// meaningful: it is the display and print order.
type Visit struct {
	ID                  string               `db:"id" json:"id"`
	PatientID           string               `db:"patient_id" json:"patientId"`
	DoctorID            string               `db:"doctor_id" json:"doctorId"`
	VisitDate           time.Time            `db:"visit_date" json:"visitDate"`
	ClinicalNotes       string               `db:"clinical_notes" json:"clinicalNotes"`
	Diagnosis           string               `db:"diagnosis" json:"diagnosis"`
	Medicines           []PrescribedMedicine `db:"medicines" json:"medicines"`
	LabTests            []OrderedLabTest     `db:"lab_tests" json:"labTests"`
	Advice              string               `db:"advice" json:"advice"`
	FollowUpDate        *time.Time           `db:"follow_up_date" json:"followUpDate,omitempty"`
	PrescriptionVersion int                  `db:"prescription_version" json:"prescriptionVersion"`
}

// Clone returns a deep copy of the visit. Line-item slices and the embedded
// catalog snapshots are copied by value; the catalog types contain only
// value fields apart from LabTest.Preparation, which is duplicated.
func (v *Visit) Clone() *Visit {
	cp := *v
	if v.Medicines != nil {
		cp.Medicines = append([]PrescribedMedicine(nil), v.Medicines...)
	}
	if v.LabTests != nil {
		cp.LabTests = make([]OrderedLabTest, len(v.LabTests))
		for i, lt := range v.LabTests {
			cp.LabTests[i] = lt
			if lt.Test.Preparation != nil {
				prep := *lt.Test.Preparation
				cp.LabTests[i].Test.Preparation = &prep
			}
		}
	}
	if v.FollowUpDate != nil {
		fu := *v.FollowUpDate
		cp.FollowUpDate = &fu
	}
	return &cp
}
