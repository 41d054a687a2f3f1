// Package prescription shapes a committed visit into a printable
// prescription document and serves its print, QR and verification views.
package prescription

import (
	"fmt"

	"github.com/mediflow/clinic/internal/domain/doctor"
	"github.com/mediflow/clinic/internal/domain/patient"
	"github.com/mediflow/clinic/internal/domain/visit"
)

// Mode selects which medicine lines a document carries.
type Mode string

const (
	// ModeAll prints every prescribed medicine.
	ModeAll Mode = "all"
	// ModeNewOnly prints only the lines added in the latest edit.
	ModeNewOnly Mode = "new"
)

// ParseMode maps the ?mode= query value; empty means ModeAll.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeAll):
		return ModeAll, nil
	case string(ModeNewOnly):
		return ModeNewOnly, nil
	}
	return "", fmt.Errorf("unknown print mode %q", s)
}

// Dates on the printed page use day-first formatting.
const printDateLayout = "02/01/2006"

// Options controls document shaping.
type Options struct {
	Mode Mode
	// Language picks the patient name variant ("bn" prefers the Bengali
	// name when present).
	Language string
	// VerifyBaseURL is the public base the footer's verify link and QR
	// code point at, e.g. https://clinic.example.com.
	VerifyBaseURL string
}

// Document is the fully shaped prescription, ready for any renderer.
type Document struct {
	Header       Header         `json:"header"`
	Patient      PatientStrip   `json:"patient"`
	Notes        string         `json:"clinicalNotes"`
	Diagnosis    string         `json:"diagnosis"`
	LabTests     []string       `json:"labTests"`
	ShowLabTests bool           `json:"showLabTests"`
	Medicines    []MedicineLine `json:"medicines"`
	Footer       Footer         `json:"footer"`
}

type Header struct {
	DoctorName     string `json:"doctorName"`
	Specialization string `json:"specialization"`
	BMDCRegNo      string `json:"bmdcRegNo"`
	Chamber        string `json:"chamber"`
	VisitingHours  string `json:"visitingHours"`
}

type PatientStrip struct {
	Name        string `json:"name"`
	AgeGender   string `json:"ageGender"`
	VisitDate   string `json:"visitDate"`
	PatientCode string `json:"patientId"`
	VisitID     string `json:"visitId"`
}

// MedicineLine is one numbered entry in the right column. Number is the
// print position; ItemID is the underlying line-item identity.
type MedicineLine struct {
	Number int    `json:"number"`
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Sig    string `json:"sig"`
	HasSig bool   `json:"hasSig"`
}

type Footer struct {
	Advice       string `json:"advice"`
	FollowUpDate string `json:"followUpDate"`
	HasFollowUp  bool   `json:"hasFollowUp"`
	SignatureURL string `json:"signatureUrl"`
	DoctorName   string `json:"doctorName"`
	VerifyToken  string `json:"verifyToken"`
	VerifyURL    string `json:"verifyUrl"`
}

// Build shapes a prescription document from its three source records.
// It never mutates its inputs.
func Build(d *doctor.Doctor, p *patient.Patient, v *visit.Visit, opts Options) *Document {
	doc := &Document{
		Header: Header{
			DoctorName:     d.Name,
			Specialization: d.Specialization,
			BMDCRegNo:      d.BMDCRegNo,
			Chamber:        d.Chamber,
			VisitingHours:  d.VisitingHours,
		},
		Patient: PatientStrip{
			Name:        p.DisplayName(opts.Language),
			AgeGender:   fmt.Sprintf("%d Y / %s", p.Age, p.Gender),
			VisitDate:   v.VisitDate.Format(printDateLayout),
			PatientCode: p.PatientCode,
			VisitID:     v.ID,
		},
		Notes:     v.ClinicalNotes,
		Diagnosis: v.Diagnosis,
	}

	for _, lt := range v.LabTests {
		doc.LabTests = append(doc.LabTests, lt.Test.Name)
	}
	doc.ShowLabTests = len(doc.LabTests) > 0

	number := 0
	for _, m := range v.Medicines {
		if opts.Mode == ModeNewOnly && !m.IsNew {
			continue
		}
		number++
		doc.Medicines = append(doc.Medicines, MedicineLine{
			Number: number,
			ItemID: m.ID,
			Name:   medicineHeading(m),
			Dosage: fmt.Sprintf("%s  %s  (%s)", m.Dose, m.Frequency, m.Duration),
			Sig:    m.Sig,
			HasSig: m.Sig != "",
		})
	}

	token := Token(v.ID)
	doc.Footer = Footer{
		Advice:       v.Advice,
		SignatureURL: d.DigitalSignatureURL,
		DoctorName:   d.Name,
		VerifyToken:  token,
		VerifyURL:    VerifyURL(opts.VerifyBaseURL, token),
	}
	if v.FollowUpDate != nil {
		doc.Footer.FollowUpDate = v.FollowUpDate.Format(printDateLayout)
		doc.Footer.HasFollowUp = true
	}
	return doc
}

// medicineHeading renders "Tablet Napa (Paracetamol) 500 mg".
func medicineHeading(m visit.PrescribedMedicine) string {
	return fmt.Sprintf("%s %s (%s) %s",
		m.Medicine.DosageForm, m.Medicine.BrandName, m.Medicine.GenericName, m.Medicine.Strength)
}
