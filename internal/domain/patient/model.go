// Package patient holds the clinic's patient registry. Patients are
// immutable once registered; edits happen through new visit records.
package patient

import (
	"strings"
	"time"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Patient maps to the patient table. PatientCode is the human-readable
// registration code printed on documents (e.g. P-2024001); ID is the opaque
// record identity.
type Patient struct {
	ID          string    `db:"id" json:"id"`
	PatientCode string    `db:"patient_code" json:"patientId"`
	NameEn      string    `db:"name_en" json:"nameEn"`
	NameBn      string    `db:"name_bn" json:"nameBn"`
	Age         int       `db:"age" json:"age"`
	DOB         time.Time `db:"dob" json:"dob"`
	Gender      string    `db:"gender" json:"gender"`
	Phone       string    `db:"phone" json:"phone"`
	Address     string    `db:"address" json:"address"`
	BloodGroup  string    `db:"blood_group" json:"bloodGroup"`
	Allergies   []string  `db:"allergies" json:"allergies"`
	Weight      float64   `db:"weight_kg" json:"weight"`
	Height      float64   `db:"height_cm" json:"height"`
	NID         *string   `db:"nid" json:"nid,omitempty"`
	Occupation  *string   `db:"occupation" json:"occupation,omitempty"`
	PhotoURL    string    `db:"photo_url" json:"photoUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// DisplayName returns the Bengali name when lang is "bn" and it is set,
// otherwise the English name.
func (p *Patient) DisplayName(lang string) string {
	if lang == "bn" && p.NameBn != "" {
		return p.NameBn
	}
	return p.NameEn
}

// Matches reports whether the patient matches a registry search query:
// case-insensitive substring on the English name, registration code and
// phone, raw substring on the Bengali name (no case folding applies).
func (p *Patient) Matches(query string) bool {
	lowered := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.NameEn), lowered) ||
		strings.Contains(p.NameBn, query) ||
		strings.Contains(p.Phone, query) ||
		strings.Contains(strings.ToLower(p.PatientCode), lowered)
}
