// Package catalog holds the read-only reference data a prescription is
// composed from: the medicine formulary and the orderable lab tests.
package catalog

import "strings"

// Medicine is a formulary entry. Prescribed line items embed a copy of the
// entry, so editing the catalog never rewrites historical prescriptions.
type Medicine struct {
	ID          string `db:"id" json:"id"`
	GenericName string `db:"generic_name" json:"genericName"`
	BrandName   string `db:"brand_name" json:"brandName"`
	Strength    string `db:"strength" json:"strength"`
	DosageForm  string `db:"dosage_form" json:"dosageForm"`
	Company     string `db:"company" json:"company"`
}

// Matches reports whether the medicine matches a lowercased query by brand
// or generic name substring.
func (m *Medicine) Matches(loweredQuery string) bool {
	return strings.Contains(strings.ToLower(m.BrandName), loweredQuery) ||
		strings.Contains(strings.ToLower(m.GenericName), loweredQuery)
}

// LabTest is an orderable investigation.
type LabTest struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Preparation *string `db:"preparation" json:"preparation,omitempty"`
}

// Matches reports whether the test name contains the lowercased query.
func (t *LabTest) Matches(loweredQuery string) bool {
	return strings.Contains(strings.ToLower(t.Name), loweredQuery)
}

// Clone returns a copy that shares nothing with t, duplicating the
// Preparation pointer.
func (t LabTest) Clone() LabTest {
	if t.Preparation != nil {
		prep := *t.Preparation
		t.Preparation = &prep
	}
	return t
}
