// Package doctor holds practitioner reference data used on prescription
// headers and signatures.
package doctor

// Doctor maps to the doctor table.
type Doctor struct {
	ID                  string `db:"id" json:"id"`
	Name                string `db:"name" json:"name"`
	BMDCRegNo           string `db:"bmdc_reg_no" json:"bmdcRegNo"`
	Specialization      string `db:"specialization" json:"specialization"`
	DigitalSignatureURL string `db:"digital_signature_url" json:"digitalSignatureUrl"`
	Chamber             string `db:"chamber" json:"chamber"`
	VisitingHours       string `db:"visiting_hours" json:"visitingHours"`
}
