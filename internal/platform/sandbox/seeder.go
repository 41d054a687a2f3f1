// Package sandbox seeds demo clinic data for development and demo
// environments: one practitioner, a small patient roster, the medicine and
// lab-test catalogs, and a pair of historical visits.
package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/mediflow/clinic/internal/domain/catalog"
	"github.com/mediflow/clinic/internal/domain/doctor"
	"github.com/mediflow/clinic/internal/domain/patient"
	"github.com/mediflow/clinic/internal/domain/visit"
)

// Repos collects the repositories the seeder writes through.
type Repos struct {
	Doctors  doctor.Repository
	Patients patient.Repository
	Catalog  catalog.Repository
	Visits   visit.Repository
}

// Result summarizes what a seed run inserted.
type Result struct {
	Doctors   int `json:"doctors"`
	Patients  int `json:"patients"`
	Medicines int `json:"medicines"`
	LabTests  int `json:"labTests"`
	Visits    int `json:"visits"`
}

// Seed inserts the demo dataset. It goes through the repository interfaces
// so it works against both the in-memory store and Postgres (where creates
// are idempotent upserts).
func Seed(ctx context.Context, r Repos) (*Result, error) {
	res := &Result{}

	for _, d := range Doctors() {
		if err := r.Doctors.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("seed doctor %s: %w", d.ID, err)
		}
		res.Doctors++
	}
	for _, p := range Patients() {
		if err := r.Patients.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("seed patient %s: %w", p.ID, err)
		}
		res.Patients++
	}
	for _, m := range Medicines() {
		if err := r.Catalog.CreateMedicine(ctx, m); err != nil {
			return nil, fmt.Errorf("seed medicine %s: %w", m.ID, err)
		}
		res.Medicines++
	}
	for _, lt := range LabTests() {
		if err := r.Catalog.CreateLabTest(ctx, lt); err != nil {
			return nil, fmt.Errorf("seed lab test %s: %w", lt.ID, err)
		}
		res.LabTests++
	}
	for _, v := range Visits() {
		if err := r.Visits.Create(ctx, v); err != nil {
			return nil, fmt.Errorf("seed visit %s: %w", v.ID, err)
		}
		res.Visits++
	}
	return res, nil
}

// Doctors returns the demo practitioners.
func Doctors() []*doctor.Doctor {
	return []*doctor.Doctor{
		{
			ID:                  "doc1",
			Name:                "Dr. A. K. Azad Chowdhury",
			BMDCRegNo:           "A-12345",
			Specialization:      "MBBS, FCPS (Medicine)",
			DigitalSignatureURL: "/assets/signatures/doc1.png",
			Chamber:             "Green Life Medical College Hospital, Dhanmondi, Dhaka",
			VisitingHours:       "Sat-Thu, 6pm-9pm",
		},
	}
}

// Patients returns the demo roster.
func Patients() []*patient.Patient {
	nid := "1978901234567"
	occupation := "School Teacher"
	return []*patient.Patient{
		{
			ID:          "p001",
			PatientCode: "P-2024001",
			NameEn:      "Rahim Uddin",
			NameBn:      "রহিম উদ্দিন",
			Age:         45,
			DOB:         date(1979, 3, 12),
			Gender:      patient.GenderMale,
			Phone:       "01712345678",
			Address:     "House 12, Road 5, Dhanmondi, Dhaka",
			BloodGroup:  "B+",
			Allergies:   []string{"Penicillin"},
			Weight:      72,
			Height:      168,
			NID:         &nid,
			Occupation:  &occupation,
			CreatedAt:   date(2024, 1, 15),
		},
		{
			ID:          "p002",
			PatientCode: "P-2024002",
			NameEn:      "Fatema Begum",
			NameBn:      "ফাতেমা বেগম",
			Age:         38,
			DOB:         date(1986, 7, 22),
			Gender:      patient.GenderFemale,
			Phone:       "01898765432",
			Address:     "Flat 3B, Mirpur 10, Dhaka",
			BloodGroup:  "O+",
			Allergies:   nil,
			Weight:      58,
			Height:      155,
			CreatedAt:   date(2024, 2, 3),
		},
		{
			ID:          "p003",
			PatientCode: "P-2024003",
			NameEn:      "Karim Sheikh",
			NameBn:      "করিম শেখ",
			Age:         62,
			DOB:         date(1962, 11, 5),
			Gender:      patient.GenderMale,
			Phone:       "01556677889",
			Address:     "Village: Charpara, Gazipur",
			BloodGroup:  "A-",
			Allergies:   []string{"Sulfa drugs", "Aspirin"},
			Weight:      65,
			Height:      162,
			CreatedAt:   date(2024, 3, 20),
		},
	}
}

// Medicines returns the demo formulary.
func Medicines() []*catalog.Medicine {
	return []*catalog.Medicine{
		{ID: "m001", GenericName: "Paracetamol", BrandName: "Napa", Strength: "500 mg", DosageForm: "Tablet", Company: "Beximco Pharmaceuticals"},
		{ID: "m002", GenericName: "Omeprazole", BrandName: "Seclo", Strength: "20 mg", DosageForm: "Capsule", Company: "Square Pharmaceuticals"},
		{ID: "m003", GenericName: "Amoxicillin", BrandName: "Moxacil", Strength: "500 mg", DosageForm: "Capsule", Company: "Square Pharmaceuticals"},
		{ID: "m004", GenericName: "Cetirizine", BrandName: "Alatrol", Strength: "10 mg", DosageForm: "Tablet", Company: "Square Pharmaceuticals"},
		{ID: "m005", GenericName: "Amlodipine", BrandName: "Amlovas", Strength: "5 mg", DosageForm: "Tablet", Company: "ACME Laboratories"},
		{ID: "m006", GenericName: "Metformin", BrandName: "Comet", Strength: "500 mg", DosageForm: "Tablet", Company: "Square Pharmaceuticals"},
	}
}

// LabTests returns the demo investigation catalog.
func LabTests() []*catalog.LabTest {
	fasting := "Fasting 8-10 hours required"
	morning := "Morning sample preferred"
	return []*catalog.LabTest{
		{ID: "lt001", Name: "CBC (Complete Blood Count)"},
		{ID: "lt002", Name: "Fasting Blood Sugar", Preparation: &fasting},
		{ID: "lt003", Name: "Lipid Profile", Preparation: &fasting},
		{ID: "lt004", Name: "Serum Creatinine"},
		{ID: "lt005", Name: "Urine R/M/E", Preparation: &morning},
		{ID: "lt006", Name: "Chest X-Ray P/A View"},
	}
}

// Visits returns the demo visit history: a committed-and-reprinted visit
// for p001 and a single-version visit for p003.
func Visits() []*visit.Visit {
	followUp := date(2024, 7, 15)
	meds := Medicines()
	tests := LabTests()
	return []*visit.Visit{
		{
			ID:            "v001",
			PatientID:     "p001",
			DoctorID:      "doc1",
			VisitDate:     time.Date(2024, 7, 1, 10, 30, 0, 0, time.UTC),
			ClinicalNotes: "Fever for 3 days, body ache. No cough.",
			Diagnosis:     "Viral fever",
			Medicines: []visit.PrescribedMedicine{
				{
					ID:       "pm001",
					Medicine: *meds[0], // Napa
					Dose:     "1", Frequency: "1+1+1", Duration: "5 days",
					Route: "Oral", Sig: "After meal",
				},
			},
			LabTests: []visit.OrderedLabTest{
				{ID: "olt001", Test: *tests[0], Instructions: "Fasting not required"},
			},
			Advice:              "Drink plenty of fluids. Rest.",
			FollowUpDate:        &followUp,
			PrescriptionVersion: 1,
		},
		{
			ID:            "v002",
			PatientID:     "p003",
			DoctorID:      "doc1",
			VisitDate:     time.Date(2024, 7, 5, 18, 15, 0, 0, time.UTC),
			ClinicalNotes: "BP 150/95 on two readings. Occasional headache.",
			Diagnosis:     "Essential hypertension",
			Medicines: []visit.PrescribedMedicine{
				{
					ID:       "pm002",
					Medicine: *meds[4], // Amlovas
					Dose:     "1", Frequency: "1+0+0", Duration: "30 days",
					Route: "Oral", Sig: "In the morning",
				},
			},
			Advice:              "Reduce salt intake. Walk 30 minutes daily.",
			PrescriptionVersion: 1,
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
