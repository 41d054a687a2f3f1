package prescription

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mediflow/clinic/internal/domain/catalog"
	"github.com/mediflow/clinic/internal/domain/doctor"
	"github.com/mediflow/clinic/internal/domain/patient"
	"github.com/mediflow/clinic/internal/domain/visit"
)

func fixtureDoctor() *doctor.Doctor {
	return &doctor.Doctor{
		ID: "doc1", Name: "Dr. A. K. Azad Chowdhury", BMDCRegNo: "A-12345",
		Specialization:      "Internal Medicine",
		DigitalSignatureURL: "/assets/signature.png",
		Chamber:             "Popular Diagnostic Centre, Dhanmondi",
		VisitingHours:       "Sat-Thu 6pm-9pm",
	}
}

func fixturePatient() *patient.Patient {
	return &patient.Patient{
		ID: "p001", PatientCode: "P-2024001",
		NameEn: "Rahim Uddin", NameBn: "রহিম উদ্দিন",
		Age: 45, Gender: "Male",
	}
}

func fixtureVisit() *visit.Visit {
	followUp := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	return &visit.Visit{
		ID: "v001", PatientID: "p001", DoctorID: "doc1",
		VisitDate:     time.Date(2024, 7, 1, 10, 30, 0, 0, time.UTC),
		ClinicalNotes: "Fever for 3 days.",
		Diagnosis:     "Viral fever",
		Medicines: []visit.PrescribedMedicine{
			{
				ID: "pm001",
				Medicine: catalog.Medicine{
					ID: "m001", GenericName: "Paracetamol", BrandName: "Napa",
					Strength: "500 mg", DosageForm: "Tablet",
				},
				Dose: "1", Frequency: "1+1+1", Duration: "5 days", Route: "Oral",
				Sig: "After meal", IsNew: false,
			},
			{
				ID: "pm002",
				Medicine: catalog.Medicine{
					ID: "m005", GenericName: "Amlodipine", BrandName: "Amlovas",
					Strength: "5 mg", DosageForm: "Tablet",
				},
				Dose: "1", Frequency: "1+0+0", Duration: "30 days", Route: "Oral",
				IsNew: true,
			},
		},
		LabTests: []visit.OrderedLabTest{
			{ID: "olt001", Test: catalog.LabTest{ID: "lt001", Name: "CBC (Complete Blood Count)"}, Instructions: "Fasting not required"},
		},
		Advice:              "Drink plenty of fluids.",
		FollowUpDate:        &followUp,
		PrescriptionVersion: 2,
	}
}

func TestBuild_FullDocument(t *testing.T) {
	doc := Build(fixtureDoctor(), fixturePatient(), fixtureVisit(), Options{
		Mode: ModeAll, VerifyBaseURL: "https://clinic.example.com",
	})

	if doc.Header.DoctorName != "Dr. A. K. Azad Chowdhury" || doc.Header.BMDCRegNo != "A-12345" {
		t.Errorf("unexpected header: %+v", doc.Header)
	}
	if doc.Patient.Name != "Rahim Uddin" {
		t.Errorf("expected the English name by default, got %q", doc.Patient.Name)
	}
	if doc.Patient.AgeGender != "45 Y / Male" {
		t.Errorf("unexpected age strip: %q", doc.Patient.AgeGender)
	}
	if doc.Patient.VisitDate != "01/07/2024" {
		t.Errorf("expected day-first date, got %q", doc.Patient.VisitDate)
	}
	if !doc.ShowLabTests || len(doc.LabTests) != 1 || doc.LabTests[0] != "CBC (Complete Blood Count)" {
		t.Errorf("unexpected lab section: %v", doc.LabTests)
	}

	if len(doc.Medicines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(doc.Medicines))
	}
	first := doc.Medicines[0]
	if first.Number != 1 || first.ItemID != "pm001" {
		t.Errorf("unexpected first line: %+v", first)
	}
	if first.Name != "Tablet Napa (Paracetamol) 500 mg" {
		t.Errorf("unexpected heading: %q", first.Name)
	}
	if !strings.Contains(first.Dosage, "1+1+1") || !strings.Contains(first.Dosage, "5 days") {
		t.Errorf("unexpected dosage line: %q", first.Dosage)
	}
	if !first.HasSig || first.Sig != "After meal" {
		t.Errorf("unexpected sig: %+v", first)
	}
	if doc.Medicines[1].HasSig {
		t.Error("line without instructions must suppress the sig row")
	}

	if !doc.Footer.HasFollowUp || doc.Footer.FollowUpDate != "15/07/2024" {
		t.Errorf("unexpected follow-up: %+v", doc.Footer)
	}
	if doc.Footer.VerifyToken != Token("v001") {
		t.Errorf("footer token mismatch: %q", doc.Footer.VerifyToken)
	}
	if doc.Footer.VerifyURL != "https://clinic.example.com/verify/"+Token("v001") {
		t.Errorf("unexpected verify URL: %q", doc.Footer.VerifyURL)
	}
}

func TestBuild_NewOnlyIsRenumberedSubsequence(t *testing.T) {
	d, p, v := fixtureDoctor(), fixturePatient(), fixtureVisit()

	all := Build(d, p, v, Options{Mode: ModeAll})
	newOnly := Build(d, p, v, Options{Mode: ModeNewOnly})

	if len(newOnly.Medicines) != 1 {
		t.Fatalf("expected 1 filtered line, got %d", len(newOnly.Medicines))
	}
	if newOnly.Medicines[0].ItemID != "pm002" {
		t.Errorf("expected the new line only, got %q", newOnly.Medicines[0].ItemID)
	}
	if newOnly.Medicines[0].Number != 1 {
		t.Errorf("filtered lines must renumber from 1, got %d", newOnly.Medicines[0].Number)
	}

	// Filtered item ids form a subsequence of the full document's ids.
	i := 0
	for _, line := range all.Medicines {
		if i < len(newOnly.Medicines) && line.ItemID == newOnly.Medicines[i].ItemID {
			i++
		}
	}
	if i != len(newOnly.Medicines) {
		t.Error("filtered lines are not a subsequence of the full document")
	}
}

func TestBuild_OptionalSections(t *testing.T) {
	v := fixtureVisit()
	v.LabTests = nil
	v.FollowUpDate = nil
	v.Advice = ""

	doc := Build(fixtureDoctor(), fixturePatient(), v, Options{Mode: ModeAll})

	if doc.ShowLabTests {
		t.Error("empty lab orders must suppress the investigations section")
	}
	if doc.Footer.HasFollowUp || doc.Footer.FollowUpDate != "" {
		t.Error("missing follow-up must suppress the footer line")
	}
}

func TestBuild_BengaliName(t *testing.T) {
	doc := Build(fixtureDoctor(), fixturePatient(), fixtureVisit(), Options{Mode: ModeAll, Language: "bn"})
	if doc.Patient.Name != "রহিম উদ্দিন" {
		t.Errorf("expected the Bengali name, got %q", doc.Patient.Name)
	}
}

func TestBuild_DoesNotMutateInputs(t *testing.T) {
	d, p, v := fixtureDoctor(), fixturePatient(), fixtureVisit()
	dBefore, pBefore, vBefore := *d, *p, *v.Clone()

	Build(d, p, v, Options{Mode: ModeNewOnly, Language: "bn", VerifyBaseURL: "https://x"})

	if !reflect.DeepEqual(*d, dBefore) || !reflect.DeepEqual(*p, pBefore) {
		t.Error("Build mutated the doctor or patient record")
	}
	if !reflect.DeepEqual(*v, vBefore) {
		t.Error("Build mutated the visit record")
	}
}

func TestRender_PrintPage(t *testing.T) {
	doc := Build(fixtureDoctor(), fixturePatient(), fixtureVisit(), Options{
		Mode: ModeAll, VerifyBaseURL: "https://clinic.example.com",
	})

	var sb strings.Builder
	if err := Render(&sb, doc); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := sb.String()
	for _, want := range []string{
		"Dr. A. K. Azad Chowdhury",
		"Tablet Napa (Paracetamol) 500 mg",
		"CBC (Complete Blood Count)",
		"01/07/2024",
		doc.Footer.VerifyURL,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("print page missing %q", want)
		}
	}
}
