package catalog

import (
	"context"
	"fmt"
	"testing"
)

func seedRepo(t *testing.T) Repository {
	t.Helper()
	repo := NewMemRepo(0)
	ctx := context.Background()

	meds := []Medicine{
		{ID: "m001", GenericName: "Paracetamol", BrandName: "Napa", Strength: "500 mg", DosageForm: "Tablet", Company: "Beximco"},
		{ID: "m002", GenericName: "Omeprazole", BrandName: "Losectil", Strength: "20 mg", DosageForm: "Capsule", Company: "Square"},
		{ID: "m003", GenericName: "Amoxicillin", BrandName: "Moxacil", Strength: "500 mg", DosageForm: "Capsule", Company: "Incepta"},
		{ID: "m004", GenericName: "Metformin", BrandName: "Comet", Strength: "500 mg", DosageForm: "Tablet", Company: "Square"},
		{ID: "m005", GenericName: "Amlodipine", BrandName: "Amlovas", Strength: "5 mg", DosageForm: "Tablet", Company: "Aristopharma"},
		{ID: "m006", GenericName: "Salbutamol", BrandName: "Azmasol", Strength: "2 mg", DosageForm: "Syrup", Company: "Beximco"},
	}
	for i := range meds {
		if err := repo.CreateMedicine(ctx, &meds[i]); err != nil {
			t.Fatalf("seed medicine: %v", err)
		}
	}

	tests := []LabTest{
		{ID: "lt001", Name: "CBC (Complete Blood Count)"},
		{ID: "lt002", Name: "RBS (Random Blood Sugar)"},
		{ID: "lt003", Name: "Serum Creatinine"},
		{ID: "lt004", Name: "Lipid Profile"},
		{ID: "lt005", Name: "ECG"},
		{ID: "lt006", Name: "Chest X-Ray P/A View"},
	}
	for i := range tests {
		if err := repo.CreateLabTest(ctx, &tests[i]); err != nil {
			t.Fatalf("seed lab test: %v", err)
		}
	}
	return repo
}

func TestSearchMedicines_MatchesBrandAndGeneric(t *testing.T) {
	svc := NewService(seedRepo(t))

	got, err := svc.SearchMedicines(context.Background(), "Am")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Amoxicillin (generic, m003) precedes Amlovas (brand, m005): catalog order.
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "m003" || got[1].ID != "m005" {
		t.Errorf("expected catalog order m003,m005; got %s,%s", got[0].ID, got[1].ID)
	}
}

func TestSearchMedicines_CaseInsensitive(t *testing.T) {
	svc := NewService(seedRepo(t))

	got, err := svc.SearchMedicines(context.Background(), "napa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].BrandName != "Napa" {
		t.Fatalf("expected Napa, got %+v", got)
	}
}

func TestSearchMedicines_BelowMinLength(t *testing.T) {
	svc := NewService(seedRepo(t))

	got, err := svc.SearchMedicines(context.Background(), "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result below min query length, got %+v", got)
	}
}

func TestSearchMedicines_CapsAtFive(t *testing.T) {
	repo := NewMemRepo(0)
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		m := Medicine{ID: fmt.Sprintf("m%03d", i), GenericName: "Cetirizine", BrandName: fmt.Sprintf("Brand%d", i)}
		if err := repo.CreateMedicine(ctx, &m); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	svc := NewService(repo)

	got, err := svc.SearchMedicines(ctx, "cetirizine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != MaxSearchResults {
		t.Errorf("expected %d results, got %d", MaxSearchResults, len(got))
	}
}

func TestSearchLabTests(t *testing.T) {
	svc := NewService(seedRepo(t))

	got, err := svc.SearchLabTests(context.Background(), "blood")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected CBC and RBS, got %d results", len(got))
	}
	if got[0].ID != "lt001" || got[1].ID != "lt002" {
		t.Errorf("expected lt001,lt002; got %s,%s", got[0].ID, got[1].ID)
	}
}

func TestGetMedicine_NotFound(t *testing.T) {
	svc := NewService(seedRepo(t))

	if _, err := svc.GetMedicine(context.Background(), "nope"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewMedicineSearcher_DeliversServiceResults(t *testing.T) {
	svc := NewService(seedRepo(t))

	s := svc.NewMedicineSearcher(0)
	defer s.Close()

	s.SetQuery(context.Background(), "napa")
	res := <-s.Results()
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Items) != 1 || res.Items[0].ID != "m001" {
		t.Errorf("expected Napa, got %+v", res.Items)
	}
}
