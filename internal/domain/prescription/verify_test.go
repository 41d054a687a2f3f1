package prescription

import (
	"context"
	"errors"
	"testing"

	"github.com/mediflow/clinic/internal/domain/doctor"
	"github.com/mediflow/clinic/internal/domain/patient"
	"github.com/mediflow/clinic/internal/domain/visit"
)

func TestToken_DeterministicAndDistinct(t *testing.T) {
	if Token("v001") != Token("v001") {
		t.Error("token must be deterministic for a given visit")
	}
	if Token("v001") == Token("v002") {
		t.Error("distinct visits must yield distinct tokens")
	}
	if got := len(Token("v001")); got != tokenLength {
		t.Errorf("expected %d-char token, got %d", tokenLength, got)
	}
}

func TestVerifyURL_TrimsTrailingSlash(t *testing.T) {
	want := "https://clinic.example.com/verify/ABC"
	if got := VerifyURL("https://clinic.example.com/", "ABC"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := VerifyURL("https://clinic.example.com", "ABC"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func seededService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	doctors := doctor.NewMemRepo()
	patients := patient.NewMemRepo(0)
	visits := visit.NewMemRepo(0)

	if err := doctors.Create(ctx, fixtureDoctor()); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	if err := patients.Create(ctx, fixturePatient()); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	if err := visits.Create(ctx, fixtureVisit()); err != nil {
		t.Fatalf("seed visit: %v", err)
	}
	return NewService(doctors, patients, visits, "https://clinic.example.com")
}

func TestService_Document(t *testing.T) {
	svc := seededService(t)

	doc, err := svc.Document(context.Background(), "p001", "v001", ModeAll, "")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Patient.VisitID != "v001" || len(doc.Medicines) != 2 {
		t.Errorf("unexpected document: %+v", doc.Patient)
	}

	if _, err := svc.Document(context.Background(), "ghost", "v001", ModeAll, ""); !errors.Is(err, patient.ErrNotFound) {
		t.Errorf("expected patient.ErrNotFound, got %v", err)
	}
	if _, err := svc.Document(context.Background(), "p001", "ghost", ModeAll, ""); !errors.Is(err, visit.ErrNotFound) {
		t.Errorf("expected visit.ErrNotFound, got %v", err)
	}
}

func TestService_Resolve(t *testing.T) {
	svc := seededService(t)

	v, err := svc.Resolve(context.Background(), Token("v001"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if v.ID != "v001" || v.VisitDate.IsZero() {
		t.Errorf("unexpected visit: %+v", v)
	}
	if _, err := svc.Resolve(context.Background(), "NOSUCHTOKEN00000"); !errors.Is(err, visit.ErrNotFound) {
		t.Errorf("expected visit.ErrNotFound, got %v", err)
	}
}
