package catalog

import (
	"context"
	"testing"
)

func TestMemRepo_LabTestPreparationIsolated(t *testing.T) {
	repo := NewMemRepo(0)
	ctx := context.Background()

	prep := "Fasting 10-12 hours"
	orig := LabTest{ID: "lt004", Name: "Lipid Profile", Preparation: &prep}
	if err := repo.CreateLabTest(ctx, &orig); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := repo.GetLabTest(ctx, "lt004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	*got.Preparation = "scribbled over"

	again, err := repo.GetLabTest(ctx, "lt004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *again.Preparation != "Fasting 10-12 hours" {
		t.Errorf("stored preparation mutated through returned copy: %q", *again.Preparation)
	}

	found, err := repo.SearchLabTests(ctx, "lipid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	*found[0].Preparation = "scribbled again"

	again, err = repo.GetLabTest(ctx, "lt004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *again.Preparation != "Fasting 10-12 hours" {
		t.Errorf("stored preparation mutated through search result: %q", *again.Preparation)
	}

	// The caller's seed value must not be shared either.
	prep = "caller edit"
	again, _ = repo.GetLabTest(ctx, "lt004")
	if *again.Preparation != "Fasting 10-12 hours" {
		t.Errorf("stored preparation shares caller's pointer: %q", *again.Preparation)
	}
}
