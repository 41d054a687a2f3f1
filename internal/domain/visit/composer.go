package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mediflow/clinic/internal/domain/catalog"
	"github.com/mediflow/clinic/internal/platform/ident"
)

// ErrPersistenceFailure signals that an update commit targeted a visit that
// is no longer in the store. The commit is lost; callers must surface this
// rather than assume success.
var ErrPersistenceFailure = errors.New("prescription commit failed")

// Default values stamped onto a freshly added medicine line; the prescriber
// edits them afterwards.
const (
	DefaultDose      = "1"
	DefaultFrequency = "1+0+1"
	DefaultDuration  = "7 days"
	DefaultRoute     = "Oral"
)

// Composer builds and persists prescription drafts. Commit is its only
// side-effecting operation; everything else transforms in-memory state.
type Composer struct {
	repo Repository
	ids  ident.Generator
	now  func() time.Time
}

func NewComposer(repo Repository, ids ident.Generator) *Composer {
	return &Composer{repo: repo, ids: ids, now: time.Now}
}

// WithClock overrides the composer's clock; used by tests.
func (c *Composer) WithClock(now func() time.Time) *Composer {
	c.now = now
	return c
}

// StartDraft opens an empty draft for a new encounter, stamped with the
// current time and prescription version 1. No identity is assigned until
// commit.
func (c *Composer) StartDraft(patientID, doctorID string) *Draft {
	return &Draft{
		Visit: Visit{
			PatientID:           patientID,
			DoctorID:            doctorID,
			VisitDate:           c.now().UTC(),
			Medicines:           []PrescribedMedicine{},
			LabTests:            []OrderedLabTest{},
			PrescriptionVersion: 1,
		},
		loadedVersion: 1,
	}
}

// LoadForEdit opens a draft over an existing visit. Every line item's IsNew
// flag is forced to false: lines already on the prescription are not "new"
// unless explicitly re-added during this session. The input visit is not
// aliased.
func (c *Composer) LoadForEdit(v *Visit) *Draft {
	cp := v.Clone()
	for i := range cp.Medicines {
		cp.Medicines[i].IsNew = false
	}
	return &Draft{
		Visit:         *cp,
		loadedVersion: v.PrescriptionVersion,
		isEdit:        true,
	}
}

// ResumeDraft wraps an already-edited visit (e.g. one posted back by a
// client) without touching its IsNew flags. A visit with an identity
// commits as an update from its carried version.
func (c *Composer) ResumeDraft(v *Visit) *Draft {
	cp := v.Clone()
	version := cp.PrescriptionVersion
	if version < 1 {
		version = 1
		cp.PrescriptionVersion = 1
	}
	return &Draft{
		Visit:         *cp,
		loadedVersion: version,
		isEdit:        cp.ID != "",
	}
}

// AddMedicine appends a medicine line embedding a snapshot of the catalog
// entry, stamped with the default regimen and IsNew = true.
func (c *Composer) AddMedicine(d *Draft, m catalog.Medicine) {
	d.Medicines = append(d.Medicines, PrescribedMedicine{
		ID:        c.ids.NextID(),
		Medicine:  m,
		Dose:      DefaultDose,
		Frequency: DefaultFrequency,
		Duration:  DefaultDuration,
		Route:     DefaultRoute,
		IsNew:     true,
	})
}

// AddTest appends a lab-test line embedding a snapshot of the catalog entry.
func (c *Composer) AddTest(d *Draft, t catalog.LabTest) {
	d.LabTests = append(d.LabTests, OrderedLabTest{
		ID:   c.ids.NextID(),
		Test: t.Clone(),
	})
}

// Commit persists the draft. A draft without an identity is inserted with a
// fresh id, keeping version 1. An edit draft is updated in place with
// exactly loadedVersion + 1 — even when nothing else changed — and its
// IsNew flags are persisted as currently set. If the underlying record has
// vanished, Commit fails with ErrPersistenceFailure.
func (c *Composer) Commit(ctx context.Context, d *Draft) (*Visit, error) {
	out := d.Visit.Clone()

	if !d.isEdit {
		if out.ID == "" {
			out.ID = c.ids.NextID()
		}
		if err := c.repo.Create(ctx, out); err != nil {
			return nil, fmt.Errorf("create visit: %w", err)
		}
		return out, nil
	}

	out.PrescriptionVersion = d.loadedVersion + 1
	if err := c.repo.Update(ctx, out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: visit %s no longer exists", ErrPersistenceFailure, out.ID)
		}
		return nil, fmt.Errorf("update visit %s: %w", out.ID, err)
	}
	return out, nil
}
